package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger: level-filtered, with short timestamps
// ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress measures one command run over a scene.
type progress struct {
	logger *log.Logger
	scene  string
	start  time.Time
}

func newProgress(l *log.Logger, scene string) *progress {
	return &progress{logger: l, scene: scene, start: time.Now()}
}

// rendered logs the outcome of a render:
//
//	INFO rendered scene=level.json roots=2 entities=14 formats=[text svg] elapsed=12ms
func (p *progress) rendered(roots, entities int, formats []string) {
	p.logger.Info("rendered",
		"scene", p.scene,
		"roots", roots,
		"entities", entities,
		"formats", formats,
		"elapsed", time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for the subcommands.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when the command runs outside the root command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
