package cli

import (
	stderrors "errors"
	"io"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/muesli/termenv"

	"github.com/matzehuels/entitree/pkg/errors"
	"github.com/matzehuels/entitree/pkg/pipeline"
)

// Config is the user configuration read from config.toml.
//
//	color = false
//	format = "text"
//	detailed = true
type Config struct {
	// Color enables per-entity colors. Nil means not set.
	Color *bool `toml:"color"`

	// Format is the default output format for render.
	Format string `toml:"format"`

	// Detailed adds component lists to diagram labels.
	Detailed bool `toml:"detailed"`
}

// loadConfig reads the config file at path. A missing file yields the zero
// Config.
func loadConfig(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Format != "" {
		if err := pipeline.ValidateFormat(cfg.Format); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
		}
	}
	return cfg, nil
}

// loadUserConfig reads the config from the default location.
func loadUserConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, nil
	}
	return loadConfig(path)
}

// colorFlags captures the --color and --no-color flags.
type colorFlags struct {
	color      bool
	colorSet   bool
	noColor    bool
	noColorSet bool
}

// resolveColor decides whether to color output written to out; a nil out
// stands for a file.
// Precedence: flags, then the color profile of out (files, pipes, NO_COLOR
// and CLICOLOR_FORCE), then the config file, then on.
func resolveColor(f colorFlags, cfg Config, out io.Writer) bool {
	switch {
	case f.noColorSet && f.noColor:
		return false
	case f.colorSet:
		return f.color
	case out == nil:
		return false
	case termenv.NewOutput(out).Profile == termenv.Ascii:
		return false
	case cfg.Color != nil:
		return *cfg.Color
	default:
		return true
	}
}
