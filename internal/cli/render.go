package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/matzehuels/entitree/pkg/ecs"
	"github.com/matzehuels/entitree/pkg/errors"
	sceneio "github.com/matzehuels/entitree/pkg/io"
	"github.com/matzehuels/entitree/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path (or base path for multiple outputs)
	formats  string // comma-separated output formats
	root        string // entity to render; empty renders every root
	interactive bool   // pick the root in a terminal list when root is empty
	colors      colorFlags
	detailed    bool
	scale       float64
	noCache     bool
	refresh     bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Print the entity hierarchy of a scene",
		Long: `Print the entity hierarchy of a scene file (.json or .toml).

By default every root entity is printed as a text tree on stdout, with each
entity label in its own color. Use --root to print a single subtree, or
--interactive to pick one from a list. Colors are off when stdout is not a
terminal and for files unless --color is given.

Graphviz formats (svg, png, pdf) are cached locally; dot and json are
written as plain text. A json scene written to a .toml file is encoded
as TOML.`,
		Example: `  entitree render scene.json
  entitree render scene.toml --root 3v0 --no-color
  entitree render scene.json -i
  entitree render scene.json -f json -o scene.toml
  entitree render scene.json -f svg,png -o hierarchy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.colors.colorSet = cmd.Flags().Changed("color")
			opts.colors.noColorSet = cmd.Flags().Changed("no-color")
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): text (default), dot, svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.root, "root", "r", "", "entity to render, e.g. 3v0 or 3 (default: all roots)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick the root from a list (needs a terminal)")
	cmd.Flags().BoolVar(&opts.colors.color, "color", true, "color entity labels")
	cmd.Flags().BoolVar(&opts.colors.noColor, "no-color", false, "disable colors (same as --color=false)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include component lists in diagram labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render images even if cached")

	cmd.ValidArgsFunction = completeScene
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("root", completeRoots)

	return cmd
}

// runRender loads the scene, renders the requested formats and writes them.
func (c *CLI) runRender(ctx context.Context, stdout, stderr io.Writer, input string, ro renderOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadUserConfig()
	if err != nil {
		return err
	}
	defaultFormat := pipeline.FormatText
	if cfg.Format != "" {
		defaultFormat = cfg.Format
	}

	formats := parseFormats(ro.formats, defaultFormat)
	colorOut := stdout
	if !writesStdout(formats, ro.output) {
		colorOut = nil
	}

	opts := pipeline.Options{
		Root:     ro.root,
		Formats:  formats,
		Color:    resolveColor(ro.colors, cfg, colorOut),
		Detailed: ro.detailed || cfg.Detailed,
		Scale:    ro.scale,
		Refresh:  ro.refresh,
		Logger:   logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if ro.output != "" {
		if err := errors.ValidatePath(ro.output); err != nil {
			return err
		}
	}
	if ro.interactive && opts.Root == "" && (!isTerminal(os.Stdin) || !isTerminal(os.Stderr)) {
		return errors.New(errors.ErrCodeInvalidInput, "--interactive needs a terminal")
	}

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	w, roots, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	if ro.interactive && opts.Root == "" {
		root, ok, err := pickRoot(w, roots)
		if err != nil {
			return err
		}
		if !ok {
			printDetail("No selection made")
			return nil
		}
		opts.Root = root
	}

	var spinner *Spinner
	if hasImage(opts.Formats) {
		spinner = newSpinnerWithContext(ctx, stderr, "Rendering "+filepath.Base(input)+"...")
		spinner.Start()
	}

	prog := newProgress(logger, filepath.Base(input))
	result, err := runner.RenderScene(ctx, w, opts)
	if err != nil {
		if spinner != nil {
			spinner.StopWithError("Rendering failed")
		}
		return err
	}
	if spinner != nil {
		spinner.Stop()
	}
	prog.rendered(len(result.Roots), result.Stats.EntityCount, opts.Formats)

	return writeArtifacts(artifactWriteParams{
		stdout:    stdout,
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    ro.output,
		cacheHit:  result.CacheInfo.RenderHit,
		entities:  result.Stats.EntityCount,
		world:     result.World,
		roots:     result.Roots,
	})
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(f.Fd())
}

func hasImage(formats []string) bool {
	for _, f := range formats {
		if pipeline.IsImage(f) {
			return true
		}
	}
	return false
}

// =============================================================================
// Artifact Output
// =============================================================================

type artifactWriteParams struct {
	stdout    io.Writer
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
	entities  int

	// world and roots re-encode a json scene for .toml files; optional.
	world *ecs.World
	roots []ecs.Entity
}

// writeArtifacts writes each artifact to stdout or to a file.
//
// A single textual format without -o goes to stdout. Everything else goes to
// files: -o names the file for a single format, otherwise it is a base path
// to which ".<format>" is appended (default: the input path without its
// extension).
func writeArtifacts(p artifactWriteParams) error {
	if writesStdout(p.formats, p.output) {
		_, err := p.stdout.Write(p.artifacts[p.formats[0]])
		if err != nil {
			return errors.Wrap(errors.ErrCodeWriteFailed, err, "write stdout")
		}
		return nil
	}

	base := basePath(p.output, p.input)
	var written []string
	for _, format := range p.formats {
		path := base + "." + fileExt(format)
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if err := writeArtifactFile(p, format, path); err != nil {
			return err
		}
		written = append(written, path)
	}

	printSuccess("Rendered %s", filepath.Base(p.input))
	for _, path := range written {
		printFile(path)
	}
	printStats(p.entities, p.cacheHit)
	return nil
}

// writeArtifactFile writes one artifact to path. A json scene bound for a
// .json or .toml file is exported from the world so the extension picks the
// encoding.
func writeArtifactFile(p artifactWriteParams, format, path string) error {
	if format == pipeline.FormatJSON && p.world != nil {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".toml":
			scene, err := sceneio.SceneOf(p.world, p.roots...)
			if err != nil {
				return err
			}
			return sceneio.ExportFile(scene, path)
		}
	}
	if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", path)
	}
	return nil
}

// writesStdout reports whether the artifacts go to stdout rather than files.
func writesStdout(formats []string, output string) bool {
	return len(formats) == 1 && output == "" && !pipeline.IsImage(formats[0])
}

// fileExt maps a format to its file extension.
func fileExt(format string) string {
	if format == pipeline.FormatText {
		return "txt"
	}
	return format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .txt, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if pipeline.ValidFormats[ext] || ext == "txt" {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}
