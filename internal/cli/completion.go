package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/entitree/pkg/hierarchy"
	"github.com/matzehuels/entitree/pkg/io"
	"github.com/matzehuels/entitree/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for entitree.

Besides subcommands and flags, the scripts complete scene files (.json,
.toml), output formats for --format and entity ids for --root, read from
the scene named on the command line.

  $ source <(entitree completion bash)
  $ entitree completion zsh > "${fpath[1]}/_entitree"
  $ entitree completion fish > ~/.config/fish/completions/entitree.fish
  PS> entitree completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeScene completes the scene argument with .json and .toml files.
func completeScene(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json", "toml"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats completes the last entry of a comma-separated --format.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done := ""
	if i := strings.LastIndexByte(toComplete, ','); i >= 0 {
		done = toComplete[:i+1]
	}
	var out []string
	for _, f := range []string{pipeline.FormatText, pipeline.FormatDOT, pipeline.FormatSVG,
		pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON} {
		out = append(out, done+f)
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeRoots completes --root with every entity of the scene given as
// the first argument, labelled with its name.
func completeRoots(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	w, roots, err := io.ImportFile(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []string
	for _, root := range roots {
		_ = hierarchy.Walk(w, root, func(rec hierarchy.Record) error {
			id := rec.Entity.String()
			if name, ok := w.Label(rec.Entity); ok {
				id += "\t" + name
			}
			out = append(out, id)
			return nil
		})
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
