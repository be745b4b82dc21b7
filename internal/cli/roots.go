package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/entitree/pkg/ecs"
	"github.com/matzehuels/entitree/pkg/hierarchy"
)

// rootsCommand creates the roots command.
func (c *CLI) rootsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "roots [scene]",
		Short: "List the root entities of a scene",
		Long: `List every entity of a scene that has no parent, together with the
number of entities in its subtree. The ids can be passed to render --root.`,
		Example:           `  entitree roots scene.json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScene,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoots(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}

func (c *CLI) runRoots(ctx context.Context, out io.Writer, input string) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	w, roots, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	if len(roots) == 0 {
		fmt.Fprintln(out, StyleDim.Render("no entities"))
		return nil
	}

	for _, root := range roots {
		size, err := subtreeSize(w, root)
		if err != nil {
			return err
		}
		label := root.String()
		if name, ok := w.Label(root); ok {
			label = `"` + name + `" (` + label + ")"
		}
		fmt.Fprintf(out, "%s %s\n", StyleHighlight.Render(label), StyleDim.Render(countNoun(size, "entity", "entities")))
	}
	return nil
}

// subtreeSize counts root and its descendants.
func subtreeSize(w *ecs.World, root ecs.Entity) (int, error) {
	n := 0
	err := hierarchy.Snapshot(w, func(s hierarchy.Store) error {
		return hierarchy.Walk(s, root, func(hierarchy.Record) error {
			n++
			return nil
		})
	})
	return n, err
}

func countNoun(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
