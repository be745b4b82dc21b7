package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonicalScene = `{
  "entities": [
    {
      "name": "root",
      "children": [
        {"name": "child_a", "children": [{"name": "child_c"}, {"name": "child_d", "children": [{"name": "child_f"}]}]},
        {"name": "child_b", "children": [{"name": "child_e"}]}
      ]
    },
    {"name": "camera", "components": ["render.Camera"]}
  ]
}`

// isolate points config, cache and color environment at empty test values.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR", "")
	t.Setenv("CLICOLOR_FORCE", "")
}

func writeScene(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	cmd := c.RootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	cmd := New(io.Discard, LogInfo).RootCommand()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"render", "roots", "cache", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestRenderCommandText(t *testing.T) {
	isolate(t)
	scene := writeScene(t, "scene.json", canonicalScene)

	out, err := run(t, "render", scene, "--no-color")
	require.NoError(t, err)

	want := `"root" (0v0): [Name, Children]
 ├"child_a" (1v0): [Name, ChildOf, Children]
 │├"child_c" (2v0): [Name, ChildOf]
 │└"child_d" (3v0): [Name, ChildOf, Children]
 │ └"child_f" (4v0): [Name, ChildOf]
 └"child_b" (5v0): [Name, ChildOf, Children]
  └"child_e" (6v0): [Name, ChildOf]
"camera" (7v0): [Name, Camera]
`
	assert.Equal(t, want, out)
}

func TestRenderCommandRoot(t *testing.T) {
	isolate(t)
	scene := writeScene(t, "scene.json", canonicalScene)

	out, err := run(t, "render", scene, "--no-color", "--root", "5v0")
	require.NoError(t, err)
	assert.Equal(t, "\"child_b\" (5v0): [Name, ChildOf, Children]\n └\"child_e\" (6v0): [Name, ChildOf]\n", out)
}

func TestRenderCommandColor(t *testing.T) {
	isolate(t)
	scene := writeScene(t, "scene.json", canonicalScene)

	out, err := run(t, "render", scene)
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b[", "stdout is not a terminal")

	out, err = run(t, "render", scene, "--color")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[38;2;")

	t.Setenv("CLICOLOR_FORCE", "1")
	out, err = run(t, "render", scene)
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[38;2;")

	t.Setenv("NO_COLOR", "1")
	out, err = run(t, "render", scene)
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b[")

	out, err = run(t, "render", scene, "--color")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[38;2;", "--color overrides NO_COLOR")
}

func TestRenderCommandColorFilesDefaultOff(t *testing.T) {
	isolate(t)
	t.Setenv("CLICOLOR_FORCE", "1")
	scene := writeScene(t, "scene.json", canonicalScene)
	path := filepath.Join(t.TempDir(), "tree.txt")

	_, err := run(t, "render", scene, "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\x1b[")

	_, err = run(t, "render", scene, "-o", path, "--color")
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\x1b[38;2;")
}

func TestRenderCommandExportsTOML(t *testing.T) {
	isolate(t)
	scene := writeScene(t, "scene.json", canonicalScene)
	path := filepath.Join(t.TempDir(), "scene.toml")

	_, err := run(t, "render", scene, "-f", "json", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[[entities]]")
	assert.Contains(t, string(data), `name = "child_f"`)

	out, err := run(t, "render", path, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, ` │ └"child_f" (4v0): [Name, ChildOf]`)
	assert.Contains(t, out, `"camera" (7v0): [Name, Camera]`)
}

func TestRenderCommandInteractiveNeedsTerminal(t *testing.T) {
	isolate(t)
	scene := writeScene(t, "scene.json", canonicalScene)

	if isTerminal(os.Stdin) && isTerminal(os.Stderr) {
		t.Skip("test process has a terminal")
	}
	_, err := run(t, "render", scene, "-i")
	require.Error(t, err)
	assert.Equal(t, ExitUsage, ExitCode(err))

	out, err := run(t, "render", scene, "-i", "--root", "5v0", "--no-color")
	require.NoError(t, err, "--root skips the picker")
	assert.True(t, strings.HasPrefix(out, `"child_b" (5v0)`))
}

func TestRenderCommandConfigDefaults(t *testing.T) {
	isolate(t)
	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), appName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFile), []byte("color = false\nformat = \"dot\"\n"), 0o644))
	scene := writeScene(t, "scene.json", canonicalScene)

	out, err := run(t, "render", scene)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph"), "got %q", out)
}

func TestRenderCommandWritesFiles(t *testing.T) {
	isolate(t)
	scene := writeScene(t, "scene.toml", "[[entities]]\nname = \"solo\"\n")
	base := filepath.Join(t.TempDir(), "out")

	_, err := run(t, "render", scene, "--no-color", "-f", "text,json", "-o", base)
	require.NoError(t, err)

	text, err := os.ReadFile(base + ".txt")
	require.NoError(t, err)
	assert.Equal(t, "\"solo\" (0v0): [Name]\n", string(text))

	data, err := os.ReadFile(base + ".json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "solo"`)
}

func TestRenderCommandErrors(t *testing.T) {
	isolate(t)
	scene := writeScene(t, "scene.json", canonicalScene)

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"render", filepath.Join(t.TempDir(), "nope.json")}},
		{"unknown root", []string{"render", scene, "--root", "99v0"}},
		{"bad format", []string{"render", scene, "-f", "gif"}},
		{"no args", []string{"render"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRootsCommand(t *testing.T) {
	isolate(t)
	scene := writeScene(t, "scene.json", canonicalScene)

	out, err := run(t, "roots", scene)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"root" (0v0)`)
	assert.Contains(t, lines[0], "7 entities")
	assert.Contains(t, lines[1], `"camera" (7v0)`)
	assert.Contains(t, lines[1], "1 entity")
}

func TestCachePathCommand(t *testing.T) {
	isolate(t)

	out, err := run(t, "cache", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName), strings.TrimSpace(out))
}

func TestCompletionCommand(t *testing.T) {
	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, appName)
}
