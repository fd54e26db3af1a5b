package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testProgram = `
[[block]]
line = 5
  [[block.command]]
  type = "TRAVERSE"
  z = 2.0
  [[block.command]]
  type = "LINEAR_FEED"
  x = 1.0
  feed = 100.0

[[block]]
line = 10
call_level = 1
  [[block.command]]
  type = "DWELL"
  seconds = 0.5

[[block]]
line = 20
  [[block.command]]
  type = "PROGRAM_END"
`

func writeProgram(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.toml")
	require.NoError(t, os.WriteFile(path, []byte(testProgram), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRoot()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestDumpCommand(t *testing.T) {
	out, err := run(t, "dump", writeProgram(t))
	require.NoError(t, err)
	require.Contains(t, out, "list size=4")
	require.Contains(t, out, "--> type=LINEAR_FEED,  line_number=5")
	require.Contains(t, out, "--> type=PROGRAM_END,  line_number=20")
}

func TestDrainCommand(t *testing.T) {
	out, err := run(t, "drain", writeProgram(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	require.True(t, strings.HasPrefix(lines[0], "line=5 call_level=-1 remap_level=-1 type=TRAVERSE"), lines[0])
	require.True(t, strings.HasPrefix(lines[2], "line=10 call_level=1 remap_level=-1 type=DWELL"), lines[2])
	require.Equal(t, "drained 4 commands", lines[4])
}

func TestSeekCommand(t *testing.T) {
	path := writeProgram(t)

	out, err := run(t, "seek", "--line", "10", path)
	require.NoError(t, err)
	require.Contains(t, out, "line=10 call_level=1")

	out, err = run(t, "seek", "--line", "5", "--after", path)
	require.NoError(t, err)
	require.Contains(t, out, "type=DWELL")

	out, err = run(t, "seek", "--line", "7", path)
	require.NoError(t, err)
	require.Equal(t, "not found\n", out)

	out, err = run(t, "seek", "--line", "0", path)
	require.NoError(t, err)
	require.Contains(t, out, "type=TRAVERSE")

	_, err = run(t, "seek", "--line", "-1", path)
	require.Error(t, err)
}

func TestConfigLimitsApply(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "cfg.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("max_record_size = 100\nreserved_headroom = 80\n"), 0o644))

	_, err := run(t, "--config", cfgPath, "dump", writeProgram(t))
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 5")
}
