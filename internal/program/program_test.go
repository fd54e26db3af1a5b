package program

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timzifer/interplist"
	"github.com/timzifer/interplist/command"
)

const sample = `
[[block]]
line = 1
  [[block.command]]
  type = "traverse"
  z = 5.0

  [[block.command]]
  type = "SPINDLE_ON"
  speed = 9000.0
  direction = 1

[[block]]
line = 2
call_level = 1
remap_level = 0
  [[block.command]]
  type = "ARC_FEED"
  x = 1.0
  i = 0.5
  turns = 1

[[block]]
line = 3
  [[block.command]]
  type = "MESSAGE"
  text = "done"
  [[block.command]]
  type = "PROGRAM_END"
`

func TestParseAndStage(t *testing.T) {
	p, err := Parse(sample)
	require.NoError(t, err)
	require.Len(t, p.Blocks, 3)

	q := interplist.NewCommandQueue()
	n, err := p.Stage(q)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, 5, q.Len())

	want := []struct {
		tag               command.Tag
		line, call, remap int
	}{
		{command.TagTraverse, 1, -1, -1},
		{command.TagSpindleOn, 1, -1, -1},
		{command.TagArcFeed, 2, 1, 0},
		{command.TagMessage, 3, -1, -1},
		{command.TagProgramEnd, 3, -1, -1},
	}
	for i, w := range want {
		rec, ok := q.Dequeue()
		require.True(t, ok, "record %d", i)
		require.Equal(t, w.tag, rec.Tag, "record %d", i)
		require.Equal(t, w.line, rec.LineNumber, "record %d", i)
		require.Equal(t, w.call, rec.CallLevel, "record %d", i)
		require.Equal(t, w.remap, rec.RemapLevel, "record %d", i)
	}
}

func TestStepCommand(t *testing.T) {
	cmd, err := Step{Type: "arc_feed", X: 2, I: 1, J: -1, Turns: -1, Plane: 17}.Command()
	require.NoError(t, err)
	require.Equal(t, command.ArcFeed{X: 2, CenterX: 1, CenterY: -1, Turns: -1, Plane: 17}, cmd)

	_, err = Step{Type: "teleport"}.Command()
	require.True(t, errors.Is(err, command.ErrUnknownTag))
}

func TestStageStopsAtRejectedCommand(t *testing.T) {
	p := &Program{Blocks: []Block{{
		Line: 4,
		Commands: []Step{
			{Type: "DWELL", Seconds: 1},
			{Type: "MESSAGE", Text: string(make([]byte, 2000))},
			{Type: "DWELL", Seconds: 2},
		},
	}}}

	q := interplist.NewCommandQueue()
	n, err := p.Stage(q)
	require.ErrorIs(t, err, interplist.ErrRecordTooLarge)
	require.Equal(t, 1, n)
	require.Equal(t, 1, q.Len())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	require.Len(t, p.Blocks, 3)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[[block]]\nline = -3\n"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
}
