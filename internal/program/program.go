// Package program reads interpreted programs from TOML files and stages
// them into a command queue, standing in for a real interpreter.
//
// A program is a list of blocks. Each block names the source line it came
// from, optionally the call and remap levels, and the commands it produced:
//
//	[[block]]
//	line = 10
//	call_level = 1
//	  [[block.command]]
//	  type = "LINEAR_FEED"
//	  x = 1.0
//	  feed = 300.0
package program

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/timzifer/interplist/command"
)

// Program is a decoded program file.
type Program struct {
	Blocks []Block `toml:"block"`
}

// Block is the output of one interpreted source line.
type Block struct {
	Line       int    `toml:"line"`
	CallLevel  *int   `toml:"call_level"`
	RemapLevel *int   `toml:"remap_level"`
	Commands   []Step `toml:"command"`
}

// Step describes one command. Only the fields used by Type are read.
type Step struct {
	Type      string  `toml:"type"`
	X         float64 `toml:"x"`
	Y         float64 `toml:"y"`
	Z         float64 `toml:"z"`
	I         float64 `toml:"i"`
	J         float64 `toml:"j"`
	Feed      float64 `toml:"feed"`
	Seconds   float64 `toml:"seconds"`
	Rate      float64 `toml:"rate"`
	Speed     float64 `toml:"speed"`
	Direction int32   `toml:"direction"`
	Turns     int32   `toml:"turns"`
	Plane     uint32  `toml:"plane"`
	Tool      int32   `toml:"tool"`
	Pocket    int32   `toml:"pocket"`
	Mist      bool    `toml:"mist"`
	Flood     bool    `toml:"flood"`
	Text      string  `toml:"text"`
}

// Stager receives staged commands. *interplist.CommandQueue implements it.
type Stager interface {
	SetInterpParams(line, callLevel, remapLevel int)
	Append(cmd command.Command) error
}

// Load decodes the program file at path.
func Load(path string) (*Program, error) {
	var p Program
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, fmt.Errorf("decode program %s: %w", path, err)
	}
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("program %s: %w", path, err)
	}
	return &p, nil
}

// Parse decodes a program from TOML text.
func Parse(data string) (*Program, error) {
	var p Program
	if _, err := toml.Decode(data, &p); err != nil {
		return nil, fmt.Errorf("decode program: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Program) validate() error {
	for i, b := range p.Blocks {
		if b.Line < 0 {
			return fmt.Errorf("block %d: negative line %d", i, b.Line)
		}
	}
	return nil
}

// Stage appends every command of every block in order and returns how many
// were staged. It stops at the first rejected command.
func (p *Program) Stage(q Stager) (int, error) {
	staged := 0
	for _, b := range p.Blocks {
		q.SetInterpParams(b.Line, levelOr(b.CallLevel), levelOr(b.RemapLevel))
		for _, step := range b.Commands {
			cmd, err := step.Command()
			if err != nil {
				return staged, fmt.Errorf("line %d: %w", b.Line, err)
			}
			if err := q.Append(cmd); err != nil {
				return staged, fmt.Errorf("line %d: %s: %w", b.Line, cmd.Tag(), err)
			}
			staged++
		}
	}
	return staged, nil
}

func levelOr(level *int) int {
	if level == nil {
		return -1
	}
	return *level
}

// Command builds the typed command described by s.
func (s Step) Command() (command.Command, error) {
	tag, err := command.ParseTag(s.Type)
	if err != nil {
		return nil, err
	}
	switch tag {
	case command.TagTraverse:
		return command.Traverse{X: s.X, Y: s.Y, Z: s.Z}, nil
	case command.TagLinearFeed:
		return command.LinearFeed{X: s.X, Y: s.Y, Z: s.Z, Feed: s.Feed}, nil
	case command.TagArcFeed:
		return command.ArcFeed{X: s.X, Y: s.Y, Z: s.Z, CenterX: s.I, CenterY: s.J, Turns: s.Turns, Plane: s.Plane}, nil
	case command.TagDwell:
		return command.Dwell{Seconds: s.Seconds}, nil
	case command.TagSetFeedRate:
		return command.SetFeedRate{Rate: s.Rate}, nil
	case command.TagSpindleOn:
		return command.SpindleOn{Speed: s.Speed, Direction: s.Direction}, nil
	case command.TagSpindleOff:
		return command.SpindleOff{}, nil
	case command.TagToolChange:
		return command.ToolChange{Tool: s.Tool, Pocket: s.Pocket}, nil
	case command.TagCoolant:
		return command.Coolant{Mist: s.Mist, Flood: s.Flood}, nil
	case command.TagMessage:
		return command.Message{Text: s.Text}, nil
	case command.TagProgramEnd:
		return command.ProgramEnd{}, nil
	}
	return nil, fmt.Errorf("%w: %s", command.ErrUnknownTag, s.Type)
}
