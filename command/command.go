// Package command defines the machine commands that an interpreter stages
// for an executor.
//
// Every command travels as a frame:
//
//	uint32 tag | uint32 frame size | body
//
// Integers are little-endian and floats are stored as their IEEE-754 bits.
// The frame size counts the whole frame, header included. The set of
// commands is closed: Unmarshal and Validate only accept the tags declared
// here, and each tag has a fixed body layout (MESSAGE carries a length
// prefixed string and is the only variable-size command).
package command

import (
	"errors"
	"fmt"
	"strings"
)

// Tag identifies the concrete type of a command. Zero is never valid.
type Tag uint32

const (
	TagTraverse Tag = iota + 1
	TagLinearFeed
	TagArcFeed
	TagDwell
	TagSetFeedRate
	TagSpindleOn
	TagSpindleOff
	TagToolChange
	TagCoolant
	TagMessage
	TagProgramEnd
)

// FrameHeaderSize is the size of the tag and size fields leading every frame.
const FrameHeaderSize = 8

var (
	// ErrUnknownTag is returned for tags outside the declared command set.
	ErrUnknownTag = errors.New("command: unknown tag")
	// ErrSizeMismatch is returned when a declared size disagrees with the
	// frame or with the layout of the tagged command.
	ErrSizeMismatch = errors.New("command: size does not match layout")
	// ErrMalformed is returned for frames whose content cannot be decoded.
	ErrMalformed = errors.New("command: malformed frame")
)

var tagNames = map[Tag]string{
	TagTraverse:    "TRAVERSE",
	TagLinearFeed:  "LINEAR_FEED",
	TagArcFeed:     "ARC_FEED",
	TagDwell:       "DWELL",
	TagSetFeedRate: "SET_FEED_RATE",
	TagSpindleOn:   "SPINDLE_ON",
	TagSpindleOff:  "SPINDLE_OFF",
	TagToolChange:  "TOOL_CHANGE",
	TagCoolant:     "COOLANT",
	TagMessage:     "MESSAGE",
	TagProgramEnd:  "PROGRAM_END",
}

// String resolves the display name of the tag.
func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint32(t))
}

// Known reports whether t belongs to the command set.
func (t Tag) Known() bool {
	_, ok := tagNames[t]
	return ok
}

// ParseTag is the reverse of Tag.String. Matching is case-insensitive.
func ParseTag(name string) (Tag, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for tag, n := range tagNames {
		if n == upper {
			return tag, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTag, name)
}

// Command is implemented by every stageable command. The command types of
// this package implement it on values; pointers to them are accepted too.
type Command interface {
	Tag() Tag
}

// Traverse is a rapid positioning move.
type Traverse struct {
	X, Y, Z float64
}

// LinearFeed is a straight move at the given feed rate.
type LinearFeed struct {
	X, Y, Z float64
	Feed    float64
}

// ArcFeed is a circular move ending at (X, Y, Z) around (CenterX, CenterY).
// Turns is positive for counter-clockwise arcs.
type ArcFeed struct {
	X, Y, Z          float64
	CenterX, CenterY float64
	Turns            int32
	Plane            uint32
}

type Dwell struct {
	Seconds float64
}

type SetFeedRate struct {
	Rate float64
}

// SpindleOn starts the spindle. Direction is 1 for clockwise, -1 otherwise.
type SpindleOn struct {
	Speed     float64
	Direction int32
}

type SpindleOff struct{}

type ToolChange struct {
	Tool   int32
	Pocket int32
}

type Coolant struct {
	Mist  bool
	Flood bool
}

// Message is an operator message; the text is carried verbatim.
type Message struct {
	Text string
}

type ProgramEnd struct{}

func (Traverse) Tag() Tag    { return TagTraverse }
func (LinearFeed) Tag() Tag  { return TagLinearFeed }
func (ArcFeed) Tag() Tag     { return TagArcFeed }
func (Dwell) Tag() Tag       { return TagDwell }
func (SetFeedRate) Tag() Tag { return TagSetFeedRate }
func (SpindleOn) Tag() Tag   { return TagSpindleOn }
func (SpindleOff) Tag() Tag  { return TagSpindleOff }
func (ToolChange) Tag() Tag  { return TagToolChange }
func (Coolant) Tag() Tag     { return TagCoolant }
func (Message) Tag() Tag     { return TagMessage }
func (ProgramEnd) Tag() Tag  { return TagProgramEnd }
