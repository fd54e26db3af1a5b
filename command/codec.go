package command

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
)

// variableBody marks tags whose body length is carried in the body itself.
const variableBody = -1

var bodySizes = map[Tag]int{
	TagTraverse:    24,
	TagLinearFeed:  32,
	TagArcFeed:     48,
	TagDwell:       8,
	TagSetFeedRate: 8,
	TagSpindleOn:   16,
	TagSpindleOff:  0,
	TagToolChange:  8,
	TagCoolant:     4,
	TagMessage:     variableBody,
	TagProgramEnd:  0,
}

const (
	coolantMist  uint32 = 1 << 0
	coolantFlood uint32 = 1 << 1
)

// Marshal encodes cmd into a new frame. Pointers to commands are encoded
// as the command they point to.
func Marshal(cmd Command) ([]byte, error) {
	if cmd == nil {
		return nil, fmt.Errorf("%w: nil command", ErrMalformed)
	}
	if v := reflect.ValueOf(cmd); v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, fmt.Errorf("%w: nil %T", ErrMalformed, cmd)
		}
		if elem, ok := v.Elem().Interface().(Command); ok {
			cmd = elem
		}
	}
	le := binary.LittleEndian
	body := make([]byte, 0, 48)
	switch c := cmd.(type) {
	case Traverse:
		body = appendFloats(body, c.X, c.Y, c.Z)
	case LinearFeed:
		body = appendFloats(body, c.X, c.Y, c.Z, c.Feed)
	case ArcFeed:
		body = appendFloats(body, c.X, c.Y, c.Z, c.CenterX, c.CenterY)
		body = le.AppendUint32(body, uint32(c.Turns))
		body = le.AppendUint32(body, c.Plane)
	case Dwell:
		body = appendFloats(body, c.Seconds)
	case SetFeedRate:
		body = appendFloats(body, c.Rate)
	case SpindleOn:
		body = appendFloats(body, c.Speed)
		body = le.AppendUint32(body, uint32(c.Direction))
		body = le.AppendUint32(body, 0)
	case SpindleOff, ProgramEnd:
	case ToolChange:
		body = le.AppendUint32(body, uint32(c.Tool))
		body = le.AppendUint32(body, uint32(c.Pocket))
	case Coolant:
		var flags uint32
		if c.Mist {
			flags |= coolantMist
		}
		if c.Flood {
			flags |= coolantFlood
		}
		body = le.AppendUint32(body, flags)
	case Message:
		body = le.AppendUint32(body, uint32(len(c.Text)))
		body = append(body, c.Text...)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownTag, cmd)
	}

	frame := make([]byte, 0, FrameHeaderSize+len(body))
	frame = le.AppendUint32(frame, uint32(cmd.Tag()))
	frame = le.AppendUint32(frame, uint32(FrameHeaderSize+len(body)))
	return append(frame, body...), nil
}

// Validate checks that frame is a well-formed frame of size bytes for tag.
func Validate(tag Tag, size int, frame []byte) error {
	if !tag.Known() {
		return fmt.Errorf("%w: %d", ErrUnknownTag, uint32(tag))
	}
	want := bodySizes[tag]
	if len(frame) != size {
		return fmt.Errorf("%w: declared %d bytes, got %d", ErrSizeMismatch, size, len(frame))
	}
	if size < FrameHeaderSize {
		return fmt.Errorf("%w: %d bytes is shorter than the frame header", ErrMalformed, size)
	}
	le := binary.LittleEndian
	if got := Tag(le.Uint32(frame)); got != tag {
		return fmt.Errorf("%w: frame carries tag %s, declared %s", ErrMalformed, got, tag)
	}
	if got := int(le.Uint32(frame[4:])); got != size {
		return fmt.Errorf("%w: frame carries size %d, declared %d", ErrSizeMismatch, got, size)
	}

	body := frame[FrameHeaderSize:]
	if want == variableBody {
		if len(body) < 4 {
			return fmt.Errorf("%w: %s body too short", ErrSizeMismatch, tag)
		}
		if n := int(le.Uint32(body)); n != len(body)-4 {
			return fmt.Errorf("%w: %s text length %d, body holds %d", ErrSizeMismatch, tag, n, len(body)-4)
		}
		return nil
	}
	if len(body) != want {
		return fmt.Errorf("%w: %s body is %d bytes, want %d", ErrSizeMismatch, tag, len(body), want)
	}
	return nil
}

// PeekHeader returns the tag and size of a frame without validating it.
func PeekHeader(frame []byte) (Tag, int, bool) {
	if len(frame) < FrameHeaderSize {
		return 0, 0, false
	}
	le := binary.LittleEndian
	return Tag(le.Uint32(frame)), int(le.Uint32(frame[4:])), true
}

// Unmarshal decodes a frame produced by Marshal.
func Unmarshal(frame []byte) (Command, error) {
	tag, size, ok := PeekHeader(frame)
	if !ok {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the frame header", ErrMalformed, len(frame))
	}
	if err := Validate(tag, size, frame); err != nil {
		return nil, err
	}

	le := binary.LittleEndian
	body := frame[FrameHeaderSize:]
	switch tag {
	case TagTraverse:
		f := readFloats(body, 3)
		return Traverse{X: f[0], Y: f[1], Z: f[2]}, nil
	case TagLinearFeed:
		f := readFloats(body, 4)
		return LinearFeed{X: f[0], Y: f[1], Z: f[2], Feed: f[3]}, nil
	case TagArcFeed:
		f := readFloats(body, 5)
		return ArcFeed{
			X: f[0], Y: f[1], Z: f[2],
			CenterX: f[3], CenterY: f[4],
			Turns: int32(le.Uint32(body[40:])),
			Plane: le.Uint32(body[44:]),
		}, nil
	case TagDwell:
		return Dwell{Seconds: readFloats(body, 1)[0]}, nil
	case TagSetFeedRate:
		return SetFeedRate{Rate: readFloats(body, 1)[0]}, nil
	case TagSpindleOn:
		return SpindleOn{Speed: readFloats(body, 1)[0], Direction: int32(le.Uint32(body[8:]))}, nil
	case TagSpindleOff:
		return SpindleOff{}, nil
	case TagToolChange:
		return ToolChange{Tool: int32(le.Uint32(body)), Pocket: int32(le.Uint32(body[4:]))}, nil
	case TagCoolant:
		flags := le.Uint32(body)
		return Coolant{Mist: flags&coolantMist != 0, Flood: flags&coolantFlood != 0}, nil
	case TagMessage:
		return Message{Text: string(body[4:])}, nil
	case TagProgramEnd:
		return ProgramEnd{}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownTag, uint32(tag))
}

func appendFloats(b []byte, vals ...float64) []byte {
	for _, v := range vals {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
	}
	return b
}

func readFloats(b []byte, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return out
}
