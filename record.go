package interplist

import (
	"github.com/timzifer/interplist/command"
	"github.com/timzifer/interplist/internal/record"
)

// Record is one staged command together with the metadata it was
// appended with. Payload is a private copy of the stored frame.
type Record struct {
	Tag        command.Tag
	Payload    []byte
	LineNumber int
	CallLevel  int
	RemapLevel int
}

func newRecord(meta record.Meta, frame []byte) Record {
	tag, _, _ := command.PeekHeader(frame)
	return Record{
		Tag:        tag,
		Payload:    frame,
		LineNumber: meta.Line,
		CallLevel:  meta.CallLevel,
		RemapLevel: meta.RemapLevel,
	}
}

// Size is the length of the command frame in bytes.
func (r Record) Size() int {
	return len(r.Payload)
}

// Command decodes the payload into its typed command.
func (r Record) Command() (command.Command, error) {
	return command.Unmarshal(r.Payload)
}
