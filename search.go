package interplist

import (
	"fmt"

	"github.com/timzifer/interplist/internal/record"
)

// FindByLine positions the cursor on the first record staged for line and
// returns it. Line 0 selects the head record whatever its line. The scan
// starts at the head; every visited record updates CurrentLine, so only the
// return value tells whether the line was found. A miss resets the current
// metadata.
//
// FindByLine panics if line is negative.
func (q *CommandQueue) FindByLine(line int) (rec Record, found bool) {
	if line < 0 {
		panic(fmt.Sprintf("interplist: FindByLine called with negative line %d", line))
	}
	finish := q.metrics.TraceSearch()
	defer func() { finish(found) }()

	stored, ok := q.records.CursorToHead()
	if line > 0 {
		for ok {
			// Stored records always carry a full header.
			meta, _ := record.DecodeMeta(stored)
			q.last.Line = meta.Line
			if meta.Line == line {
				break
			}
			stored, ok = q.records.CursorAdvance()
		}
	}
	return q.take(stored, ok)
}

// FindNextAfterLine positions the cursor on the first record, scanning from
// the head, whose line is greater than line and returns it.
//
// Unlike FindByLine a hit only updates CurrentLine; CurrentCallLevel and
// CurrentRemapLevel keep their previous values. A miss resets all three.
//
// FindNextAfterLine panics if line is negative.
func (q *CommandQueue) FindNextAfterLine(line int) (rec Record, found bool) {
	if line < 0 {
		panic(fmt.Sprintf("interplist: FindNextAfterLine called with negative line %d", line))
	}
	finish := q.metrics.TraceSearch()
	defer func() { finish(found) }()

	stored, ok := q.records.CursorToHead()
	for ok {
		meta, _ := record.DecodeMeta(stored)
		q.last.Line = meta.Line
		if meta.Line > line {
			_, frame, _ := record.Decode(stored)
			return newRecord(meta, frame), true
		}
		stored, ok = q.records.CursorAdvance()
	}
	q.last = record.NoMeta
	return Record{}, false
}
