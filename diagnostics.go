package interplist

import (
	"bufio"
	"fmt"
	"io"

	"github.com/timzifer/interplist/command"
	"github.com/timzifer/interplist/internal/record"
)

// Dump writes the queue size followed by one line per record, head first,
// and a closing blank line. The cursor is not moved.
func (q *CommandQueue) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "command queue %s: list size=%d\n", q.id, q.records.Len())
	q.records.Each(func(_ uint64, stored []byte) bool {
		meta, _ := record.DecodeMeta(stored)
		tag, _, _ := command.PeekHeader(stored[record.HeaderSize:])
		fmt.Fprintf(bw, "--> type=%s,  line_number=%d\n", tag, meta.Line)
		return true
	})
	fmt.Fprintln(bw)
	return bw.Flush()
}
