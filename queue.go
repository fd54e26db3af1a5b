package interplist

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/timzifer/interplist/command"
	"github.com/timzifer/interplist/internal/record"
	"github.com/timzifer/interplist/internal/store"
	"github.com/timzifer/interplist/internal/telemetry"
)

// minFrameSize is the smallest declared size AppendRaw accepts.
const minFrameSize = 4

var (
	// ErrNilPayload is returned when appending without payload bytes.
	ErrNilPayload = errors.New("interplist: nil payload")
	// ErrZeroTag is returned when appending a command with tag 0.
	ErrZeroTag = errors.New("interplist: zero command tag")
	// ErrRecordTooLarge is returned when the declared size exceeds the
	// maximum record size minus the reserved headroom.
	ErrRecordTooLarge = errors.New("interplist: command size is too large")
	// ErrRecordTooSmall is returned when the declared size is below 4 bytes.
	ErrRecordTooSmall = errors.New("interplist: command size is invalid")
	// ErrInvalidCommand wraps layout errors from the command package.
	ErrInvalidCommand = errors.New("interplist: invalid command")
)

// MetricsSnapshot reports the counters of one queue.
type MetricsSnapshot = telemetry.Snapshot

// CommandQueue stages interpreted commands for an executor.
//
// A producer sets the pending metadata and appends commands; every
// appended command is stamped with the metadata pending at that moment.
// A consumer dequeues from the head, or walks and searches the queue with
// a cursor that is independent of removal. The queue is not safe for
// concurrent use.
type CommandQueue struct {
	id         string
	records    *store.RecordStore
	pending    record.Meta
	last       record.Meta
	maxFrame   int
	debugTrace bool
	logger     *slog.Logger
	metrics    *telemetry.QueueMetrics
}

// NewCommandQueue creates an empty queue with pending and current
// metadata at line 0, call level -1 and remap level -1.
func NewCommandQueue(options ...Option) *CommandQueue {
	opts := defaultOptions()
	for _, opt := range options {
		opt(&opts)
	}
	if opts.maxSize-opts.headroom < minFrameSize {
		def := defaultOptions()
		opts.maxSize, opts.headroom = def.maxSize, def.headroom
	}

	id := uuid.NewString()
	return &CommandQueue{
		id:         id,
		records:    store.New(),
		pending:    record.NoMeta,
		last:       record.NoMeta,
		maxFrame:   opts.maxSize - opts.headroom,
		debugTrace: opts.debugTrace,
		logger:     opts.logger.With("component", "interplist", "queue_id", id),
		metrics:    telemetry.NewQueueMetrics(),
	}
}

// ID identifies the queue in logs.
func (q *CommandQueue) ID() string {
	return q.id
}

// MaxCommandSize is the largest frame AppendRaw accepts.
func (q *CommandQueue) MaxCommandSize() int {
	return q.maxFrame
}

// SetLineNumber sets the line attached to subsequent appends.
func (q *CommandQueue) SetLineNumber(line int) {
	q.pending.Line = line
}

// SetInterpParams sets line, call level and remap level attached to
// subsequent appends.
func (q *CommandQueue) SetInterpParams(line, callLevel, remapLevel int) {
	q.pending = record.Meta{Line: line, CallLevel: callLevel, RemapLevel: remapLevel}
}

// Append encodes cmd and stages it with the pending metadata.
func (q *CommandQueue) Append(cmd command.Command) error {
	frame, err := command.Marshal(cmd)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidCommand, err)
		q.metrics.RecordAppend(err)
		q.logger.Error("append rejected", "err", err)
		return err
	}
	tag, size, _ := command.PeekHeader(frame)
	return q.AppendRaw(tag, size, frame)
}

// AppendRaw stages a pre-encoded command frame of size bytes. On error the
// queue is left unchanged.
func (q *CommandQueue) AppendRaw(tag command.Tag, size int, payload []byte) error {
	err := q.checkAppend(tag, size, payload)
	q.metrics.RecordAppend(err)
	if err != nil {
		q.logger.Error("append rejected", "tag", tag.String(), "size", size, "err", err)
		return err
	}

	q.records.AppendTail(record.Encode(q.pending, payload))

	if q.debugTrace {
		q.logger.Debug("append",
			"tag", tag.String(),
			"size", size,
			"list_size", q.records.Len(),
			"line", q.pending.Line,
			"call_level", q.pending.CallLevel,
			"remap_level", q.pending.RemapLevel,
		)
	}
	return nil
}

func (q *CommandQueue) checkAppend(tag command.Tag, size int, payload []byte) error {
	switch {
	case payload == nil:
		return ErrNilPayload
	case tag == 0:
		return ErrZeroTag
	case size > q.maxFrame:
		return fmt.Errorf("%w: %d bytes, limit %d", ErrRecordTooLarge, size, q.maxFrame)
	case size < minFrameSize:
		return fmt.Errorf("%w: %d bytes", ErrRecordTooSmall, size)
	}
	if err := command.Validate(tag, size, payload); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	return nil
}

// Dequeue removes and returns the head record.
func (q *CommandQueue) Dequeue() (Record, bool) {
	rec, ok := q.take(q.records.RemoveHead())
	if ok {
		q.metrics.RecordDequeue()
	}
	return rec, ok
}

// RefreshCurrent returns the record under the cursor without removing it.
func (q *CommandQueue) RefreshCurrent() (Record, bool) {
	return q.take(q.records.CursorCurrent())
}

// MoveNext advances the cursor. It reports false when there is no next
// record, leaving the cursor invalid.
func (q *CommandQueue) MoveNext() bool {
	_, ok := q.records.CursorAdvance()
	return ok
}

// MoveLast positions the cursor on the last record.
func (q *CommandQueue) MoveLast() bool {
	_, ok := q.records.CursorToTail()
	return ok
}

// IsAtEnd reports whether the cursor has no valid position.
func (q *CommandQueue) IsAtEnd() bool {
	_, ok := q.records.CursorID()
	return !ok
}

// Clear discards every record and invalidates the cursor. Pending and
// current metadata are kept.
func (q *CommandQueue) Clear() {
	n := q.records.Len()
	q.records.Clear()
	q.logger.Debug("cleared", "dropped", n)
}

// Len returns the number of staged records.
func (q *CommandQueue) Len() int {
	return q.records.Len()
}

// CurrentLine returns the line of the record most recently selected, or 0
// after a miss.
func (q *CommandQueue) CurrentLine() int {
	return q.last.Line
}

// CurrentCallLevel returns the call level of the record most recently
// selected, or -1 after a miss.
func (q *CommandQueue) CurrentCallLevel() int {
	return q.last.CallLevel
}

// CurrentRemapLevel returns the remap level of the record most recently
// selected, or -1 after a miss.
func (q *CommandQueue) CurrentRemapLevel() int {
	return q.last.RemapLevel
}

// Metrics returns the queue counters.
func (q *CommandQueue) Metrics() MetricsSnapshot {
	return q.metrics.Snapshot()
}

// ResetMetrics zeroes the queue counters.
func (q *CommandQueue) ResetMetrics() {
	q.metrics.Reset()
}

// take turns a store lookup into a Record and mirrors its metadata into the
// current fields. A miss resets them.
func (q *CommandQueue) take(stored []byte, ok bool) (Record, bool) {
	if !ok {
		q.last = record.NoMeta
		return Record{}, false
	}
	meta, frame, err := record.Decode(stored)
	if err != nil {
		q.logger.Error("corrupt record", "err", err)
		q.last = record.NoMeta
		return Record{}, false
	}
	q.last = meta
	return newRecord(meta, frame), true
}
