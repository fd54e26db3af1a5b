package interplist

import (
	"log/slog"

	"github.com/timzifer/interplist/internal/record"
)

type queueOptions struct {
	logger     *slog.Logger
	maxSize    int
	headroom   int
	debugTrace bool
}

func defaultOptions() queueOptions {
	return queueOptions{
		logger:   slog.New(slog.DiscardHandler),
		maxSize:  record.DefaultMaxSize,
		headroom: record.DefaultHeadroom,
	}
}

// Option configures a CommandQueue.
type Option func(*queueOptions)

// WithLogger routes queue diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *queueOptions) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithMaxRecordSize sets the maximum stored record size. Non-positive
// values keep the default. If the size left after the reserved headroom
// cannot hold a 4 byte command, both size and headroom fall back to their
// defaults.
func WithMaxRecordSize(n int) Option {
	return func(opts *queueOptions) {
		if n > 0 {
			opts.maxSize = n
		}
	}
}

// WithReservedHeadroom sets how much of the maximum record size is kept
// back for the metadata header. Values below the header size are raised
// to it.
func WithReservedHeadroom(n int) Option {
	return func(opts *queueOptions) {
		opts.headroom = max(n, record.HeaderSize)
	}
}

// WithDebugTrace logs every accepted append at debug level.
func WithDebugTrace(enabled bool) Option {
	return func(opts *queueOptions) {
		opts.debugTrace = enabled
	}
}
