package config

import (
	"log/slog"

	"github.com/timzifer/interplist"
)

// QueueOptions converts the configuration into command queue options.
func (c Config) QueueOptions(logger *slog.Logger) []interplist.Option {
	return []interplist.Option{
		interplist.WithLogger(logger),
		interplist.WithMaxRecordSize(c.MaxRecordSize),
		interplist.WithReservedHeadroom(c.ReservedHeadroom),
		interplist.WithDebugTrace(c.DebugTrace),
	}
}
