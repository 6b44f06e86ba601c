package booking

import (
	"context"

	"homebooking/internal/domain"
)

// RowStore is the append-only booking table: a spreadsheet or a SQL table.
// Append puts the header row in place before the first data row.
type RowStore interface {
	EnsureHeaders(ctx context.Context) error
	Append(ctx context.Context, row []string) (int64, error)
	List(ctx context.Context) ([][]string, error)
}

// EventPublisher is told about every stored booking.
type EventPublisher interface {
	BookingCreated(rec domain.BookingRecord)
}
