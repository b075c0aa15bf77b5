package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
)

// ChannelSource implements pgx.CopyFromSource by reading StagingRows from a
// channel. The catalog reader blocks when COPY falls behind.
type ChannelSource struct {
	ctx     context.Context
	ch      <-chan *model.StagingRow
	current *model.StagingRow
	count   int64
	err     error
}

// NewChannelSource creates a CopyFromSource backed by a channel. Iteration
// stops with ctx.Err() if ctx is cancelled before the channel is closed.
func NewChannelSource(ctx context.Context, ch <-chan *model.StagingRow) *ChannelSource {
	return &ChannelSource{ctx: ctx, ch: ch}
}

// Next advances to the next row. Returns false when the channel is closed.
func (s *ChannelSource) Next() bool {
	select {
	case row, ok := <-s.ch:
		if !ok {
			return false
		}
		s.current = row
		s.count++
		return true
	case <-s.ctx.Done():
		s.err = s.ctx.Err()
		return false
	}
}

// Values returns the current row's values in COPY column order.
func (s *ChannelSource) Values() ([]any, error) {
	return s.current.CopyValues(), nil
}

// Err returns any error encountered during iteration.
func (s *ChannelSource) Err() error {
	return s.err
}

// Count returns the number of rows handed to COPY so far.
func (s *ChannelSource) Count() int64 {
	return s.count
}

// Compile-time check that ChannelSource satisfies the interface.
var _ pgx.CopyFromSource = (*ChannelSource)(nil)
