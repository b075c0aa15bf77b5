package model

import "time"

// ImportSummary captures metrics from a single catalog import run.
type ImportSummary struct {
	FilePath      string
	FileSHA256    string
	ImportID      int64
	ImportBatchID string
	AlreadyLoaded bool
	RowsRead      int64
	RowsStaged    int64
	RowsUsable    int64
	ImportsPruned int64
	DurationRead  time.Duration
	DurationCopy  time.Duration
	DurationTotal time.Duration
}
