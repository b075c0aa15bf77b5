package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/michaelmindrum/insulin-prescription-app/internal/config"
	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
)

// Pipeline phases reported by PipelineError.
const (
	PhasePreflight = "preflight"
	PhaseStage     = "stage"
	PhaseFinalize  = "finalize"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run imports cfg.CatalogPath (or the embedded catalog when empty) and makes
// it the active catalog: preflight → stage → finalize → prune.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) (*model.ImportSummary, error) {
	src, err := SourceFor(cfg.CatalogPath)
	if err != nil {
		return nil, &PipelineError{Phase: PhasePreflight, Err: err}
	}
	return RunSource(ctx, pool, log, src, cfg.Force, cfg.KeepImports)
}

// RunSource is Run for an already resolved source. keep < 0 disables pruning.
func RunSource(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, src *Source, force bool, keep int) (*model.ImportSummary, error) {
	totalStart := time.Now()

	// Phase 1: Preflight
	log.Info().Str("file", src.Name).Msg("starting preflight")
	pf, err := Preflight(ctx, pool, log, src, force)
	if err != nil {
		return nil, &PipelineError{Phase: PhasePreflight, Err: err}
	}

	if pf.AlreadyLoaded {
		log.Info().
			Int64("import_id", pf.ImportID).
			Str("sha256", src.SHA256).
			Msg("catalog already active, skipping (use --force to re-import)")
		return &model.ImportSummary{
			FilePath:      src.Name,
			FileSHA256:    src.SHA256,
			ImportID:      pf.ImportID,
			ImportBatchID: pf.ImportBatchID.String(),
			AlreadyLoaded: true,
			DurationTotal: time.Since(totalStart),
		}, nil
	}

	// Phase 2: Stage
	log.Info().Msg("starting staging")
	if err := UpdateStatus(ctx, pool, pf.ImportID, StatusStaging); err != nil {
		return nil, &PipelineError{Phase: PhaseStage, Err: err}
	}

	stageResult, err := Stage(ctx, pool, log, pf)
	if err != nil {
		fail(ctx, pool, log, pf)
		return nil, &PipelineError{Phase: PhaseStage, Err: err}
	}
	if stageResult.RowsUsable == 0 {
		fail(ctx, pool, log, pf)
		return nil, &PipelineError{Phase: PhaseStage, Err: fmt.Errorf("%s has no usable catalog rows", src.Name)}
	}

	if err := UpdateStatus(ctx, pool, pf.ImportID, StatusStaged); err != nil {
		return nil, &PipelineError{Phase: PhaseStage, Err: err}
	}

	// Phase 3: Finalize
	log.Info().Msg("finalizing")
	if _, err := Finalize(ctx, pool, log, pf.ImportID, stageResult.RowsStaged); err != nil {
		fail(ctx, pool, log, pf)
		return nil, &PipelineError{Phase: PhaseFinalize, Err: err}
	}

	// Phase 4: Prune old imports
	var pruned int64
	if keep >= 0 {
		pruned, err = Prune(ctx, pool, log, keep)
		if err != nil {
			log.Warn().Err(err).Msg("import pruning failed (non-fatal)")
		}
	}

	summary := &model.ImportSummary{
		FilePath:      src.Name,
		FileSHA256:    src.SHA256,
		ImportID:      pf.ImportID,
		ImportBatchID: pf.ImportBatchID.String(),
		RowsRead:      stageResult.RowsRead,
		RowsStaged:    stageResult.RowsStaged,
		RowsUsable:    stageResult.RowsUsable,
		ImportsPruned: pruned,
		DurationRead:  stageResult.DurationRead,
		DurationCopy:  stageResult.Duration,
		DurationTotal: time.Since(totalStart),
	}

	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("rows_staged", summary.RowsStaged).
		Int64("rows_usable", summary.RowsUsable).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("catalog import complete")

	return summary, nil
}

// fail marks the import failed and removes its rows.
func fail(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult) {
	_ = UpdateStatus(ctx, pool, pf.ImportID, StatusFailed)
	if err := Cleanup(ctx, pool, log, pf.ImportBatchID); err != nil {
		log.Warn().Err(err).Msg("batch cleanup failed (non-fatal)")
	}
}
