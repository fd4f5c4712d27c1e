package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/archithareddy21/portfolio-project/internal/clean"
	"github.com/archithareddy21/portfolio-project/internal/extract"
	"github.com/archithareddy21/portfolio-project/internal/segment"
	"github.com/archithareddy21/portfolio-project/internal/store"
)

// Worker re-runs extraction and segmentation for a stored snapshot.
type Worker struct {
	store     *store.Store
	extractor *extract.Service
	log       *slog.Logger
}

func NewWorker(st *store.Store, extractor *extract.Service, log *slog.Logger) *Worker {
	return &Worker{
		store:     st,
		extractor: extractor,
		log:       log,
	}
}

// Process runs the full re-parse pipeline for a job: load the original
// document from disk, extract text, clean and segment, write the new parse
// back over the snapshot's previous one.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "snapshot_id", job.SnapshotID)

	// Phase 1: Extract
	job.SetStatus(StatusExtracting, "extracting")
	docPath, err := w.store.DocumentPath(ctx, job.SnapshotID)
	if err != nil {
		log.Error("document lookup failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	f, err := os.Open(docPath)
	if err != nil {
		log.Error("document open failed", "error", err)
		job.AddError(fmt.Sprintf("open document: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	text, err := w.extractor.Text(f, filepath.Base(docPath))
	f.Close()
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	// Phase 2: Segment
	job.SetStatus(StatusSegmenting, "segmenting")
	lines := clean.Lines(text)
	experience, projects := segment.Split(lines)
	job.SetResult(len(lines), len(experience), len(projects), segment.Version)
	log.Info("segmented document", "lines", len(lines),
		"experience", len(experience), "projects", len(projects))

	// Phase 3: Store
	job.SetStatus(StatusStoring, "storing")
	if err := w.store.UpdateParse(ctx, job.SnapshotID, segment.Version, experience, projects); err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	job.SetStatus(StatusCompleted, "done")
	log.Info("reparse completed")
}
