package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/archithareddy21/portfolio-project/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleReparse enqueues one re-segmentation job per stored snapshot, so a
// parser upgrade can be rolled across everything already uploaded.
func (s *Server) handleReparse(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.log.Error("list snapshots failed", "error", err)
		jsonError(w, "failed to list resumes", http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		jsonError(w, "no resumes stored", http.StatusNotFound)
		return
	}

	var jobs []map[string]any
	for _, sum := range list {
		now := time.Now()
		job := &pipeline.Job{
			ID:         pipeline.NewULID(),
			SnapshotID: sum.ID,
			Status:     pipeline.StatusQueued,
			Phase:      "queued",
			Filename:   sum.Filename,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.orchestrator.Submit(job); err != nil {
			jobs = append(jobs, map[string]any{
				"resume_id": sum.ID,
				"error":     err.Error(),
			})
			continue
		}
		jobs = append(jobs, map[string]any{
			"resume_id": sum.ID,
			"job_id":    job.ID,
			"status":    job.Status,
			"poll_url":  fmt.Sprintf("/api/jobs/%s", job.ID),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"jobs": jobs})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleExtractStats(w http.ResponseWriter, r *http.Request) {
	if s.extractor == nil || s.extractor.Stats == nil {
		jsonError(w, "extract stats unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       s.extractor.Stats.Snapshot(),
	})
}
