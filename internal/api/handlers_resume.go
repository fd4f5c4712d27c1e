package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/archithareddy21/portfolio-project/internal/clean"
	"github.com/archithareddy21/portfolio-project/internal/extract"
	"github.com/archithareddy21/portfolio-project/internal/pipeline"
	"github.com/archithareddy21/portfolio-project/internal/segment"
	"github.com/archithareddy21/portfolio-project/internal/store"
	"github.com/go-chi/chi/v5"
)

const previewItems = 5

func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("resume")
	if err != nil {
		file, header, err = r.FormFile("file")
	}
	if err != nil {
		jsonError(w, "resume file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !extract.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	// Extraction failures degrade to an empty parse: the upload is still
	// stored so a later reparse can try again.
	var experience, projects []string
	text, err := s.extractor.Text(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Warn("extraction failed, storing empty parse", "filename", filename, "error", err)
	} else {
		lines := clean.Lines(text)
		experience, projects = segment.Split(lines)
	}

	snap := &store.Snapshot{
		ID:            pipeline.NewULID(),
		Filename:      filename,
		UploadedAt:    time.Now().UTC().Format(time.RFC3339),
		ParserVersion: segment.Version,
		Experience:    experience,
		Projects:      projects,
	}
	if err := s.store.Save(r.Context(), snap, data); err != nil {
		s.log.Error("snapshot save failed", "error", err)
		jsonError(w, "failed to store resume", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"resume_id":          snap.ID,
		"filename":           snap.Filename,
		"uploaded_at":        snap.UploadedAt,
		"parser_version":     snap.ParserVersion,
		"experience_count":   len(experience),
		"project_count":      len(projects),
		"experience_preview": preview(experience),
		"project_preview":    preview(projects),
	})
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.log.Error("list snapshots failed", "error", err)
		jsonError(w, "failed to list resumes", http.StatusInternalServerError)
		return
	}
	currentID, err := s.store.CurrentID(r.Context())
	if err != nil {
		jsonError(w, "failed to load current resume", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"current": currentID,
		"resumes": list,
	})
}

func (s *Server) handleUseResume(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("resume_id")
	if id == "" {
		var body struct {
			ResumeID string `json:"resume_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			id = body.ResumeID
		}
	}
	if id == "" {
		jsonError(w, "resume_id is required", http.StatusBadRequest)
		return
	}

	err := s.store.SetCurrent(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "resume not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("set current failed", "resume_id", id, "error", err)
		jsonError(w, "failed to select resume", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"current": id})
}

func (s *Server) handleSnapshotDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	path, err := s.store.DocumentPath(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "resume not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to locate document", http.StatusInternalServerError)
		return
	}
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	http.ServeFile(w, r, path)
}

func (s *Server) handleSnapshotData(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "resume not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to load resume", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func preview(items []string) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > previewItems {
		return items[:previewItems]
	}
	return items
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
