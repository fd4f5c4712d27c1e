package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/archithareddy21/portfolio-project/internal/store"
)

func (s *Server) handleProfileData(w http.ResponseWriter, r *http.Request) {
	resumeID := r.URL.Query().Get("resume_id")
	data, err := s.store.LoadProfileData(r.Context(), resumeID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "resume not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("profile data failed", "error", err)
		jsonError(w, "failed to load profile data", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p store.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		jsonError(w, "invalid profile body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.store.SaveProfile(r.Context(), &p); err != nil {
		s.log.Error("profile save failed", "error", err)
		jsonError(w, "failed to save profile", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "saved"})
}
