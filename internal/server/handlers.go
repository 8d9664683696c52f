package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"codeberg.org/snonux/lingobridge/internal"
	"codeberg.org/snonux/lingobridge/internal/audio"
	"codeberg.org/snonux/lingobridge/internal/lang"
	"codeberg.org/snonux/lingobridge/internal/processor"
)

// maxBodyBytes bounds a translate request body
const maxBodyBytes = 1 << 20

// Error messages returned by POST /translate
const (
	msgNoText      = "No text provided"
	msgEmptyText   = "Empty text"
	msgFailed      = "Translation failed"
	msgUnavailable = "Translation service temporarily unavailable"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req processor.TranslateRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		if !errors.Is(err, io.EOF) {
			s.logger.Debugw("invalid translate body", "error", err)
		}
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgNoText})
		return
	}

	resp, err := s.translator.Translate(r.Context(), req)
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, processor.ErrNoText):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgNoText})
	case errors.Is(err, processor.ErrEmptyText):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgEmptyText})
	case errors.Is(err, processor.ErrTranslationFailed):
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgFailed})
	default:
		s.logger.Errorw("translation error", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgUnavailable})
	}
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, lang.All())
}

func (s *Server) handleVoices(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, audio.Voices())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": internal.Version,
	})
}

func (s *Server) handleRoomMessages(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "room")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid limit"})
			return
		}
		limit = n
	}

	msgs, err := s.history.Recent(r.Context(), room, limit)
	if err != nil {
		s.logger.Errorw("failed to load history", "room", room, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "History unavailable"})
		return
	}
	s.writeJSON(w, http.StatusOK, msgs)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warnw("failed to write response", "error", err)
	}
}
