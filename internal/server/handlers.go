package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hyperjump/kioku/internal/chunker"
	"github.com/hyperjump/kioku/internal/models"
	"github.com/hyperjump/kioku/internal/search"
	"github.com/hyperjump/kioku/internal/storage"
	"github.com/hyperjump/kioku/internal/vector"
	"go.uber.org/zap"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var params models.SearchParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("search request", zap.String("query", params.Query), zap.Int("top_k", params.TopK))

	start := time.Now()
	results, err := s.state.Search(r.Context(), params)
	if err != nil {
		if errors.Is(err, models.ErrInvalidArgument) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, models.SearchResponse{
		Results:   results,
		Total:     len(results),
		Query:     params.Query,
		QueryTime: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes := s.state.Notes()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"notes": notes,
		"total": len(notes),
	})
}

type addNoteRequest struct {
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		s.respondError(w, http.StatusBadRequest, "content is required")
		return
	}
	note := models.Note{Content: req.Content, Category: req.Category, Tags: req.Tags}
	if note.Category == "" {
		note.Category = models.DefaultCategory
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	if err := s.state.Append(r.Context(), note); err != nil {
		s.logger.Error("add note failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "added",
		"total":  s.state.Count(),
	})
}

type chunkRequest struct {
	Text     string `json:"text"`
	MaxWords int    `json:"max_words"`
}

func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	var req chunkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MaxWords == 0 {
		req.MaxWords = s.config.Search.ChunkMaxWords
	}
	notes, err := chunker.ChunkNotes(req.Text, req.MaxWords)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(notes) > 0 {
		if err := s.state.Append(r.Context(), notes...); err != nil {
			s.logger.Error("chunk append failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	s.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"chunks": len(notes),
		"total":  s.state.Count(),
	})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var raw []models.RawNote
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		var typeErr *models.UnsupportedNoteTypeError
		if errors.As(err, &typeErr) {
			s.respondError(w, http.StatusBadRequest, typeErr.Error())
			return
		}
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	notes, err := models.Normalize(raw)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	// Imported notes merge into the collection after the existing ones.
	if len(notes) > 0 {
		if err := s.state.Append(r.Context(), notes...); err != nil {
			s.logger.Error("import failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "imported",
		"imported": len(notes),
		"total":    s.state.Count(),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.state.Notes())
}

func (s *Server) handleSaveNotes(w http.ResponseWriter, r *http.Request) {
	if err := s.state.Replace(r.Context(), s.state.Notes()); err != nil {
		s.logger.Error("save notes failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "saved",
		"total":  s.state.Count(),
	})
}

func (s *Server) handleSaveEmbeddings(w http.ResponseWriter, r *http.Request) {
	notes := s.state.Notes()
	m, fingerprint, err := s.state.Engine().Matrix(r.Context(), notes)
	if err != nil {
		s.logger.Error("compute embeddings failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	path := s.config.Storage.EmbeddingsPath
	if err := vector.SaveMatrix(path, m, fingerprint); err != nil {
		s.logger.Error("save embeddings failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "saved",
		"path":        path,
		"rows":        len(m),
		"fingerprint": fingerprint,
	})
}

func (s *Server) handleLoadEmbeddings(w http.ResponseWriter, r *http.Request) {
	path := s.config.Storage.EmbeddingsPath
	m, fingerprint, err := vector.LoadMatrix(path)
	if err != nil {
		if errors.Is(err, vector.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "no saved embeddings")
			return
		}
		s.logger.Error("load embeddings failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !s.state.Engine().Cache().Adopt(s.state.Notes(), m, fingerprint) {
		s.respondError(w, http.StatusConflict, "saved embeddings do not match the current notes")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "loaded",
		"rows":   len(m),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": search.Categories(s.state.Notes()),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"notes": s.state.Count(),
	}
	_, fingerprint, cached := s.state.Engine().Cache().Cached()
	resp["embeddings_cached"] = cached
	if cached {
		resp["fingerprint"] = fingerprint
	}

	configInfo := map[string]interface{}{
		"provider":   s.config.Embedding.Provider,
		"dimensions": s.config.Embedding.Dimensions,
		"backend":    s.config.Storage.Backend,
	}
	diskBytes, err := storage.DiskUsageBytes(
		s.config.Storage.NotesPath,
		s.config.Storage.DatabasePath,
		s.config.Storage.EmbeddingsPath,
	)
	if err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	resp["config"] = configInfo
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
