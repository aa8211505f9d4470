package ingest

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jiyeyuran/streamstats"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"sessionId": s.engine.SessionId(),
	})
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, statsResponse{
		SessionId: s.engine.SessionId(),
		Stats:     s.engine.Entries(),
	})
}

func (s *Server) handlePostStats(w http.ResponseWriter, r *http.Request) {
	var stats streamstats.AggregatedStats
	if !s.decode(w, r, &stats) {
		return
	}
	s.engine.HandleStats(&stats)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePostLatency(w http.ResponseWriter, r *http.Request) {
	var info streamstats.LatencyBreakdown
	if !s.decode(w, r, &info) {
		return
	}
	s.engine.HandleLatencyInfo(&info)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePostPlayers(w http.ResponseWriter, r *http.Request) {
	var req playerCountRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.engine.HandlePlayerCount(req.Count)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, sessionResponse{SessionId: s.engine.NewSession()})
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	s.engine.OnDisconnect()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStartTrigger(w http.ResponseWriter, r *http.Request) {
	trigger := s.engine.Trigger(streamstats.Section(chi.URLParam(r, "section")))
	if trigger == nil {
		http.Error(w, "unknown trigger", http.StatusNotFound)
		return
	}

	err := trigger.Start()
	switch {
	case err == nil:
		w.WriteHeader(http.StatusAccepted)
	case errors.Is(err, streamstats.ErrTriggerDisabled), errors.Is(err, streamstats.ErrNoStartAction):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(err, "encode response")
	}
}
