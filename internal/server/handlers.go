package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/alexanderramin/matchday/internal/contract"
)

type askBody struct {
	Question string `json:"question"`
}

type errorBody struct {
	Error string `json:"error"`
}

type healthBody struct {
	Status      string `json:"status"`
	LLM         bool   `json:"llm"`
	FootballAPI bool   `json:"football_api"`
}

// handleAsk answers with 200 and the answer, 422 and the failure for
// questions the pipeline could not answer, or 400 for malformed bodies.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if s.deps.Ask == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "question answering is not configured"})
		return
	}

	var body askBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "body must be a JSON object with a \"question\" field"})
		return
	}

	res, err := s.deps.Ask.Ask(r.Context(), contract.NewAskRequest(body.Question, "http"))
	switch {
	case errors.Is(err, context.Canceled):
		// client went away
		return
	case errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, errorBody{Error: err.Error()})
		return
	case err != nil:
		s.log.WithError(err).Error("ask failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
		return
	}

	status := http.StatusOK
	if !res.IsAnswer() {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := healthBody{
		LLM:         s.deps.LLM != nil && s.deps.LLM.Available(r.Context()),
		FootballAPI: s.deps.GatewayReady,
	}
	status := http.StatusOK
	body.Status = "ok"
	if !body.LLM || !body.FootballAPI {
		status = http.StatusServiceUnavailable
		body.Status = "degraded"
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func routeLabel(pattern string) string {
	if strings.TrimSpace(pattern) == "" {
		return "unmatched"
	}
	return pattern
}
