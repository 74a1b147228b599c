package http

import (
	"encoding/json"
	"net/http"
	"time"

	"campuspass-backend/internal/domain"
	"campuspass-backend/internal/service"
)

type GateHandler struct {
	gate service.GateService
}

func NewGateHandler(gate service.GateService) *GateHandler {
	return &GateHandler{gate: gate}
}

type logActionRequest struct {
	PassID  string                `json:"pass_id,omitempty"`
	PassIDs []string              `json:"pass_ids,omitempty"`
	Action  domain.MovementAction `json:"action"`
	Comment string                `json:"comment,omitempty"`
}

type bulkLogResponse struct {
	Results map[string]service.BulkResult `json:"results"`
}

// LogAction records one scan, or a batch when pass_ids is set. The
// batch form always returns 200 with per-pass outcomes; partial
// failure is the expected case, not an error.
func (h *GateHandler) LogAction(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Code: "UNAUTHENTICATED", Message: "no actor"})
		return
	}

	var req logActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "VALIDATION", Message: "malformed request body"})
		return
	}

	if len(req.PassIDs) > 0 {
		results := h.gate.LogBulk(r.Context(), req.PassIDs, actor.ActorID, req.Action, req.Comment)
		writeJSON(w, http.StatusOK, bulkLogResponse{Results: results})
		return
	}
	if req.PassID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "VALIDATION", Message: "pass_id or pass_ids is required"})
		return
	}

	ev, err := h.gate.LogAction(r.Context(), req.PassID, actor.ActorID, req.Action, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

func (h *GateHandler) Live(w http.ResponseWriter, r *http.Request) {
	view, err := h.gate.LiveView(r.Context(), time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type historyResponse struct {
	Events []domain.MovementEvent `json:"events"`
	Total  int32                  `json:"total"`
}

func (h *GateHandler) History(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -7)
	to := now

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Code: "VALIDATION", Message: "from must be RFC3339"})
			return
		}
		from = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Code: "VALIDATION", Message: "to must be RFC3339"})
			return
		}
		to = t
	}

	events, total, err := h.gate.History(r.Context(), from, to, queryInt32(r, "page", 1), queryInt32(r, "page_size", 50))
	if err != nil {
		writeError(w, err)
		return
	}
	if events == nil {
		events = []domain.MovementEvent{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Events: events, Total: total})
}
