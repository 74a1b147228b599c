package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"campuspass-backend/internal/domain"
	"campuspass-backend/internal/service"
)

type GatePassHandler struct {
	passes service.GatePassService
}

func NewGatePassHandler(passes service.GatePassService) *GatePassHandler {
	return &GatePassHandler{passes: passes}
}

type createPassRequest struct {
	Type          domain.PassType `json:"type"`
	Reason        string          `json:"reason"`
	DepartureDate time.Time       `json:"departure_date"`
	ReturnDate    *time.Time      `json:"return_date,omitempty"`
}

func (h *GatePassHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok || actor.Role != domain.RoleStudent {
		writeJSON(w, http.StatusForbidden, errorBody{Code: "ROLE_NOT_AUTHORIZED", Message: "only students create passes"})
		return
	}

	var req createPassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "VALIDATION", Message: "malformed request body"})
		return
	}

	pass, err := h.passes.CreatePass(r.Context(), actor.ActorID, req.Type, req.Reason, req.DepartureDate, req.ReturnDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pass)
}

type transitionRequest struct {
	// Target is optional: the chain supplies the next step. It is only
	// meaningful for the emergency/medical override path.
	Target  domain.PassStatus `json:"target,omitempty"`
	Comment string            `json:"comment,omitempty"`
}

func (h *GatePassHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Code: "UNAUTHENTICATED", Message: "no actor"})
		return
	}
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "VALIDATION", Message: "malformed request body"})
		return
	}

	pass, err := h.passes.Approve(r.Context(), actor.ActorID, actor.Role, mux.Vars(r)["id"], req.Target, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pass)
}

func (h *GatePassHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Code: "UNAUTHENTICATED", Message: "no actor"})
		return
	}
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "VALIDATION", Message: "malformed request body"})
		return
	}

	pass, err := h.passes.Reject(r.Context(), actor.ActorID, actor.Role, mux.Vars(r)["id"], req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pass)
}

type passDetailResponse struct {
	Pass  *domain.GatePass    `json:"pass"`
	Audit []domain.AuditEntry `json:"audit"`
}

func (h *GatePassHandler) Get(w http.ResponseWriter, r *http.Request) {
	pass, audit, err := h.passes.GetPass(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, passDetailResponse{Pass: pass, Audit: audit})
}

type listPassesResponse struct {
	Passes []domain.GatePass `json:"passes"`
	Total  int32             `json:"total"`
}

func (h *GatePassHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Code: "UNAUTHENTICATED", Message: "no actor"})
		return
	}

	var statuses []domain.PassStatus
	for _, s := range r.URL.Query()["status"] {
		statuses = append(statuses, domain.PassStatus(s))
	}
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	passes, total, err := h.passes.ListQueue(r.Context(), actor.ActorID, actor.Role, statuses, r.URL.Query().Get("student"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	if passes == nil {
		passes = []domain.GatePass{}
	}
	writeJSON(w, http.StatusOK, listPassesResponse{Passes: passes, Total: total})
}

func queryInt32(r *http.Request, key string, fallback int32) int32 {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n < 1 {
		return fallback
	}
	return int32(n)
}
