package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"campuspass-backend/internal/security"
	"campuspass-backend/internal/service"
)

// NewRouter wires every API route. User endpoints sit behind the JWT
// middleware; gate scan endpoints also accept a station key so the
// fixed scanners at the gate work without user accounts.
func NewRouter(
	passSvc service.GatePassService,
	gateSvc service.GateService,
	noteSvc service.NotificationService,
	tokens security.TokenManager,
	stations *security.StationKeyVerifier,
) *mux.Router {
	passHandler := NewGatePassHandler(passSvc)
	gateHandler := NewGateHandler(gateSvc)
	noteHandler := NewNotificationHandler(noteSvc)

	auth := NewAuthMiddleware(tokens)
	stationAuth := NewStationKeyMiddleware(stations, auth)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	user := api.NewRoute().Subrouter()
	user.Use(auth.Handler)
	user.HandleFunc("/passes", passHandler.Create).Methods(http.MethodPost)
	user.HandleFunc("/passes", passHandler.List).Methods(http.MethodGet)
	user.HandleFunc("/passes/{id}", passHandler.Get).Methods(http.MethodGet)
	user.HandleFunc("/passes/{id}/approve", passHandler.Approve).Methods(http.MethodPost)
	user.HandleFunc("/passes/{id}/reject", passHandler.Reject).Methods(http.MethodPost)
	user.HandleFunc("/gate/live", gateHandler.Live).Methods(http.MethodGet)
	user.HandleFunc("/gate/history", gateHandler.History).Methods(http.MethodGet)
	user.HandleFunc("/notifications", noteHandler.List).Methods(http.MethodGet)
	user.HandleFunc("/notifications/{id}/read", noteHandler.MarkAsRead).Methods(http.MethodPost)

	gate := api.NewRoute().Subrouter()
	gate.Use(stationAuth.Handler)
	gate.HandleFunc("/gate/log-action", gateHandler.LogAction).Methods(http.MethodPost)

	return router
}
