// Package reports serves the report and graph operations over HTTP.
package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/de-tools/agency-atlas/pkg/adapters"
	"github.com/de-tools/agency-atlas/pkg/clock"
	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/services/graphsync"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Service is implemented by insights.Service.
type Service interface {
	GetRealTimeMetrics(ctx context.Context, scope domain.ReportScope) (domain.RealTimeMetrics, error)
	GetPeriodMetrics(ctx context.Context, scope domain.ReportScope) (domain.PeriodComparison, error)
	GetClientAnalytics(ctx context.Context, scope domain.ReportScope) (domain.ClientAnalytics, error)
	GetMultiFactorAnalysis(ctx context.Context, scope domain.ReportScope) (domain.MultiFactorAnalysis, error)
	GetCollaborationNetwork(ctx context.Context, organizationID string) (domain.CollaborationNetwork, error)
	GetClientRelationshipGraph(ctx context.Context, scope domain.ReportScope) (domain.ClientRelationshipGraph, error)
	GetSkillNetwork(ctx context.Context, organizationID string) (domain.SkillNetwork, error)
	GetMultiPartyAnalysis(ctx context.Context, organizationID string) (domain.MultiPartyGraph, error)
	SyncOrganizationData(ctx context.Context, organizationID string) (domain.SyncLog, error)
	LatestSync(ctx context.Context, organizationID string) (domain.SyncLog, error)
}

type Handler struct {
	service  Service
	schedule graphsync.Controller
	clock    clock.Clock
}

// NewHandler returns the reports handler. schedule may be nil when periodic
// sync is not available.
func NewHandler(service Service, schedule graphsync.Controller, clk clock.Clock) *Handler {
	return &Handler{
		service:  service,
		schedule: schedule,
		clock:    clk,
	}
}

// Routes registers the handler under the organization scope.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/organizations/{organization}", func(r chi.Router) {
		r.Get("/metrics/realtime", h.GetRealTimeMetrics)
		r.Get("/metrics/period", h.GetPeriodMetrics)
		r.Get("/clients/{client}/analytics", h.GetClientAnalytics)
		r.Get("/analysis", h.GetMultiFactorAnalysis)

		r.Get("/graph/collaboration", h.GetCollaborationNetwork)
		r.Get("/graph/clients/{client}", h.GetClientRelationshipGraph)
		r.Get("/graph/skills", h.GetSkillNetwork)
		r.Get("/graph/multi-party", h.GetMultiPartyAnalysis)
		r.Post("/graph/sync", h.SyncOrganization)
		r.Get("/graph/sync", h.GetLatestSync)
		r.Put("/graph/sync/schedule", h.StartScheduledSync)
		r.Delete("/graph/sync/schedule", h.CancelScheduledSync)
	})
}

func (h *Handler) GetRealTimeMetrics(w http.ResponseWriter, r *http.Request) {
	scope := domain.ReportScope{
		OrganizationID: chi.URLParam(r, "organization"),
		ClientID:       r.URL.Query().Get("clientId"),
	}
	result, err := h.service.GetRealTimeMetrics(r.Context(), scope)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapRealTimeMetricsDomainToApi(result))
}

func (h *Handler) GetPeriodMetrics(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.rangedScope(w, r, r.URL.Query().Get("clientId"))
	if !ok {
		return
	}
	result, err := h.service.GetPeriodMetrics(r.Context(), scope)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapPeriodComparisonDomainToApi(result))
}

func (h *Handler) GetClientAnalytics(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.rangedScope(w, r, chi.URLParam(r, "client"))
	if !ok {
		return
	}
	result, err := h.service.GetClientAnalytics(r.Context(), scope)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapClientAnalyticsDomainToApi(result))
}

func (h *Handler) GetMultiFactorAnalysis(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.rangedScope(w, r, r.URL.Query().Get("clientId"))
	if !ok {
		return
	}
	result, err := h.service.GetMultiFactorAnalysis(r.Context(), scope)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapMultiFactorAnalysisDomainToApi(result))
}

func (h *Handler) GetCollaborationNetwork(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetCollaborationNetwork(r.Context(), chi.URLParam(r, "organization"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapCollaborationNetworkDomainToApi(result))
}

func (h *Handler) GetClientRelationshipGraph(w http.ResponseWriter, r *http.Request) {
	scope := domain.ReportScope{
		OrganizationID: chi.URLParam(r, "organization"),
		ClientID:       chi.URLParam(r, "client"),
	}
	result, err := h.service.GetClientRelationshipGraph(r.Context(), scope)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapClientRelationshipGraphDomainToApi(result))
}

func (h *Handler) GetSkillNetwork(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetSkillNetwork(r.Context(), chi.URLParam(r, "organization"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapSkillNetworkDomainToApi(result))
}

func (h *Handler) GetMultiPartyAnalysis(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetMultiPartyAnalysis(r.Context(), chi.URLParam(r, "organization"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapMultiPartyGraphDomainToApi(result))
}

// SyncOrganization answers 200 whether the sync completed or failed; the
// outcome is in the status field of the returned log.
func (h *Handler) SyncOrganization(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SyncOrganizationData(r.Context(), chi.URLParam(r, "organization"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapSyncLogDomainToApi(result))
}

func (h *Handler) GetLatestSync(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.LatestSync(r.Context(), chi.URLParam(r, "organization"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapSyncLogDomainToApi(result))
}

func (h *Handler) StartScheduledSync(w http.ResponseWriter, r *http.Request) {
	if h.schedule == nil {
		http.Error(w, "periodic graph sync is not available", http.StatusNotImplemented)
		return
	}
	if err := h.schedule.Start(r.Context(), chi.URLParam(r, "organization")); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) CancelScheduledSync(w http.ResponseWriter, r *http.Request) {
	if h.schedule == nil {
		http.Error(w, "periodic graph sync is not available", http.StatusNotImplemented)
		return
	}
	if err := h.schedule.Cancel(r.Context(), chi.URLParam(r, "organization")); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// rangedScope binds the from and to query parameters to the scope.
func (h *Handler) rangedScope(w http.ResponseWriter, r *http.Request, clientID string) (domain.ReportScope, bool) {
	scope := domain.ReportScope{
		OrganizationID: chi.URLParam(r, "organization"),
		ClientID:       clientID,
	}
	dr, err := domain.ParseDayRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"), h.clock.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return scope, false
	}
	return scope.WithRange(dr), true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidScope):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrReportTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, r *http.Request, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg(fmt.Sprintf("failed to encode %T", body))
	}
}
