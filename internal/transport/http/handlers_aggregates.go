package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talentdesk/internal/aggregate"
	"talentdesk/internal/docstore"
	"talentdesk/internal/domain"
	"talentdesk/internal/platform/middleware"
	"talentdesk/internal/transport/http/shared"
	dErrors "talentdesk/pkg/domain-errors"
	"talentdesk/pkg/platform/sentinel"
)

// AggregateService is the read/write surface the aggregate handler needs.
type AggregateService interface {
	GetByID(ctx context.Context, uid string) (domain.Aggregate, error)
	GetAll(ctx context.Context) ([]domain.Aggregate, error)
	GetAllFromCache(ctx context.Context) ([]domain.Aggregate, error)
	GetAllAggregates(ctx context.Context) ([]domain.Aggregate, error)
	UpdateAccount(ctx context.Context, uid string, update aggregate.AccountUpdate) error
	UpdateTalent(ctx context.Context, uid string, update aggregate.TalentUpdate) error
	UpdateClient(ctx context.Context, uid string, update aggregate.ClientUpdate) error
}

// AggregateHandler serves the merged per-identity views.
type AggregateHandler struct {
	aggregates AggregateService
	logger     *slog.Logger
}

func NewAggregateHandler(aggregates AggregateService, logger *slog.Logger) *AggregateHandler {
	return &AggregateHandler{aggregates: aggregates, logger: logger}
}

// Register mounts the aggregate routes on an already-authenticated router.
func (h *AggregateHandler) Register(r chi.Router) {
	r.Get("/aggregates", h.handleList)
	r.Get("/aggregates/{uid}", h.handleGet)
	r.Patch("/aggregates/{uid}/account", h.handleUpdateAccount)
	r.Patch("/aggregates/{uid}/talent", h.handleUpdateTalent)
	r.Patch("/aggregates/{uid}/client", h.handleUpdateClient)
}

// handleList serves three read strategies selected by ?source=:
// the default accounts-led remote read, the cache-only snapshot, and the
// full three-collection fan-out.
func (h *AggregateHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		aggs []domain.Aggregate
		err  error
	)
	switch source := r.URL.Query().Get("source"); source {
	case "", "remote":
		aggs, err = h.aggregates.GetAll(ctx)
	case "cache":
		aggs, err = h.aggregates.GetAllFromCache(ctx)
	case "full":
		aggs, err = h.aggregates.GetAllAggregates(ctx)
	default:
		shared.WriteError(w, dErrors.Newf(dErrors.CodeBadRequest, "unknown source %q", source))
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list aggregates",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to list records"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"items": toAggregateResponses(aggs),
		"count": len(aggs),
	})
}

func (h *AggregateHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := chi.URLParam(r, "uid")

	agg, err := h.aggregates.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) || dErrors.Is(err, dErrors.CodeNotFound) {
			shared.WriteError(w, dErrors.Newf(dErrors.CodeNotFound, "record %s not found", uid))
			return
		}
		h.logger.ErrorContext(ctx, "failed to get aggregate",
			"request_id", middleware.GetRequestID(ctx),
			"uid", uid,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to load record"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, toAggregateResponse(agg))
}

type updateAccountRequest struct {
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Active *bool   `json:"active"`
}

func (h *AggregateHandler) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := chi.URLParam(r, "uid")

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	update := aggregate.AccountUpdate{
		Email:  optional(req.Email),
		Phone:  optional(req.Phone),
		Active: optional(req.Active),
	}
	h.applyUpdate(w, r, uid, func() error {
		return h.aggregates.UpdateAccount(ctx, uid, update)
	})
}

type updateTalentRequest struct {
	DisplayName *string `json:"displayName"`
	Profession  *string `json:"profession"`
	Bio         *string `json:"bio"`
	DailyRate   *int64  `json:"dailyRate"`
	Approved    *bool   `json:"approved"`
	Active      *bool   `json:"active"`
}

func (h *AggregateHandler) handleUpdateTalent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := chi.URLParam(r, "uid")

	var req updateTalentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	update := aggregate.TalentUpdate{
		DisplayName: optional(req.DisplayName),
		Profession:  optional(req.Profession),
		Bio:         optional(req.Bio),
		DailyRate:   optional(req.DailyRate),
		Approved:    optional(req.Approved),
		Active:      optional(req.Active),
	}
	h.applyUpdate(w, r, uid, func() error {
		return h.aggregates.UpdateTalent(ctx, uid, update)
	})
}

type updateClientRequest struct {
	CompanySegment *string `json:"companySegment"`
	AcceptedTerms  *bool   `json:"acceptedTerms"`
}

func (h *AggregateHandler) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := chi.URLParam(r, "uid")

	var req updateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	update := aggregate.ClientUpdate{
		CompanySegment: optional(req.CompanySegment),
		AcceptedTerms:  optional(req.AcceptedTerms),
	}
	h.applyUpdate(w, r, uid, func() error {
		return h.aggregates.UpdateClient(ctx, uid, update)
	})
}

func (h *AggregateHandler) applyUpdate(w http.ResponseWriter, r *http.Request, uid string, do func() error) {
	ctx := r.Context()
	if err := do(); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) || dErrors.Is(err, dErrors.CodeNotFound) {
			shared.WriteError(w, dErrors.Newf(dErrors.CodeNotFound, "record %s not found", uid))
			return
		}
		h.logger.ErrorContext(ctx, "failed to apply update",
			"request_id", middleware.GetRequestID(ctx),
			"uid", uid,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to apply update"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// optional maps an absent JSON field to Unchanged and a present one to Set.
// The admin edit surface never writes explicit nulls.
func optional[T any](v *T) docstore.Field[T] {
	if v == nil {
		return docstore.Field[T]{}
	}
	return docstore.Set(*v)
}
