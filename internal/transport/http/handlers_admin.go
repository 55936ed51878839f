package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talentdesk/internal/domain"
	"talentdesk/internal/platform/middleware"
	"talentdesk/internal/provisioning"
	"talentdesk/internal/transport/http/shared"
	dErrors "talentdesk/pkg/domain-errors"
)

// ProvisioningService is the admin lifecycle surface the handler needs.
type ProvisioningService interface {
	Provision(ctx context.Context, actorID string, input provisioning.Input) (provisioning.Result, error)
	ListAdmins(ctx context.Context) ([]domain.AdminIdentity, error)
	RemoveAdmin(ctx context.Context, actorID, uid string) error
}

// RoleCatalog lists the grantable roles.
type RoleCatalog interface {
	ListRoles(ctx context.Context) ([]domain.Role, error)
}

// AdminHandler exposes admin provisioning and the role catalog.
type AdminHandler struct {
	provisioning ProvisioningService
	roles        RoleCatalog
	logger       *slog.Logger
}

func NewAdminHandler(provisioning ProvisioningService, roles RoleCatalog, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{provisioning: provisioning, roles: roles, logger: logger}
}

// Register mounts the admin routes on an already-authenticated router.
func (h *AdminHandler) Register(r chi.Router) {
	r.Post("/admins", h.handleProvision)
	r.Get("/admins", h.handleList)
	r.Delete("/admins/{uid}", h.handleRemove)
	r.Get("/roles", h.handleListRoles)
}

type provisionRequest struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	RoleID string `json:"roleId"`
}

type provisionResponse struct {
	Admin      adminResponse `json:"admin"`
	WasCreated bool          `json:"wasCreated"`
}

func (h *AdminHandler) handleProvision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actorID := middleware.GetAdminID(ctx)

	var req provisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.provisioning.Provision(ctx, actorID, provisioning.Input{
		Email:  req.Email,
		Name:   req.Name,
		RoleID: req.RoleID,
	})
	if err != nil {
		switch dErrors.CodeOf(err) {
		case dErrors.CodeBadRequest, dErrors.CodeConflict, dErrors.CodeInconsistentState:
			shared.WriteError(w, err)
		default:
			h.logger.ErrorContext(ctx, "failed to provision admin",
				"request_id", middleware.GetRequestID(ctx),
				"email", req.Email,
				"error", err.Error(),
			)
			shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to provision admin"))
		}
		return
	}

	// The temporary password travels only in the welcome email, never in the
	// API response.
	shared.WriteJSON(w, http.StatusCreated, provisionResponse{
		Admin:      toAdminResponse(result.Admin),
		WasCreated: result.WasCreated,
	})
}

func (h *AdminHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	admins, err := h.provisioning.ListAdmins(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list admins",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to list admins"))
		return
	}

	items := make([]adminResponse, 0, len(admins))
	for _, admin := range admins {
		items = append(items, toAdminResponse(admin))
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}

func (h *AdminHandler) handleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := chi.URLParam(r, "uid")
	actorID := middleware.GetAdminID(ctx)

	if err := h.provisioning.RemoveAdmin(ctx, actorID, uid); err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to remove admin",
			"request_id", middleware.GetRequestID(ctx),
			"uid", uid,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to remove admin"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) handleListRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	roles, err := h.roles.ListRoles(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list roles",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to list roles"))
		return
	}

	items := make([]roleResponse, 0, len(roles))
	for _, role := range roles {
		items = append(items, toRoleResponse(role))
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}
