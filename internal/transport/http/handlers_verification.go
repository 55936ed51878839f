package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talentdesk/internal/domain"
	"talentdesk/internal/platform/middleware"
	"talentdesk/internal/transport/http/shared"
	dErrors "talentdesk/pkg/domain-errors"
)

// VerificationService is the decision surface the verification handler needs.
type VerificationService interface {
	ApproveAll(ctx context.Context, actorID, uid string) (domain.TalentProfile, error)
	RejectDocuments(ctx context.Context, actorID, uid string, rejected []domain.DocumentType, observations map[domain.DocumentType]string) (domain.TalentProfile, error)
}

// VerificationHandler exposes the document review decisions.
type VerificationHandler struct {
	verification VerificationService
	logger       *slog.Logger
}

func NewVerificationHandler(verification VerificationService, logger *slog.Logger) *VerificationHandler {
	return &VerificationHandler{verification: verification, logger: logger}
}

// Register mounts the verification routes on an already-authenticated router.
func (h *VerificationHandler) Register(r chi.Router) {
	r.Post("/talents/{uid}/documents/approve-all", h.handleApproveAll)
	r.Post("/talents/{uid}/documents/reject", h.handleReject)
}

func (h *VerificationHandler) handleApproveAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := chi.URLParam(r, "uid")
	actorID := middleware.GetAdminID(ctx)

	talent, err := h.verification.ApproveAll(ctx, actorID, uid)
	if err != nil {
		h.writeDecisionError(w, r, uid, "approve all documents", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toTalentResponse(&talent))
}

type rejectRequest struct {
	Documents []rejectedDocument `json:"documents"`
}

type rejectedDocument struct {
	Type        string `json:"type"`
	Observation string `json:"observation"`
}

func (h *VerificationHandler) handleReject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := chi.URLParam(r, "uid")
	actorID := middleware.GetAdminID(ctx)

	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	rejected := make([]domain.DocumentType, 0, len(req.Documents))
	observations := make(map[domain.DocumentType]string, len(req.Documents))
	for _, doc := range req.Documents {
		dt := domain.DocumentType(doc.Type)
		rejected = append(rejected, dt)
		observations[dt] = doc.Observation
	}

	talent, err := h.verification.RejectDocuments(ctx, actorID, uid, rejected, observations)
	if err != nil {
		h.writeDecisionError(w, r, uid, "reject documents", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, toTalentResponse(&talent))
}

func (h *VerificationHandler) writeDecisionError(w http.ResponseWriter, r *http.Request, uid, action string, err error) {
	ctx := r.Context()
	switch dErrors.CodeOf(err) {
	case dErrors.CodeBadRequest, dErrors.CodeNotFound, dErrors.CodeInvalidState:
		shared.WriteError(w, err)
	default:
		h.logger.ErrorContext(ctx, "verification decision failed",
			"request_id", middleware.GetRequestID(ctx),
			"uid", uid,
			"action", action,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to "+action))
	}
}
