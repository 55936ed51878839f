package verification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"talentdesk/internal/audit"
	"talentdesk/internal/blobstore"
	"talentdesk/internal/docstore"
	"talentdesk/internal/domain"
	"talentdesk/internal/remote"
	dErrors "talentdesk/pkg/domain-errors"
	"talentdesk/pkg/platform/sentinel"
)

var (
	decisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talentdesk_verification_decisions_total",
		Help: "Bulk verification decisions by outcome",
	}, []string{"decision"})
	cleanupFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talentdesk_verification_cleanup_failures_total",
		Help: "Blob cleanup attempts that failed or timed out during rejection",
	}, []string{"reason"})
)

// defaultCleanupTimeout bounds each blob delete during rejection. A slow
// storage service must not hold an admin decision hostage; the orphaned blob
// is an accepted residual cost.
const defaultCleanupTimeout = 3000 * time.Millisecond

// TalentSource is the slice of the talents remote this workflow needs.
type TalentSource interface {
	GetByID(ctx context.Context, uid string) (domain.TalentProfile, error)
	PatchDocuments(ctx context.Context, uid string, changes map[domain.DocumentType]remote.DocumentChange) error
	ApproveAll(ctx context.Context, uid string, changes map[domain.DocumentType]remote.DocumentChange) error
}

// CacheRefresher re-synchronizes the cached aggregate after a decision.
type CacheRefresher interface {
	RefreshTalent(ctx context.Context, talent domain.TalentProfile)
}

// Service drives the document verification state machine:
// NotSubmitted -> PendingReview -> {Approved, Rejected}, with rejected
// documents free to re-enter PendingReview on resubmission. Nothing locks
// across the steps of a decision; concurrent decisions for the same talent
// resolve last-write-wins at the remote store.
type Service struct {
	talents        TalentSource
	cache          CacheRefresher
	blobs          blobstore.Deleter
	logger         *slog.Logger
	publisher      *audit.Publisher
	cleanupTimeout time.Duration
}

type Option func(*Service)

func WithAuditPublisher(publisher *audit.Publisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithCleanupTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.cleanupTimeout = timeout
	}
}

func NewService(talents TalentSource, cache CacheRefresher, blobs blobstore.Deleter, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		talents:        talents,
		cache:          cache,
		blobs:          blobs,
		logger:         logger,
		cleanupTimeout: defaultCleanupTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// ApproveAll approves every required document for uid in one batched patch
// and flips the profile-level approved flag. Refused unless the whole set is
// pending review.
func (s *Service) ApproveAll(ctx context.Context, actorID, uid string) (domain.TalentProfile, error) {
	talent, err := s.loadTalent(ctx, uid)
	if err != nil {
		return domain.TalentProfile{}, err
	}
	if !CanApproveAll(talent.Documents) {
		return domain.TalentProfile{}, dErrors.New(dErrors.CodeInvalidState,
			"every required document must be pending review before bulk approval")
	}

	changes := make(map[domain.DocumentType]remote.DocumentChange, len(domain.RequiredDocumentTypes))
	docs := make(map[domain.DocumentType]domain.Document, len(talent.Documents))
	for dt, doc := range talent.Documents {
		docs[dt] = doc
	}
	for _, dt := range domain.RequiredDocumentTypes {
		changes[dt] = remote.DocumentChange{Status: docstore.Set(int(domain.DocumentApproved))}
		doc := talent.Document(dt)
		doc.Status = domain.DocumentApproved
		docs[dt] = doc
	}

	if err := s.talents.ApproveAll(ctx, uid, changes); err != nil {
		return domain.TalentProfile{}, err
	}

	updated := talent.WithDocuments(docs)
	updated.Approved = true
	s.cache.RefreshTalent(ctx, updated)

	decisions.WithLabelValues("approve_all").Inc()
	s.emit(ctx, audit.ActionDocumentsApproved, actorID, uid, "all required documents approved")
	return updated, nil
}

// RejectDocuments rejects the given document types with per-type reviewer
// observations. Stored blobs are cleaned up best-effort first (bounded per
// document by the cleanup timeout, failures logged and skipped), then all
// document transitions land in one batched sparse patch, then the cached
// aggregate is refreshed.
func (s *Service) RejectDocuments(ctx context.Context, actorID, uid string, rejected []domain.DocumentType, observations map[domain.DocumentType]string) (domain.TalentProfile, error) {
	if len(rejected) == 0 {
		return domain.TalentProfile{}, dErrors.New(dErrors.CodeBadRequest, "no document types to reject")
	}
	for _, dt := range rejected {
		if !domain.ValidDocumentType(dt) {
			return domain.TalentProfile{}, dErrors.Newf(dErrors.CodeBadRequest, "unknown document type %q", dt)
		}
	}

	talent, err := s.loadTalent(ctx, uid)
	if err != nil {
		return domain.TalentProfile{}, err
	}

	// Step 1: best-effort blob cleanup, never fatal to the rejection.
	for _, dt := range rejected {
		doc := talent.Document(dt)
		if doc.URL == "" {
			continue
		}
		s.cleanupBlob(ctx, uid, dt, doc.URL)
	}

	// Step 2+3: one batched sparse patch with the metadata transitions.
	changes := make(map[domain.DocumentType]remote.DocumentChange, len(rejected))
	docs := make(map[domain.DocumentType]domain.Document, len(talent.Documents))
	for dt, doc := range talent.Documents {
		docs[dt] = doc
	}
	for _, dt := range rejected {
		changes[dt] = remote.DocumentChange{
			Status:      docstore.Set(int(domain.DocumentRejected)),
			Observation: docstore.Set(observations[dt]),
			URL:         docstore.Null[string](),
		}
		doc := talent.Document(dt)
		doc.Status = domain.DocumentRejected
		doc.Observation = observations[dt]
		doc.URL = ""
		docs[dt] = doc
	}
	if err := s.talents.PatchDocuments(ctx, uid, changes); err != nil {
		return domain.TalentProfile{}, err
	}

	// Step 4: re-synchronize the cached aggregate.
	updated := talent.WithDocuments(docs)
	s.cache.RefreshTalent(ctx, updated)

	decisions.WithLabelValues("reject").Inc()
	s.emit(ctx, audit.ActionDocumentsRejected, actorID, uid, "rejected: "+typesDetail(rejected))
	return updated, nil
}

// cleanupBlob deletes one stored object, bounded by the cleanup timeout.
// Timeouts and failures are absorbed: the metadata transition still proceeds
// and the orphaned blob is left for manual sweep.
func (s *Service) cleanupBlob(ctx context.Context, uid string, dt domain.DocumentType, rawURL string) {
	objectName, err := blobstore.ObjectNameFromURL(rawURL)
	if err != nil {
		cleanupFailures.WithLabelValues("bad_url").Inc()
		s.logger.WarnContext(ctx, "cannot derive blob object name, skipping cleanup",
			"uid", uid, "document_type", dt, "error", err)
		return
	}

	deleteCtx, cancel := context.WithTimeout(ctx, s.cleanupTimeout)
	defer cancel()
	if err := s.blobs.Delete(deleteCtx, objectName); err != nil {
		reason := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout"
		}
		cleanupFailures.WithLabelValues(reason).Inc()
		s.logger.WarnContext(ctx, "blob cleanup failed, leaving orphaned object",
			"uid", uid, "document_type", dt, "object", objectName, "reason", reason, "error", err)
		s.emit(ctx, audit.ActionStorageCleanupFailed, "", uid, "object "+objectName+": "+reason)
	}
}

func (s *Service) loadTalent(ctx context.Context, uid string) (domain.TalentProfile, error) {
	talent, err := s.talents.GetByID(ctx, uid)
	if errors.Is(err, sentinel.ErrNotFound) {
		return domain.TalentProfile{}, dErrors.Newf(dErrors.CodeNotFound, "talent %s not found", uid)
	}
	if err != nil {
		return domain.TalentProfile{}, err
	}
	return talent, nil
}

func (s *Service) emit(ctx context.Context, action, actorID, uid, detail string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Emit(ctx, action,
		"actor_id", actorID,
		"subject", uid,
		"detail", detail,
	)
}

func typesDetail(types []domain.DocumentType) string {
	detail := ""
	for i, dt := range types {
		if i > 0 {
			detail += ", "
		}
		detail += string(dt)
	}
	return detail
}
