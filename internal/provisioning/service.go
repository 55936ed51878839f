// Package provisioning creates and removes console administrators. An admin
// is two records held in lockstep: a principal at the auth provider and an
// identity document in the admins collection.
package provisioning

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"talentdesk/internal/audit"
	"talentdesk/internal/authprovider"
	"talentdesk/internal/domain"
	"talentdesk/internal/notify"
	dErrors "talentdesk/pkg/domain-errors"
	"talentdesk/pkg/email"
	"talentdesk/pkg/platform/sentinel"
)

var provisionOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "talentdesk_provisioning_total",
	Help: "Admin provisioning attempts by outcome",
}, []string{"outcome"})

// AdminStore is the slice of the admins remote this workflow needs.
type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (domain.AdminIdentity, error)
	Create(ctx context.Context, admin domain.AdminIdentity) error
	GetAll(ctx context.Context) ([]domain.AdminIdentity, error)
	Delete(ctx context.Context, uid string) error
	TouchLastLogin(ctx context.Context, uid string, at time.Time) error
}

// AccountIndex resolves an existing marketplace account by email. Used to
// adopt a user who already holds a principal at the auth provider.
type AccountIndex interface {
	FindUIDByEmail(ctx context.Context, email string) (string, error)
}

type Service struct {
	admins    AdminStore
	accounts  AccountIndex
	registrar authprovider.Registrar
	mailer    notify.Mailer
	logger    *slog.Logger
	publisher *audit.Publisher
	now       func() time.Time
}

type Option func(*Service)

func WithAuditPublisher(publisher *audit.Publisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(admins AdminStore, accounts AccountIndex, registrar authprovider.Registrar, mailer notify.Mailer, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		admins:    admins,
		accounts:  accounts,
		registrar: registrar,
		mailer:    mailer,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Input describes the admin to provision.
type Input struct {
	Email  string
	Name   string
	RoleID string
}

// Result reports what Provision did. TempPassword is set only when a new
// principal was registered; adopted users keep their existing credentials.
type Result struct {
	Admin        domain.AdminIdentity
	TempPassword string
	WasCreated   bool
}

// Provision grants admin access to an email address, creating a new
// authenticated principal when none exists or adopting the user's existing
// one. Exactly one notification email is attempted; a delivery failure
// degrades the outcome but never rolls back the grant.
func (s *Service) Provision(ctx context.Context, actorID string, input Input) (Result, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if !govalidator.IsEmail(input.Email) {
		return Result{}, dErrors.Newf(dErrors.CodeBadRequest, "invalid email address %q", input.Email)
	}
	if input.RoleID == "" {
		return Result{}, dErrors.New(dErrors.CodeBadRequest, "role id is required")
	}

	if _, err := s.admins.FindByEmail(ctx, input.Email); err == nil {
		provisionOutcomes.WithLabelValues("conflict").Inc()
		return Result{}, dErrors.Newf(dErrors.CodeConflict, "admin with email %s already exists", input.Email)
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return Result{}, err
	}

	password, err := generatePassword()
	if err != nil {
		return Result{}, dErrors.Wrap(err, dErrors.CodeInternal, "generate temporary password")
	}

	uid, err := s.registrar.Register(ctx, input.Email, password)
	created := true
	switch {
	case err == nil:
	case errors.Is(err, authprovider.ErrEmailTaken):
		// The email already has a principal. Adopt the marketplace user
		// instead of creating anything new.
		created = false
		password = ""
		uid, err = s.accounts.FindUIDByEmail(ctx, input.Email)
		if errors.Is(err, sentinel.ErrNotFound) {
			provisionOutcomes.WithLabelValues("inconsistent").Inc()
			return Result{}, dErrors.Newf(dErrors.CodeInconsistentState,
				"email %s is registered at the auth provider but has no account record", input.Email)
		}
		if err != nil {
			return Result{}, err
		}
	default:
		return Result{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "register principal")
	}

	now := s.now().UTC()
	admin := domain.AdminIdentity{
		UID:           uid,
		Name:          input.Name,
		Email:         input.Email,
		RoleID:        input.RoleID,
		IsFirstAccess: created,
		CreatedBy:     actorID,
		CreatedAt:     now,
		UpdatedBy:     actorID,
		UpdatedAt:     now,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return Result{}, err
	}

	s.sendWelcome(ctx, admin, password, created)

	if created {
		provisionOutcomes.WithLabelValues("created").Inc()
		s.emit(ctx, audit.ActionAdminProvisioned, actorID, uid, input.Email, "new principal registered")
	} else {
		provisionOutcomes.WithLabelValues("adopted").Inc()
		s.emit(ctx, audit.ActionAdminAdopted, actorID, uid, input.Email, "existing account granted admin access")
	}

	return Result{Admin: admin, TempPassword: password, WasCreated: created}, nil
}

// ListAdmins returns every provisioned admin.
func (s *Service) ListAdmins(ctx context.Context) ([]domain.AdminIdentity, error) {
	return s.admins.GetAll(ctx)
}

// RemoveAdmin revokes console access by deleting the identity record. The
// auth-provider principal is left in place; it may still back a marketplace
// account.
func (s *Service) RemoveAdmin(ctx context.Context, actorID, uid string) error {
	err := s.admins.Delete(ctx, uid)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, "admin %s not found", uid)
	}
	if err != nil {
		return err
	}
	s.emit(ctx, audit.ActionAdminRemoved, actorID, uid, "", "admin access revoked")
	return nil
}

// TouchLastLogin stamps a successful sign-in on the admin record.
func (s *Service) TouchLastLogin(ctx context.Context, uid string) error {
	return s.admins.TouchLastLogin(ctx, uid, s.now().UTC())
}

// sendWelcome attempts the single notification for a grant. Failures are
// logged and audited; the admin record already exists and stays.
func (s *Service) sendWelcome(ctx context.Context, admin domain.AdminIdentity, password string, created bool) {
	firstName := admin.Name
	if firstName == "" {
		firstName, _ = email.DeriveNameFromEmail(admin.Email)
	}

	var subject, body string
	var err error
	if created {
		subject, body, err = notify.RenderCredentials(firstName, admin.Email, password)
	} else {
		subject, body, err = notify.RenderPromoted(firstName, admin.Email)
	}
	if err == nil {
		err = s.mailer.Send(ctx, admin.Email, subject, body)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "welcome email not delivered",
			"uid", admin.UID, "email", admin.Email, "error", err)
		s.emit(ctx, audit.ActionNotificationUndeliverable, "", admin.UID, admin.Email, "welcome email failed")
	}
}

func (s *Service) emit(ctx context.Context, action, actorID, uid, emailAddr, detail string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Emit(ctx, action,
		"actor_id", actorID,
		"subject", uid,
		"email", emailAddr,
		"detail", detail,
	)
}
