package provisioning

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"talentdesk/internal/authprovider"
	"talentdesk/internal/docstore"
	"talentdesk/internal/domain"
	"talentdesk/internal/notify"
	"talentdesk/internal/remote"
	dErrors "talentdesk/pkg/domain-errors"
)

type ProvisioningSuite struct {
	suite.Suite
	ctx       context.Context
	store     *docstore.InMemory
	admins    *remote.Admins
	accounts  *remote.Accounts
	registrar *authprovider.InMemory
	mailer    *notify.InMemory
	svc       *Service
}

func (s *ProvisioningSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = docstore.NewInMemory()
	s.admins = remote.NewAdmins(s.store)
	s.accounts = remote.NewAccounts(s.store)
	s.registrar = authprovider.NewInMemory()
	s.mailer = notify.NewInMemory()
	s.svc = NewService(s.admins, s.accounts, s.registrar, s.mailer,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithClock(func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }),
	)
}

func TestProvisioningSuite(t *testing.T) {
	suite.Run(t, new(ProvisioningSuite))
}

func (s *ProvisioningSuite) TestProvisionNewPrincipal() {
	result, err := s.svc.Provision(s.ctx, "actor-1", Input{
		Email:  "new.admin@example.com",
		Name:   "New Admin",
		RoleID: "reviewer",
	})
	s.Require().NoError(err)

	s.Run("registers a fresh principal", func() {
		s.True(result.WasCreated)
		s.NotEmpty(result.Admin.UID)
		s.Len(result.TempPassword, 12)
		s.True(result.Admin.IsFirstAccess)
		s.Equal("actor-1", result.Admin.CreatedBy)
	})

	s.Run("persists the identity record", func() {
		stored, err := s.admins.FindByEmail(s.ctx, "new.admin@example.com")
		s.Require().NoError(err)
		s.Equal(result.Admin.UID, stored.UID)
		s.Equal("reviewer", stored.RoleID)
	})

	s.Run("sends exactly one credentials email", func() {
		messages := s.mailer.Messages()
		s.Require().Len(messages, 1)
		s.Equal("new.admin@example.com", messages[0].To)
		s.Contains(messages[0].Body, result.TempPassword)
	})
}

func (s *ProvisioningSuite) TestProvisionAdoptsExistingUser() {
	// The email already holds a principal and a marketplace account.
	s.registrar.Seed("talent@example.com")
	s.Require().NoError(s.accounts.Create(s.ctx, domain.Account{
		UID:        "acct-42",
		Email:      "talent@example.com",
		PersonType: domain.PersonTypeIndividual,
		Active:     true,
	}))

	result, err := s.svc.Provision(s.ctx, "actor-1", Input{
		Email:  "talent@example.com",
		RoleID: "viewer",
	})
	s.Require().NoError(err)

	s.Run("adopts the existing account uid", func() {
		s.False(result.WasCreated)
		s.Equal("acct-42", result.Admin.UID)
		s.Empty(result.TempPassword, "adopted users keep their credentials")
		s.False(result.Admin.IsFirstAccess)
	})

	s.Run("sends the promotion notice without credentials", func() {
		messages := s.mailer.Messages()
		s.Require().Len(messages, 1)
		s.Contains(messages[0].Subject, "admin access")
		s.NotContains(messages[0].Body, "Temporary password")
	})
}

func (s *ProvisioningSuite) TestProvisionInconsistentState() {
	// Principal exists at the provider, but no marketplace account matches.
	s.registrar.Seed("orphan@example.com")

	_, err := s.svc.Provision(s.ctx, "actor-1", Input{
		Email:  "orphan@example.com",
		RoleID: "viewer",
	})
	s.Require().True(dErrors.Is(err, dErrors.CodeInconsistentState))

	s.Run("creates nothing", func() {
		_, err := s.admins.FindByEmail(s.ctx, "orphan@example.com")
		s.Require().Error(err)
		s.Empty(s.mailer.Messages())
	})
}

func (s *ProvisioningSuite) TestProvisionConflict() {
	_, err := s.svc.Provision(s.ctx, "actor-1", Input{Email: "dup@example.com", RoleID: "viewer"})
	s.Require().NoError(err)

	_, err = s.svc.Provision(s.ctx, "actor-1", Input{Email: "dup@example.com", RoleID: "viewer"})
	s.Require().True(dErrors.Is(err, dErrors.CodeConflict))
}

func (s *ProvisioningSuite) TestProvisionValidation() {
	s.Run("rejects a malformed email", func() {
		_, err := s.svc.Provision(s.ctx, "actor-1", Input{Email: "not-an-email", RoleID: "viewer"})
		s.Require().True(dErrors.Is(err, dErrors.CodeBadRequest))
	})

	s.Run("rejects a missing role", func() {
		_, err := s.svc.Provision(s.ctx, "actor-1", Input{Email: "x@example.com"})
		s.Require().True(dErrors.Is(err, dErrors.CodeBadRequest))
	})
}

func (s *ProvisioningSuite) TestEmailFailureDoesNotRollBack() {
	s.mailer.FailWith = io.ErrClosedPipe

	result, err := s.svc.Provision(s.ctx, "actor-1", Input{
		Email:  "unreachable@example.com",
		RoleID: "viewer",
	})
	s.Require().NoError(err, "delivery failure degrades, never rolls back")

	stored, err := s.admins.FindByEmail(s.ctx, "unreachable@example.com")
	s.Require().NoError(err)
	s.Equal(result.Admin.UID, stored.UID)
}

func (s *ProvisioningSuite) TestRemoveAdmin() {
	result, err := s.svc.Provision(s.ctx, "actor-1", Input{Email: "gone@example.com", RoleID: "viewer"})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.RemoveAdmin(s.ctx, "actor-1", result.Admin.UID))

	_, err = s.admins.FindByEmail(s.ctx, "gone@example.com")
	s.Require().Error(err)

	err = s.svc.RemoveAdmin(s.ctx, "actor-1", result.Admin.UID)
	s.Require().True(dErrors.Is(err, dErrors.CodeNotFound))
}

func (s *ProvisioningSuite) TestTouchLastLogin() {
	result, err := s.svc.Provision(s.ctx, "actor-1", Input{Email: "login@example.com", RoleID: "viewer"})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.TouchLastLogin(s.ctx, result.Admin.UID))

	stored, err := s.admins.GetByID(s.ctx, result.Admin.UID)
	s.Require().NoError(err)
	s.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), stored.LastLogin)
}
