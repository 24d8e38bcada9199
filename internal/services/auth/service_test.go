package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/openfest/gatekeeper/internal/dependencies/mocks"
	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/storage/memory"
)

type AuthServiceSuite struct {
	suite.Suite
	service *Service
	clock   *mocks.MockClock
	ctx     context.Context
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))
	s.service = New(memory.New(), s.clock, Config{SessionDuration: time.Hour})
	s.ctx = context.Background()
}

func (s *AuthServiceSuite) TestCreateStaff() {
	staff, err := s.service.CreateStaff(s.ctx, "gate1", "hunter22", "Gate One", model.RoleOperator)
	s.Require().NoError(err)
	s.Equal("gate1", staff.Username)
	s.Equal(model.RoleOperator, staff.Role)
	s.NotEqual("hunter22", staff.PasswordHash)
}

func (s *AuthServiceSuite) TestCreateStaffDuplicateUsername() {
	_, err := s.service.CreateStaff(s.ctx, "gate1", "hunter22", "Gate One", model.RoleOperator)
	s.Require().NoError(err)

	_, err = s.service.CreateStaff(s.ctx, "gate1", "other", "Other", model.RoleAdmin)
	s.ErrorIs(err, ErrUsernameExists)
}

func (s *AuthServiceSuite) TestEnsureStaffIdempotent() {
	s.Require().NoError(s.service.EnsureStaff(s.ctx, "admin", "secret123", "Administrator", model.RoleAdmin))
	s.Require().NoError(s.service.EnsureStaff(s.ctx, "admin", "different", "Administrator", model.RoleAdmin))

	// First password still works
	_, err := s.service.Login(s.ctx, "admin", "secret123")
	s.NoError(err)
}

func (s *AuthServiceSuite) TestLogin() {
	_, err := s.service.CreateStaff(s.ctx, "gate1", "hunter22", "Gate One", model.RoleOperator)
	s.Require().NoError(err)

	session, err := s.service.Login(s.ctx, "gate1", "hunter22")
	s.Require().NoError(err)
	s.NotEmpty(session.Token)
	s.Equal("gate1", session.Username)
	s.Equal(model.RoleOperator, session.Staff.Role)
	s.Equal(s.clock.Now().Add(time.Hour), session.ExpiresAt)
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.CreateStaff(s.ctx, "gate1", "hunter22", "Gate One", model.RoleOperator)
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "gate1", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceSuite) TestLoginUnknownUsername() {
	_, err := s.service.Login(s.ctx, "ghost", "whatever")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceSuite) TestValidateSession() {
	_, err := s.service.CreateStaff(s.ctx, "gate1", "hunter22", "Gate One", model.RoleOperator)
	s.Require().NoError(err)

	session, err := s.service.Login(s.ctx, "gate1", "hunter22")
	s.Require().NoError(err)

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal("gate1", validated.Username)
}

func (s *AuthServiceSuite) TestValidateSessionExpired() {
	_, err := s.service.CreateStaff(s.ctx, "gate1", "hunter22", "Gate One", model.RoleOperator)
	s.Require().NoError(err)

	session, err := s.service.Login(s.ctx, "gate1", "hunter22")
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *AuthServiceSuite) TestValidateSessionUnknownToken() {
	_, err := s.service.ValidateSession("sess_bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *AuthServiceSuite) TestInvalidateSession() {
	_, err := s.service.CreateStaff(s.ctx, "gate1", "hunter22", "Gate One", model.RoleOperator)
	s.Require().NoError(err)

	session, err := s.service.Login(s.ctx, "gate1", "hunter22")
	s.Require().NoError(err)

	s.service.InvalidateSession(session.Token)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *AuthServiceSuite) TestCleanExpiredSessions() {
	_, err := s.service.CreateStaff(s.ctx, "gate1", "hunter22", "Gate One", model.RoleOperator)
	s.Require().NoError(err)

	old, err := s.service.Login(s.ctx, "gate1", "hunter22")
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)
	fresh, err := s.service.Login(s.ctx, "gate1", "hunter22")
	s.Require().NoError(err)

	s.service.CleanExpiredSessions()

	_, err = s.service.ValidateSession(old.Token)
	s.ErrorIs(err, ErrInvalidSession)
	_, err = s.service.ValidateSession(fresh.Token)
	s.NoError(err)
}
