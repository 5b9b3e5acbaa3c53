package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"unistay-backend/internal/domain"
	"unistay-backend/internal/security"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", 60)

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := NewAuthService(users, tokens)

		users.On("GetByEmail", ctx, "amina@example.com").Return(nil, domain.ErrNotFound)
		users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.UserRoleStudent &&
				u.Email == "amina@example.com" &&
				u.CreditScore == domain.CreditScoreDefault &&
				u.IsActive &&
				u.PasswordHash != "secret-password"
		})).Return(nil)

		user, err := svc.Register(ctx, domain.UserRoleStudent, "Amina Diallo", " Amina@Example.com ", "", "secret-password")
		assert.NoError(t, err)
		assert.Equal(t, "amina@example.com", user.Email)
		users.AssertExpectations(t)
	})

	t.Run("AdminRegistrationRejected", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := NewAuthService(users, tokens)

		_, err := svc.Register(ctx, domain.UserRoleAdmin, "Eve", "eve@example.com", "", "secret-password")
		assert.ErrorIs(t, err, domain.ErrValidation)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ShortPasswordRejected", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := NewAuthService(users, tokens)

		_, err := svc.Register(ctx, domain.UserRoleStudent, "Amina", "amina@example.com", "", "short")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("DuplicateEmailRejected", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := NewAuthService(users, tokens)

		users.On("GetByEmail", ctx, "amina@example.com").Return(&domain.User{ID: 5}, nil)

		_, err := svc.Register(ctx, domain.UserRoleStudent, "Amina", "amina@example.com", "", "secret-password")
		assert.ErrorIs(t, err, domain.ErrValidation)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", 60)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	assert.NoError(t, err)

	activeUser := &domain.User{
		ID:           42,
		Role:         domain.UserRoleOwner,
		Email:        "owner@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}

	t.Run("SuccessMintsCSRFBoundToken", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := NewAuthService(users, tokens)
		users.On("GetByEmail", ctx, "owner@example.com").Return(activeUser, nil)

		user, accessToken, csrfToken, err := svc.Login(ctx, "owner@example.com", "secret-password")
		assert.NoError(t, err)
		assert.Equal(t, int32(42), user.ID)
		assert.NotEmpty(t, csrfToken)

		claims, err := tokens.ValidateToken(accessToken)
		assert.NoError(t, err)
		assert.Equal(t, csrfToken, claims.CSRFToken)
		assert.Equal(t, domain.UserRoleOwner, claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := NewAuthService(users, tokens)
		users.On("GetByEmail", ctx, "owner@example.com").Return(activeUser, nil)

		_, _, _, err := svc.Login(ctx, "owner@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmailGetsSameError", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := NewAuthService(users, tokens)
		users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound)

		_, _, _, err := svc.Login(ctx, "ghost@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("DeactivatedUserCannotLogin", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := NewAuthService(users, tokens)
		inactive := *activeUser
		inactive.IsActive = false
		users.On("GetByEmail", ctx, "owner@example.com").Return(&inactive, nil)

		_, _, _, err := svc.Login(ctx, "owner@example.com", "secret-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
