package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"unistay-backend/internal/domain"
)

func TestSetListingStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerUnlistsOwnProperty", func(t *testing.T) {
		properties := new(MockPropertyRepo)
		svc := NewPropertyService(properties)
		properties.On("SetStatusForOwner", ctx, int32(3), int32(42), domain.PropertyStatusUnlisted).Return(nil)

		err := svc.SetListingStatus(ctx, 3, 42, domain.UserRoleOwner, domain.PropertyStatusUnlisted)
		assert.NoError(t, err)
		properties.AssertExpectations(t)
	})

	t.Run("OwnerCannotMarkReported", func(t *testing.T) {
		properties := new(MockPropertyRepo)
		svc := NewPropertyService(properties)

		err := svc.SetListingStatus(ctx, 3, 42, domain.UserRoleOwner, domain.PropertyStatusReported)
		assert.True(t, domain.IsNotFoundOrUnauthorized(err))
		properties.AssertNotCalled(t, "SetStatusForOwner", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AdminMarksReportedUnscoped", func(t *testing.T) {
		properties := new(MockPropertyRepo)
		svc := NewPropertyService(properties)
		properties.On("SetStatus", ctx, int32(3), domain.PropertyStatusReported).Return(nil)

		err := svc.SetListingStatus(ctx, 3, 1, domain.UserRoleAdmin, domain.PropertyStatusReported)
		assert.NoError(t, err)
		properties.AssertExpectations(t)
	})

	t.Run("WorkflowStatusesCannotBeSetDirectly", func(t *testing.T) {
		properties := new(MockPropertyRepo)
		svc := NewPropertyService(properties)

		err := svc.SetListingStatus(ctx, 3, 42, domain.UserRoleOwner, domain.PropertyStatusPaid)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
