package service

import (
	"context"
	"fmt"

	"unistay-backend/internal/domain"
	"unistay-backend/internal/repository"
)

type propertyService struct {
	properties repository.PropertyRepository
}

func NewPropertyService(properties repository.PropertyRepository) PropertyService {
	return &propertyService{properties: properties}
}

func (s *propertyService) CreateProperty(ctx context.Context, ownerID int32, title, address string, monthlyRentCents int64) (*domain.Property, error) {
	if title == "" || address == "" {
		return nil, fmt.Errorf("%w: title and address are required", domain.ErrValidation)
	}
	if monthlyRentCents <= 0 {
		return nil, fmt.Errorf("%w: monthly rent must be positive", domain.ErrValidation)
	}

	p := &domain.Property{
		OwnerID:          ownerID,
		Title:            title,
		Address:          address,
		MonthlyRentCents: monthlyRentCents,
		Status:           domain.PropertyStatusAvailable,
	}
	if err := s.properties.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	return p, nil
}

func (s *propertyService) ListMyProperties(ctx context.Context, ownerID int32, page, pageSize int32) ([]domain.Property, int32, error) {
	return s.properties.ListByOwner(ctx, ownerID, page, pageSize)
}

func (s *propertyService) SetListingStatus(ctx context.Context, propertyID, callerID int32, callerRole domain.UserRole, status domain.PropertyStatus) error {
	switch status {
	case domain.PropertyStatusAvailable, domain.PropertyStatusUnlisted:
		// Owners manage their own listings; admins may act on any.
	case domain.PropertyStatusReported:
		if callerRole != domain.UserRoleAdmin {
			return domain.ErrWrongOwner
		}
	default:
		return fmt.Errorf("%w: status %q cannot be set directly", domain.ErrValidation, status)
	}

	if callerRole == domain.UserRoleAdmin {
		return s.properties.SetStatus(ctx, propertyID, status)
	}
	return s.properties.SetStatusForOwner(ctx, propertyID, callerID, status)
}
