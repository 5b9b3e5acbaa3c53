package service

import (
	"context"

	"unistay-backend/internal/domain"
	"unistay-backend/internal/logger"
	"unistay-backend/internal/repository"
)

type adminService struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityLogRepository
	creditRepo   repository.CreditHistoryRepository
}

func NewAdminService(userRepo repository.UserRepository, activityRepo repository.ActivityLogRepository, creditRepo repository.CreditHistoryRepository) AdminService {
	return &adminService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		creditRepo:   creditRepo,
	}
}

func (s *adminService) GetUser(ctx context.Context, userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *adminService) ListUserActivity(ctx context.Context, userID int32, page, pageSize int32) ([]domain.ActivityLog, int32, error) {
	return s.activityRepo.ListByUser(ctx, userID, page, pageSize)
}

func (s *adminService) ListCreditHistory(ctx context.Context, userID int32, page, pageSize int32) ([]domain.CreditScoreEntry, int32, error) {
	return s.creditRepo.ListByUser(ctx, userID, page, pageSize)
}

// DeactivateUser flags the account inactive. Users are never deleted.
func (s *adminService) DeactivateUser(ctx context.Context, userID int32) error {
	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return err
	}
	logger.Info("User deactivated", "user_id", userID)
	return nil
}
