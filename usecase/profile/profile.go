package profile

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/plannery/backend/domain"
	"github.com/plannery/backend/repository"
	"github.com/plannery/backend/usecase"
)

type UseCase struct {
	users  repository.UserRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
}

func New(users repository.UserRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		buffer: buffer,
		logger: logger,
	}
}

func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// UpdateProfile edits display fields. Email and password never change here.
func (uc *UseCase) UpdateProfile(ctx context.Context, userID, name, avatarURL string, preferences map[string]string) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}
	user.AvatarURL = avatarURL
	if preferences != nil {
		user.Preferences = preferences
	}

	if err := uc.users.Update(ctx, user); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		if uc.buffer != nil {
			if bufErr := uc.buffer.BufferProfile(ctx, usecase.OperationUpdate, user); bufErr != nil {
				uc.logger.Error("failed to buffer profile update", zap.Error(bufErr))
				return nil, err
			}
			uc.logger.Warn("profile update buffered due to repository error", zap.Error(err))
			return user, nil
		}
		return nil, err
	}
	return user, nil
}
