package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/YusovID/bughunt-service/internal/apperrors"
	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/internal/repository"
	"github.com/google/uuid"
)

type CreateUserInput struct {
	ID    string
	Name  string
	Email string
	Role  domain.Role
}

type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	ListAchievements(ctx context.Context) ([]domain.Achievement, error)
}

type UserServiceImpl struct {
	BaseService
	users        repository.UserRepository
	achievements repository.AchievementRepository
}

func NewUserService(db DB, log *slog.Logger, users repository.UserRepository, achievements repository.AchievementRepository) *UserServiceImpl {
	return &UserServiceImpl{
		BaseService:  NewBaseService(db, log),
		users:        users,
		achievements: achievements,
	}
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	const op = "internal.service.user.CreateUser"

	if strings.TrimSpace(input.Name) == "" {
		return nil, &apperrors.FieldError{Field: "name", Message: "must not be empty"}
	}

	if !input.Role.Valid() {
		return nil, &apperrors.FieldError{Field: "role", Message: fmt.Sprintf("has unknown value '%s'", input.Role)}
	}

	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}

	user := &domain.User{
		ID:       id,
		Name:     strings.TrimSpace(input.Name),
		Email:    input.Email,
		Role:     input.Role,
		JoinedAt: s.now(),
		TotalXP:  0,
		Badges:   []string{},
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user created", slog.String("op", op), slog.String("user_id", id), slog.String("role", string(user.Role)))

	return user, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	const op = "internal.service.user.GetUser"

	user, err := s.users.GetUserByID(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *UserServiceImpl) ListAchievements(ctx context.Context) ([]domain.Achievement, error) {
	const op = "internal.service.user.ListAchievements"

	achievements, err := s.achievements.ListAchievements(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return achievements, nil
}
