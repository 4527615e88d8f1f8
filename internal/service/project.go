package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/YusovID/bughunt-service/internal/apperrors"
	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/internal/lifecycle"
	"github.com/YusovID/bughunt-service/internal/repository"
	"github.com/google/uuid"
)

type CreateProjectInput struct {
	Name        string
	Description string
	// MaintainerID is honored for admins only; maintainers always own what they create.
	MaintainerID string
}

type ProjectService interface {
	CreateProject(ctx context.Context, actor domain.Actor, input CreateProjectInput) (*domain.Project, error)
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error)
	UpdateProjectStatus(ctx context.Context, actor domain.Actor, projectID string, status domain.ProjectStatus) (*domain.Project, error)
}

type ProjectServiceImpl struct {
	BaseService
	users    repository.UserRepository
	projects repository.ProjectRepository
}

func NewProjectService(db DB, log *slog.Logger, users repository.UserRepository, projects repository.ProjectRepository) *ProjectServiceImpl {
	return &ProjectServiceImpl{
		BaseService: NewBaseService(db, log),
		users:       users,
		projects:    projects,
	}
}

func (s *ProjectServiceImpl) CreateProject(ctx context.Context, actor domain.Actor, input CreateProjectInput) (*domain.Project, error) {
	const op = "internal.service.project.CreateProject"

	if err := lifecycle.RequireRole(actor, domain.RoleMaintainer, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, &apperrors.FieldError{Field: "name", Message: "must not be empty"}
	}

	maintainerID := actor.UserID
	if actor.Role == domain.RoleAdmin && input.MaintainerID != "" {
		maintainerID = input.MaintainerID
	}

	maintainer, err := s.users.GetUserByID(ctx, s.db, maintainerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if maintainer.Role == domain.RoleTester {
		return nil, &apperrors.RoleMismatchError{UserID: maintainer.ID, Role: string(maintainer.Role), Required: "maintainer or admin"}
	}

	now := s.now()
	project := &domain.Project{
		ID:           uuid.NewString(),
		MaintainerID: maintainerID,
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		Status:       domain.ProjectStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.projects.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("project created", slog.String("op", op), slog.String("project_id", project.ID), slog.String("maintainer_id", maintainerID))

	return project, nil
}

func (s *ProjectServiceImpl) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	const op = "internal.service.project.GetProject"

	project, err := s.projects.GetProjectByID(ctx, s.db, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return project, nil
}

func (s *ProjectServiceImpl) ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	const op = "internal.service.project.ListProjects"

	projects, err := s.projects.ListProjects(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return projects, nil
}

func (s *ProjectServiceImpl) UpdateProjectStatus(ctx context.Context, actor domain.Actor, projectID string, status domain.ProjectStatus) (*domain.Project, error) {
	const op = "internal.service.project.UpdateProjectStatus"

	if !status.Valid() {
		return nil, &apperrors.FieldError{Field: "status", Message: fmt.Sprintf("has unknown value '%s'", status)}
	}

	project, err := s.projects.GetProjectByID(ctx, s.db, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := lifecycle.AuthorizeTriage(actor, project); err != nil {
		return nil, err
	}

	project, err = s.projects.UpdateProjectStatus(ctx, projectID, status, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("project status updated", slog.String("op", op), slog.String("project_id", projectID), slog.String("status", string(status)))

	return project, nil
}
