package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/bughunt-service/internal/apperrors"
	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

var projectColumns = []string{
	"id", "maintainer_id", "name", "description", "status",
	"participant_count", "bugs_found_count", "bugs_resolved_count",
	"created_at", "updated_at",
}

type ProjectRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewProjectRepository(db *sqlx.DB, log *slog.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ProjectRepository) CreateProject(ctx context.Context, project *domain.Project) error {
	const op = "internal.repository.postgres.CreateProject"

	query, args, err := r.sq.Insert("projects").
		Columns(projectColumns...).
		Values(
			project.ID, project.MaintainerID, project.Name, project.Description, project.Status,
			project.ParticipantCount, project.BugsFoundCount, project.BugsResolvedCount,
			project.CreatedAt, project.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if mapped := mapWriteError(err, "project", project.ID); mapped != nil {
			return fmt.Errorf("%s: %w", op, mapped)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *ProjectRepository) GetProjectByID(ctx context.Context, ext sqlx.ExtContext, projectID string) (*domain.Project, error) {
	const op = "internal.repository.postgres.GetProjectByID"

	return r.getProject(ctx, ext, op, projectID, false)
}

func (r *ProjectRepository) GetProjectByIDWithLock(ctx context.Context, tx *sqlx.Tx, projectID string) (*domain.Project, error) {
	const op = "internal.repository.postgres.GetProjectByIDWithLock"

	return r.getProject(ctx, tx, op, projectID, true)
}

func (r *ProjectRepository) getProject(ctx context.Context, ext sqlx.ExtContext, op, projectID string, lock bool) (*domain.Project, error) {
	builder := r.sq.Select(projectColumns...).
		From("projects").
		Where(sq.Eq{"id": projectID})

	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var project domain.Project
	if err := sqlx.GetContext(ctx, ext, &project, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, &apperrors.NotFoundError{Kind: "project", ID: projectID})
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &project, nil
}

func (r *ProjectRepository) ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	const op = "internal.repository.postgres.ListProjects"

	where := sq.Eq{}
	if filter.MaintainerID != nil {
		where["maintainer_id"] = *filter.MaintainerID
	}

	if filter.Status != nil {
		where["status"] = *filter.Status
	}

	builder := r.sq.Select(projectColumns...).
		From("projects").
		OrderBy("created_at DESC", "id")

	if len(where) > 0 {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	projects := []domain.Project{}
	if err := r.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return projects, nil
}

func (r *ProjectRepository) UpdateProjectStatus(ctx context.Context, projectID string, status domain.ProjectStatus, updatedAt time.Time) (*domain.Project, error) {
	const op = "internal.repository.postgres.UpdateProjectStatus"

	query, args, err := r.sq.Update("projects").
		Set("status", status).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": projectID}).
		Suffix("RETURNING " + strings.Join(projectColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var project domain.Project
	if err := r.db.GetContext(ctx, &project, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, &apperrors.NotFoundError{Kind: "project", ID: projectID})
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return &project, nil
}

func (r *ProjectRepository) IncrementBugsFound(ctx context.Context, tx *sqlx.Tx, projectID string, newParticipant bool) error {
	const op = "internal.repository.postgres.IncrementBugsFound"

	builder := r.sq.Update("projects").
		Set("bugs_found_count", sq.Expr("bugs_found_count + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": projectID})

	if newParticipant {
		builder = builder.Set("participant_count", sq.Expr("participant_count + 1"))
	}

	return r.execCounterUpdate(ctx, tx, op, builder, projectID)
}

func (r *ProjectRepository) IncrementBugsResolved(ctx context.Context, tx *sqlx.Tx, projectID string) error {
	const op = "internal.repository.postgres.IncrementBugsResolved"

	builder := r.sq.Update("projects").
		Set("bugs_resolved_count", sq.Expr("bugs_resolved_count + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": projectID})

	return r.execCounterUpdate(ctx, tx, op, builder, projectID)
}

func (r *ProjectRepository) execCounterUpdate(ctx context.Context, tx *sqlx.Tx, op string, builder sq.UpdateBuilder, projectID string) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get rows affected: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w", op, &apperrors.NotFoundError{Kind: "project", ID: projectID})
	}

	return nil
}
