package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/bughunt-service/internal/apperrors"
	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var bugColumns = []string{
	"id", "project_id", "tester_id", "title", "description",
	"steps_to_reproduce", "expected_behavior", "actual_behavior", "attachments",
	"category", "severity", "status", "xp_awarded", "rejection_reason",
	"created_at", "updated_at",
}

var commentColumns = []string{"id", "bug_id", "user_id", "user_name", "user_role", "comment", "created_at"}

type bugRow struct {
	ID               string           `db:"id"`
	ProjectID        string           `db:"project_id"`
	TesterID         string           `db:"tester_id"`
	Title            string           `db:"title"`
	Description      string           `db:"description"`
	StepsToReproduce string           `db:"steps_to_reproduce"`
	ExpectedBehavior string           `db:"expected_behavior"`
	ActualBehavior   string           `db:"actual_behavior"`
	Attachments      pq.StringArray   `db:"attachments"`
	Category         domain.Category  `db:"category"`
	Severity         domain.Severity  `db:"severity"`
	Status           domain.BugStatus `db:"status"`
	XPAwarded        int              `db:"xp_awarded"`
	RejectionReason  sql.NullString   `db:"rejection_reason"`
	CreatedAt        time.Time        `db:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at"`
}

func (row bugRow) toDomain() domain.BugReport {
	bug := domain.BugReport{
		ID:               row.ID,
		ProjectID:        row.ProjectID,
		TesterID:         row.TesterID,
		Title:            row.Title,
		Description:      row.Description,
		StepsToReproduce: row.StepsToReproduce,
		ExpectedBehavior: row.ExpectedBehavior,
		ActualBehavior:   row.ActualBehavior,
		Attachments:      []string(row.Attachments),
		Category:         row.Category,
		Severity:         row.Severity,
		Status:           row.Status,
		XPAwarded:        row.XPAwarded,
		Comments:         []domain.Comment{},
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}

	if bug.Attachments == nil {
		bug.Attachments = []string{}
	}

	if row.RejectionReason.Valid {
		reason := row.RejectionReason.String
		bug.RejectionReason = &reason
	}

	return bug
}

func rejectionReasonValue(reason *string) sql.NullString {
	if reason == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: *reason, Valid: true}
}

// BugRepository serves both the query and the command side of bug reports.
type BugRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewBugRepository(db *sqlx.DB, log *slog.Logger) *BugRepository {
	return &BugRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *BugRepository) CreateBug(ctx context.Context, tx *sqlx.Tx, bug *domain.BugReport) error {
	const op = "internal.repository.postgres.CreateBug"

	attachments := bug.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	query, args, err := r.sq.Insert("bug_reports").
		Columns(bugColumns...).
		Values(
			bug.ID, bug.ProjectID, bug.TesterID, bug.Title, bug.Description,
			bug.StepsToReproduce, bug.ExpectedBehavior, bug.ActualBehavior, pq.StringArray(attachments),
			bug.Category, bug.Severity, bug.Status, bug.XPAwarded, rejectionReasonValue(bug.RejectionReason),
			bug.CreatedAt, bug.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if mapped := mapWriteError(err, "bug report", bug.ID); mapped != nil {
			return fmt.Errorf("%s: %w", op, mapped)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *BugRepository) GetBugByID(ctx context.Context, bugID string) (*domain.BugReport, error) {
	const op = "internal.repository.postgres.GetBugByID"

	bug, err := r.getBug(ctx, r.db, op, bugID, false)
	if err != nil {
		return nil, err
	}

	comments, err := r.GetComments(ctx, r.db, bugID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bug.Comments = comments

	return bug, nil
}

func (r *BugRepository) GetBugByIDWithLock(ctx context.Context, tx *sqlx.Tx, bugID string) (*domain.BugReport, error) {
	const op = "internal.repository.postgres.GetBugByIDWithLock"

	return r.getBug(ctx, tx, op, bugID, true)
}

func (r *BugRepository) getBug(ctx context.Context, ext sqlx.ExtContext, op, bugID string, lock bool) (*domain.BugReport, error) {
	builder := r.sq.Select(bugColumns...).
		From("bug_reports").
		Where(sq.Eq{"id": bugID})

	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var row bugRow
	if err := sqlx.GetContext(ctx, ext, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, &apperrors.NotFoundError{Kind: "bug report", ID: bugID})
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	bug := row.toDomain()

	return &bug, nil
}

func (r *BugRepository) ListBugs(ctx context.Context, filter domain.BugFilter) ([]domain.BugReport, error) {
	const op = "internal.repository.postgres.ListBugs"

	where := sq.Eq{}
	if filter.ProjectID != nil {
		where["project_id"] = *filter.ProjectID
	}

	if filter.TesterID != nil {
		where["tester_id"] = *filter.TesterID
	}

	if filter.Status != nil {
		where["status"] = *filter.Status
	}

	if filter.Severity != nil {
		where["severity"] = *filter.Severity
	}

	builder := r.sq.Select(bugColumns...).
		From("bug_reports").
		OrderBy("created_at DESC", "id DESC")

	if len(where) > 0 {
		builder = builder.Where(where)
	}

	return r.selectBugs(ctx, op, builder)
}

func (r *BugRepository) ListBugsByProjects(ctx context.Context, projectIDs []string) ([]domain.BugReport, error) {
	const op = "internal.repository.postgres.ListBugsByProjects"

	if len(projectIDs) == 0 {
		return []domain.BugReport{}, nil
	}

	builder := r.sq.Select(bugColumns...).
		From("bug_reports").
		Where(sq.Eq{"project_id": projectIDs}).
		OrderBy("created_at DESC", "id DESC")

	return r.selectBugs(ctx, op, builder)
}

func (r *BugRepository) selectBugs(ctx context.Context, op string, builder sq.SelectBuilder) ([]domain.BugReport, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var rows []bugRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	bugs := make([]domain.BugReport, 0, len(rows))
	for _, row := range rows {
		bugs = append(bugs, row.toDomain())
	}

	return bugs, nil
}

func (r *BugRepository) SumAwardedXP(ctx context.Context, ext sqlx.ExtContext, testerID string) (int, error) {
	const op = "internal.repository.postgres.SumAwardedXP"

	query, args, err := r.sq.Select("COALESCE(SUM(xp_awarded), 0)").
		From("bug_reports").
		Where(sq.Eq{"tester_id": testerID, "status": countedStatuses}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var total int
	if err := sqlx.GetContext(ctx, ext, &total, query, args...); err != nil {
		return 0, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return total, nil
}

func (r *BugRepository) CountTesterBugsInProject(ctx context.Context, ext sqlx.ExtContext, projectID, testerID string) (int, error) {
	const op = "internal.repository.postgres.CountTesterBugsInProject"

	query, args, err := r.sq.Select("COUNT(*)").
		From("bug_reports").
		Where(sq.Eq{"project_id": projectID, "tester_id": testerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var count int
	if err := sqlx.GetContext(ctx, ext, &count, query, args...); err != nil {
		return 0, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return count, nil
}

func (r *BugRepository) GetComments(ctx context.Context, ext sqlx.ExtContext, bugID string) ([]domain.Comment, error) {
	const op = "internal.repository.postgres.GetComments"

	query, args, err := r.sq.Select(commentColumns...).
		From("bug_comments").
		Where(sq.Eq{"bug_id": bugID}).
		OrderBy("seq").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	comments := []domain.Comment{}
	if err := sqlx.SelectContext(ctx, ext, &comments, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return comments, nil
}

func (r *BugRepository) UpdateBugState(ctx context.Context, tx *sqlx.Tx, bug *domain.BugReport) error {
	const op = "internal.repository.postgres.UpdateBugState"

	query, args, err := r.sq.Update("bug_reports").
		Set("status", bug.Status).
		Set("severity", bug.Severity).
		Set("xp_awarded", bug.XPAwarded).
		Set("rejection_reason", rejectionReasonValue(bug.RejectionReason)).
		Set("updated_at", bug.UpdatedAt).
		Where(sq.Eq{"id": bug.ID}).
		ToSql()
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
		return fmt.Errorf("%s: %w", op, &apperrors.NotFoundError{Kind: "bug report", ID: bug.ID})
	}

	return nil
}

func (r *BugRepository) AddComment(ctx context.Context, tx *sqlx.Tx, comment *domain.Comment) error {
	const op = "internal.repository.postgres.AddComment"

	query, args, err := r.sq.Insert("bug_comments").
		Columns(commentColumns...).
		Values(comment.ID, comment.BugID, comment.UserID, comment.UserName, comment.UserRole, comment.Text, comment.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if mapped := mapWriteError(err, "comment", comment.ID); mapped != nil {
			return fmt.Errorf("%s: %w", op, mapped)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	touchQuery, touchArgs, err := r.sq.Update("bug_reports").
		Set("updated_at", comment.CreatedAt).
		Where(sq.Eq{"id": comment.BugID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, touchQuery, touchArgs...); err != nil {
		return fmt.Errorf("%s: failed to touch bug report: %w", op, err)
	}

	return nil
}
