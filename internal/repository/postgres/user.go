package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/bughunt-service/internal/apperrors"
	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

// countedStatuses are the bug statuses whose XP contributes to a tester's total.
var countedStatuses = []string{string(domain.BugStatusApproved), string(domain.BugStatusResolved)}

const userXPSubquery = "COALESCE((SELECT SUM(b.xp_awarded) FROM bug_reports b " +
	"WHERE b.tester_id = u.id AND b.status IN ('Approved', 'Resolved')), 0) AS total_xp"

type UserRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewUserRepository(db *sqlx.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	const op = "internal.repository.postgres.CreateUser"

	query, args, err := r.sq.Insert("users").
		Columns("id", "name", "email", "role", "joined_at").
		Values(user.ID, user.Name, user.Email, user.Role, user.JoinedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if mapped := mapWriteError(err, "user", user.ID); mapped != nil {
			return fmt.Errorf("%s: %w", op, mapped)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, ext sqlx.ExtContext, userID string) (*domain.User, error) {
	const op = "internal.repository.postgres.GetUserByID"

	query, args, err := r.sq.Select("u.id", "u.name", "u.email", "u.role", "u.joined_at", userXPSubquery).
		From("users u").
		Where(sq.Eq{"u.id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var user domain.User
	if err := sqlx.GetContext(ctx, ext, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, &apperrors.NotFoundError{Kind: "user", ID: userID})
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	badgesQuery, badgesArgs, err := r.sq.Select("achievement_id").
		From("user_badges").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("earned_at", "achievement_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build badges query: %w", op, err)
	}

	badges := []string{}
	if err := sqlx.SelectContext(ctx, ext, &badges, badgesQuery, badgesArgs...); err != nil {
		return nil, fmt.Errorf("%s: failed to select badges: %w", op, err)
	}

	user.Badges = badges

	return &user, nil
}

// LockUser serializes writers that derive state from the user's XP. NO KEY UPDATE
// does not conflict with the KEY SHARE locks taken by foreign-key checks.
func (r *UserRepository) LockUser(ctx context.Context, tx *sqlx.Tx, userID string) error {
	const op = "internal.repository.postgres.LockUser"

	query, args, err := r.sq.Select("id").
		From("users").
		Where(sq.Eq{"id": userID}).
		Suffix("FOR NO KEY UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var id string
	if err := tx.GetContext(ctx, &id, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, &apperrors.NotFoundError{Kind: "user", ID: userID})
		}

		return fmt.Errorf("%s: failed to lock user: %w", op, err)
	}

	return nil
}

func (r *UserRepository) ListTesterStandings(ctx context.Context) ([]domain.TesterStanding, error) {
	const op = "internal.repository.postgres.ListTesterStandings"

	counted := sq.Eq{"b.status": countedStatuses}

	xpSQL, xpArgs, err := counted.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build filter: %w", op, err)
	}

	query, args, err := r.sq.Select("u.id AS user_id", "u.name").
		Column(sq.Expr("COALESCE(SUM(b.xp_awarded) FILTER (WHERE "+xpSQL+"), 0) AS total_xp", xpArgs...)).
		Column(sq.Expr("COUNT(b.id) FILTER (WHERE "+xpSQL+") AS approved_count", xpArgs...)).
		From("users u").
		LeftJoin("bug_reports b ON b.tester_id = u.id").
		Where(sq.Eq{"u.role": domain.RoleTester}).
		GroupBy("u.id", "u.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	standings := []domain.TesterStanding{}
	if err := r.db.SelectContext(ctx, &standings, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	r.log.Debug("loaded tester standings", slog.String("op", op), slog.Int("count", len(standings)))

	return standings, nil
}
