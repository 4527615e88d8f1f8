package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

type AchievementRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewAchievementRepository(db *sqlx.DB, log *slog.Logger) *AchievementRepository {
	return &AchievementRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *AchievementRepository) ListAchievements(ctx context.Context, ext sqlx.ExtContext) ([]domain.Achievement, error) {
	const op = "internal.repository.postgres.ListAchievements"

	query, args, err := r.sq.Select("id", "name", "description", "category", "xp_required", "level", "trigger_event").
		From("achievements").
		OrderBy("level", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	achievements := []domain.Achievement{}
	if err := sqlx.SelectContext(ctx, ext, &achievements, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return achievements, nil
}

func (r *AchievementRepository) AwardBadges(ctx context.Context, tx *sqlx.Tx, userID string, achievementIDs []string, earnedAt time.Time) error {
	const op = "internal.repository.postgres.AwardBadges"

	if len(achievementIDs) == 0 {
		return nil
	}

	insertBuilder := r.sq.Insert("user_badges").
		Columns("user_id", "achievement_id", "earned_at")

	for _, id := range achievementIDs {
		insertBuilder = insertBuilder.Values(userID, id, earnedAt)
	}

	query, args, err := insertBuilder.Suffix("ON CONFLICT (user_id, achievement_id) DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if mapped := mapWriteError(err, "user", userID); mapped != nil {
			return fmt.Errorf("%s: %w", op, mapped)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}
