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

var notificationColumns = []string{
	"id", "user_id", "type", "title", "message", "read",
	"related_id", "related_type", "created_at", "dispatched_at",
}

type NotificationRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewNotificationRepository(db *sqlx.DB, log *slog.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *NotificationRepository) CreateNotifications(ctx context.Context, tx *sqlx.Tx, notifications []domain.Notification) error {
	const op = "internal.repository.postgres.CreateNotifications"

	if len(notifications) == 0 {
		return nil
	}

	insertBuilder := r.sq.Insert("notifications").
		Columns(notificationColumns...)

	for _, n := range notifications {
		insertBuilder = insertBuilder.Values(
			n.ID, n.UserID, n.Type, n.Title, n.Message, n.Read,
			n.RelatedID, n.RelatedType, n.CreatedAt, n.DispatchedAt,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if mapped := mapWriteError(err, "notification", notifications[0].ID); mapped != nil {
			return fmt.Errorf("%s: %w", op, mapped)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *NotificationRepository) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	const op = "internal.repository.postgres.ListNotifications"

	where := sq.Eq{"user_id": userID}
	if unreadOnly {
		where["read"] = false
	}

	query, args, err := r.sq.Select(notificationColumns...).
		From("notifications").
		Where(where).
		OrderBy("seq DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	notifications := []domain.Notification{}
	if err := r.db.SelectContext(ctx, &notifications, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return notifications, nil
}

func (r *NotificationRepository) GetNotificationByID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	const op = "internal.repository.postgres.GetNotificationByID"

	query, args, err := r.sq.Select(notificationColumns...).
		From("notifications").
		Where(sq.Eq{"id": notificationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var n domain.Notification
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, &apperrors.NotFoundError{Kind: "notification", ID: notificationID})
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &n, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID string) (*domain.Notification, error) {
	const op = "internal.repository.postgres.MarkRead"

	query, args, err := r.sq.Update("notifications").
		Set("read", true).
		Where(sq.Eq{"id": notificationID}).
		Suffix("RETURNING " + strings.Join(notificationColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var n domain.Notification
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, &apperrors.NotFoundError{Kind: "notification", ID: notificationID})
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return &n, nil
}

func (r *NotificationRepository) ListUndispatched(ctx context.Context, limit int) ([]domain.Notification, error) {
	const op = "internal.repository.postgres.ListUndispatched"

	query, args, err := r.sq.Select(notificationColumns...).
		From("notifications").
		Where(sq.Eq{"dispatched_at": nil}).
		OrderBy("seq").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	notifications := []domain.Notification{}
	if err := r.db.SelectContext(ctx, &notifications, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return notifications, nil
}

func (r *NotificationRepository) MarkDispatched(ctx context.Context, notificationIDs []string, dispatchedAt time.Time) error {
	const op = "internal.repository.postgres.MarkDispatched"

	if len(notificationIDs) == 0 {
		return nil
	}

	query, args, err := r.sq.Update("notifications").
		Set("dispatched_at", dispatchedAt).
		Where(sq.Eq{"id": notificationIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return nil
}
