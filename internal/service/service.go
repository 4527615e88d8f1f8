package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

type Transactor interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// DB is satisfied by *sqlx.DB: transactions for commands, plain reads for queries.
type DB interface {
	Transactor
	sqlx.ExtContext
}

// Metrics receives domain events after a successful commit.
type Metrics interface {
	BugTransition(transition string)
	XPAwarded(severity domain.Severity, xp int)
	BadgeAwarded(achievementID string)
}

type noopMetrics struct{}

func (noopMetrics) BugTransition(string) {}
func (noopMetrics) XPAwarded(domain.Severity, int) {}
func (noopMetrics) BadgeAwarded(string) {}

type BaseService struct {
	db  DB
	log *slog.Logger
	now func() time.Time
}

func NewBaseService(db DB, log *slog.Logger) BaseService {
	return BaseService{
		db:  db,
		log: log,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *BaseService) transaction(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.log.Error("failed to rollback transaction", slog.String("op", op), sl.Err(err))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}
