// Package outbox relays notifications persisted by lifecycle transactions to an
// external publisher. Rows are written with dispatched_at unset in the same
// transaction as the transition, so a notification is published only if the
// transition committed.
package outbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/YusovID/bughunt-service/pkg/logger/sl"
	"github.com/go-co-op/gocron/v2"
)

const defaultBatchSize = 100

// Message is the wire shape of a relayed notification.
type Message struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	RelatedID   string    `json:"related_id"`
	RelatedType string    `json:"related_type"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewMessage(n domain.Notification) Message {
	return Message{
		ID:          n.ID,
		UserID:      n.UserID,
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     n.Message,
		RelatedID:   n.RelatedID,
		RelatedType: string(n.RelatedType),
		CreatedAt:   n.CreatedAt,
	}
}

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

type Store interface {
	ListUndispatched(ctx context.Context, limit int) ([]domain.Notification, error)
	MarkDispatched(ctx context.Context, notificationIDs []string, dispatchedAt time.Time) error
}

// Locker elects a single relaying instance per tick.
type Locker interface {
	TryLock(ctx context.Context) (bool, error)
	Unlock(ctx context.Context) error
}

type Recorder interface {
	NotificationRelayed(ok bool)
}

type Relay struct {
	store     Store
	publisher Publisher
	locker    Locker
	recorder  Recorder
	log       *slog.Logger
	batchSize int
	now       func() time.Time
}

// NewRelay builds a relay. A nil locker relays without coordination and a nil
// recorder drops delivery metrics.
func NewRelay(store Store, publisher Publisher, locker Locker, recorder Recorder, log *slog.Logger, batchSize int) *Relay {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &Relay{
		store:     store,
		publisher: publisher,
		locker:    locker,
		recorder:  recorder,
		log:       log,
		batchSize: batchSize,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RunOnce publishes one batch in creation order and returns how many notifications
// were marked dispatched. Publishing stops at the first failure so later
// notifications never overtake an earlier one.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	const op = "internal.outbox.RunOnce"

	if r.locker != nil {
		ok, err := r.locker.TryLock(ctx)
		if err != nil {
			return 0, fmt.Errorf("%s: failed to acquire relay lock: %w", op, err)
		}

		if !ok {
			return 0, nil
		}

		defer func() {
			if err := r.locker.Unlock(context.WithoutCancel(ctx)); err != nil {
				r.log.Warn("failed to release relay lock", slog.String("op", op), sl.Err(err))
			}
		}()
	}

	pending, err := r.store.ListUndispatched(ctx, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if len(pending) == 0 {
		return 0, nil
	}

	dispatched := make([]string, 0, len(pending))

	var publishErr error

	for _, n := range pending {
		if err := r.publisher.Publish(ctx, NewMessage(n)); err != nil {
			publishErr = fmt.Errorf("%s: failed to publish notification '%s': %w", op, n.ID, err)
			r.record(false)

			break
		}

		r.record(true)
		dispatched = append(dispatched, n.ID)
	}

	if len(dispatched) > 0 {
		if err := r.store.MarkDispatched(ctx, dispatched, r.now()); err != nil {
			return 0, errors.Join(publishErr, fmt.Errorf("%s: %w", op, err))
		}
	}

	return len(dispatched), publishErr
}

func (r *Relay) record(ok bool) {
	if r.recorder != nil {
		r.recorder.NotificationRelayed(ok)
	}
}

// Start schedules RunOnce every interval. Overlapping ticks are skipped.
// The caller owns the returned scheduler and must shut it down.
func (r *Relay) Start(ctx context.Context, interval time.Duration) (gocron.Scheduler, error) {
	const op = "internal.outbox.Start"

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create scheduler: %w", op, err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			n, err := r.RunOnce(ctx)
			if err != nil {
				r.log.Error("outbox relay failed", slog.String("op", op), sl.Err(err))
			}

			if n > 0 {
				r.log.Debug("outbox relayed notifications", slog.Int("count", n))
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("%s: failed to schedule relay: %w", op, err)
	}

	sched.Start()

	r.log.Info("outbox relay started", slog.Duration("interval", interval), slog.Int("batch_size", r.batchSize))

	return sched, nil
}

// LogPublisher writes notifications to the log. It is used when no broker is configured.
type LogPublisher struct {
	log *slog.Logger
}

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, msg Message) error {
	p.log.Info("notification",
		slog.String("notification_id", msg.ID),
		slog.String("user_id", msg.UserID),
		slog.String("type", msg.Type),
		slog.String("title", msg.Title),
	)

	return nil
}
