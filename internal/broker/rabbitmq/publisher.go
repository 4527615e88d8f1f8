// Package rabbitmq publishes relayed notifications to a durable AMQP queue.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/YusovID/bughunt-service/internal/outbox"
	amqp "github.com/rabbitmq/amqp091-go"
)

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// session is one dialed connection and its publishing channel. closed receives
// (or is closed) once either side goes away.
type session struct {
	ch     channel
	closed []<-chan *amqp.Error
	close  func() error
}

func (s *session) alive() bool {
	for _, c := range s.closed {
		select {
		case <-c:
			return false
		default:
		}
	}

	return true
}

type Publisher struct {
	queue string
	dial  func() (*session, error)

	mu   sync.Mutex
	sess *session
}

// NewPublisher connects eagerly so a bad URL fails at startup. Later
// disconnects are repaired on the next Publish.
func NewPublisher(url, queue string) (*Publisher, error) {
	p := &Publisher{
		queue: queue,
		dial:  func() (*session, error) { return dial(url, queue) },
	}

	if _, err := p.session(); err != nil {
		return nil, err
	}

	return p, nil
}

func dial(url, queue string) (*session, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()

		return nil, fmt.Errorf("amqp declare queue %s: %w", queue, err)
	}

	return &session{
		ch: ch,
		closed: []<-chan *amqp.Error{
			conn.NotifyClose(make(chan *amqp.Error, 1)),
			ch.NotifyClose(make(chan *amqp.Error, 1)),
		},
		close: func() error {
			return errors.Join(ch.Close(), conn.Close())
		},
	}, nil
}

// session returns the live session, redialing when the previous one was closed.
func (p *Publisher) session() (*session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sess != nil && p.sess.alive() {
		return p.sess, nil
	}

	if p.sess != nil {
		_ = p.sess.close()
		p.sess = nil
	}

	s, err := p.dial()
	if err != nil {
		return nil, err
	}

	p.sess = s

	return s, nil
}

// drop forgets s if it is still current so the next Publish redials.
func (p *Publisher) drop(s *session) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sess == s {
		_ = s.close()
		p.sess = nil
	}
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sess == nil {
		return nil
	}

	err := p.sess.close()
	p.sess = nil

	return err
}

// Publish sends msg as persistent JSON through the default exchange.
func (p *Publisher) Publish(ctx context.Context, msg outbox.Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification %s: %w", msg.ID, err)
	}

	s, err := p.session()
	if err != nil {
		return fmt.Errorf("publish notification %s: %w", msg.ID, err)
	}

	err = s.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.ID,
			Type:         msg.Type,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if errors.Is(err, amqp.ErrClosed) {
		p.drop(s)
	}

	return err
}
