package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"flightconnect/pkg/logger"
)

const DefaultChangedQueue = "schedule.changed"

// ChangedEvent is published by schedule tooling after flights are edited.
type ChangedEvent struct {
	FlightIDs []string `json:"flight_ids"`
	Reason    string   `json:"reason"`
	ChangedAt string   `json:"changed_at"`
}

// ChangeListener turns schedule.changed messages into reload triggers.
type ChangeListener struct {
	url      string
	queue    string
	logger   logger.Logger
	triggers chan struct{}
}

func NewChangeListener(url, queue string, log logger.Logger) *ChangeListener {
	if queue == "" {
		queue = DefaultChangedQueue
	}
	return &ChangeListener{
		url:      url,
		queue:    queue,
		logger:   log,
		triggers: make(chan struct{}, 1),
	}
}

// Triggers yields one value per pending reload; bursts of events coalesce.
func (l *ChangeListener) Triggers() <-chan struct{} {
	return l.triggers
}

// Run keeps a consumer attached to the broker, reconnecting with backoff, until ctx ends.
func (l *ChangeListener) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := amqp.Dial(l.url)
		if err != nil {
			l.logger.Warn("schedule listener: dial failed",
				logger.Err(err),
				logger.Field{Key: "retry_in", Value: backoff},
			)
			if !sleepCtx(ctx, backoff) {
				return
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = l.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return
		}
		l.logger.Warn("schedule listener: consume loop ended, reconnecting", logger.Err(err))
		if !sleepCtx(ctx, 2*time.Second) {
			return
		}
	}
}

func (l *ChangeListener) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(l.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.ConsumeWithContext(ctx, l.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	l.logger.Info("schedule listener: consuming", logger.Field{Key: "queue", Value: l.queue})
	for d := range msgs {
		l.handle(d.Body)
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// handle notifies the reloader. The body is informational only, so a message
// that fails to decode still triggers a reload.
func (l *ChangeListener) handle(body []byte) {
	var ev ChangedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		l.logger.Warn("schedule listener: undecodable event", logger.Err(err))
	} else {
		l.logger.Info("schedule changed",
			logger.Field{Key: "flights", Value: len(ev.FlightIDs)},
			logger.Field{Key: "reason", Value: ev.Reason},
		)
	}

	select {
	case l.triggers <- struct{}{}:
	default:
	}
}

// Publish sends ev to queue so running services reload their snapshot.
func Publish(ctx context.Context, url, queue string, ev ChangedEvent) error {
	if queue == "" {
		queue = DefaultChangedQueue
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	return ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
