package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"gonotes/internal/model"
	"gonotes/internal/platform/rabbitmq"
)

const persistTimeout = 5 * time.Second

// AuditSink stores a decoded audit event.
type AuditSink interface {
	Create(ctx context.Context, event *model.AuditEvent) error
}

// AuditPersistWorker drains the audit queue into the database.
type AuditPersistWorker struct {
	conn      *amqp.Connection
	sink      AuditSink
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewAuditPersistWorker(conn *amqp.Connection, sink AuditSink, queueName string) *AuditPersistWorker {
	return &AuditPersistWorker{
		conn:      conn,
		sink:      sink,
		queueName: queueName,
	}
}

func (w *AuditPersistWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if _, err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				w.handle(workerCtx, d)
			}
		}
	}()

	return nil
}

// Acknowledger is the part of amqp.Delivery the worker needs to settle a
// message.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (w *AuditPersistWorker) handle(ctx context.Context, d amqp.Delivery) {
	w.process(ctx, d.Body, d)
}

// process persists one message body. Failures are rejected without requeue so
// a poison message cannot spin. The write is detached from ctx so a shutdown
// that lands mid-message still stores the event it already took.
func (w *AuditPersistWorker) process(ctx context.Context, body []byte, ack Acknowledger) bool {
	var event model.AuditEvent
	if err := json.Unmarshal(body, &event); err != nil {
		slog.WarnContext(ctx, "worker decode audit event failed", "error", err)
		_ = ack.Nack(false, false)
		return false
	}
	event.ID = 0

	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if err := w.sink.Create(persistCtx, &event); err != nil {
		slog.ErrorContext(ctx, "worker persist audit event failed", "action", event.Action, "error", err)
		_ = ack.Nack(false, false)
		return false
	}

	_ = ack.Ack(false)
	return true
}

func (w *AuditPersistWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
