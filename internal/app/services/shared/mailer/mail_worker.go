package mailer

import (
	"context"

	"suma-service/internal/app/contracts"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// MailWorker drains the mail queue. Actual SMTP relay is environment
// dependent; the worker acknowledges and hands jobs to the dispatch func so
// deployments can plug their relay of choice.
type MailWorker struct {
	Channel  *amqp091.Channel
	Queue    string
	Log      *zap.Logger
	Dispatch func(ctx context.Context, job contracts.MailJob) error
	cancel   context.CancelFunc
}

func NewMailWorker(rabbitMQConnection *amqp091.Connection, queue string, logger *zap.Logger, dispatch func(ctx context.Context, job contracts.MailJob) error) (*MailWorker, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	if dispatch == nil {
		dispatch = func(ctx context.Context, job contracts.MailJob) error {
			logger.Info("mail job dispatched",
				zap.String("to", job.To),
				zap.String("subject", job.Subject),
			)
			return nil
		}
	}

	return &MailWorker{
		Channel:  channel,
		Queue:    queue,
		Log:      logger,
		Dispatch: dispatch,
	}, nil
}

func (w *MailWorker) Start() error {
	deliveries, err := w.Channel.Consume(w.Queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					return
				}
				w.handle(ctx, delivery)
			}
		}
	}()
	return nil
}

func (w *MailWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.Channel.Close()
}

func (w *MailWorker) handle(ctx context.Context, delivery amqp091.Delivery) {
	var job contracts.MailJob
	if err := json.Unmarshal(delivery.Body, &job); err != nil {
		w.Log.Error("mailWorker cannot unmarshal mail job, dropping",
			zap.Error(err),
		)
		delivery.Nack(false, false)
		return
	}

	if err := w.Dispatch(ctx, job); err != nil {
		w.Log.Error("mailWorker dispatch failed, requeueing once",
			zap.String("to", job.To),
			zap.Error(err),
		)
		delivery.Nack(false, !delivery.Redelivered)
		return
	}
	delivery.Ack(false)
}
