package mailer

import (
	"context"

	"suma-service/internal/app/contracts"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type mailerQueue struct {
	Channel *amqp091.Channel
	Queue   string
	Log     *zap.Logger
}

// NewMailerQueue declares the durable mail queue and returns a publisher
// bound to it. Delivery to the SMTP relay is handled by a separate consumer.
func NewMailerQueue(rabbitMQConnection *amqp091.Connection, queue string, logger *zap.Logger) (contracts.MailerQueue, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &mailerQueue{
		Channel: channel,
		Queue:   queue,
		Log:     logger,
	}, nil
}

func (s *mailerQueue) Enqueue(ctx context.Context, job contracts.MailJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		s.Log.Error("mailerQueue.Enqueue failed to publish",
			zap.String("queue", s.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}
	return nil
}
