package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/careerconnect/careerconnect-be/shared/firebase"
	amqp "github.com/rabbitmq/amqp091-go"
)

// PushMessageFromDispatch converts a queue dispatch into the channel message.
func PushMessageFromDispatch(d Dispatch) firebase.PushMessage {
	return firebase.PushMessage{
		Title: d.Title,
		Body:  d.Body,
		Data:  d.Data,
	}
}

// setupConsumer sets up the RabbitMQ consumer with QoS and returns the
// delivery channel.
func (w *Worker) setupConsumer() (<-chan amqp.Delivery, error) {
	channel := w.rabbitClient.GetChannel()
	if channel == nil {
		return nil, fmt.Errorf("rabbitmq channel is nil")
	}

	// prefetch_count bounds unacknowledged dispatches per consumer
	if err := channel.Qos(w.prefetchCount, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := w.rabbitClient.Consume(w.workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	w.logger.Info("Push dispatch consumer started",
		slog.String("consumer_tag", w.workerID),
		slog.Int("prefetch_count", w.prefetchCount),
	)

	return deliveries, nil
}

// dispatchLoop reads queue deliveries, decodes them and hands them to the
// worker pool. Malformed messages are NACKed without requeue.
func (w *Worker) dispatchLoop(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Dispatch loop stopped - context canceled")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				w.logger.Warn("RabbitMQ delivery channel closed")
				return
			}

			var dispatch Dispatch
			if err := json.Unmarshal(delivery.Body, &dispatch); err != nil {
				w.logger.Error("Failed to decode push dispatch",
					slog.String("error", err.Error()),
					slog.String("body", string(delivery.Body)),
				)
				dispatchesDroppedTotal.Inc()
				if nackErr := delivery.Nack(false, false); nackErr != nil {
					w.logger.Error("Failed to NACK malformed dispatch",
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}

			if dispatch.RecipientUID == "" {
				w.logger.Error("Push dispatch missing recipient",
					slog.String("body", string(delivery.Body)),
				)
				dispatchesDroppedTotal.Inc()
				if nackErr := delivery.Nack(false, false); nackErr != nil {
					w.logger.Error("Failed to NACK dispatch without recipient",
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}

			env := &envelope{
				dispatch:    dispatch,
				deliveryTag: delivery.DeliveryTag,
			}

			select {
			case w.dispatchChan <- env:
				w.logger.Debug("Dispatch handed to worker pool",
					slog.String("recipient_uid", dispatch.RecipientUID),
					slog.Uint64("delivery_tag", delivery.DeliveryTag),
				)
			case <-ctx.Done():
				// Requeue so another consumer can pick it up.
				if nackErr := delivery.Nack(false, true); nackErr != nil {
					w.logger.Error("Failed to NACK dispatch on shutdown",
						slog.String("error", nackErr.Error()),
					)
				}
				return
			}
		}
	}
}
