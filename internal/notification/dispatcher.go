// Package notification owns the two-channel fan-out that follows application
// events: a durable in-app notification row, then a best-effort push dispatch.
package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/careerconnect/careerconnect-be/internal/api/domain"
	"github.com/careerconnect/careerconnect-be/internal/api/model"
	"github.com/careerconnect/careerconnect-be/internal/push"
	"github.com/google/uuid"
)

// Store persists notification records.
type Store interface {
	CreateNotification(ctx context.Context, n *model.Notification) error
}

// Publisher hands a push dispatch to the delivery queue.
type Publisher interface {
	Publish(ctx context.Context, body []byte, contentType string) error
}

// Input describes one notification event.
type Input struct {
	RecipientUID         string
	Title                string
	Message              string
	Kind                 domain.NotificationKind
	RelatedJobID         string
	RelatedApplicationID string
	// Data rides along in the push payload only; values must stringify.
	Data map[string]string
}

// Dispatcher writes the notification record synchronously as the source of
// truth, then enqueues push delivery. The publisher is optional: without one,
// in-app notifications still work and push is skipped.
type Dispatcher struct {
	store     Store
	publisher Publisher
	logger    *slog.Logger
}

func NewDispatcher(store Store, publisher Publisher, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Notify durable-writes the record and then hands off push delivery. A record
// write failure propagates; a publish failure is logged and swallowed so the
// triggering operation never fails on the push channel.
func (d *Dispatcher) Notify(ctx context.Context, in Input) (*model.Notification, error) {
	record := &model.Notification{
		ID:        uuid.New().String(),
		UserUID:   in.RecipientUID,
		Title:     in.Title,
		Message:   in.Message,
		Type:      string(in.Kind),
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	if in.RelatedJobID != "" {
		record.RelatedJobID = sql.NullString{String: in.RelatedJobID, Valid: true}
	}
	if in.RelatedApplicationID != "" {
		record.RelatedApplicationID = sql.NullString{String: in.RelatedApplicationID, Valid: true}
	}

	if err := d.store.CreateNotification(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to write notification record: %w", err)
	}

	d.enqueuePush(ctx, in)

	return record, nil
}

func (d *Dispatcher) enqueuePush(ctx context.Context, in Input) {
	if d.publisher == nil {
		d.logger.Debug("Push publisher not configured, skipping push dispatch",
			slog.String("recipient_uid", in.RecipientUID),
		)
		return
	}

	dispatch := push.Dispatch{
		RecipientUID: in.RecipientUID,
		Title:        in.Title,
		Body:         in.Message,
		Data:         in.Data,
	}

	body, err := json.Marshal(dispatch)
	if err != nil {
		d.logger.Error("Failed to encode push dispatch",
			slog.String("recipient_uid", in.RecipientUID),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := d.publisher.Publish(ctx, body, "application/json"); err != nil {
		d.logger.Error("Failed to publish push dispatch",
			slog.String("recipient_uid", in.RecipientUID),
			slog.String("title", in.Title),
			slog.String("error", err.Error()),
		)
		return
	}

	d.logger.Debug("Push dispatch published",
		slog.String("recipient_uid", in.RecipientUID),
		slog.String("title", in.Title),
	)
}
