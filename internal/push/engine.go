// Package push resolves a recipient's registered device tokens, fans one
// logical message out to all of them, and reconciles per-token failures by
// deactivating dead tokens. It also hosts the queue consumer that runs this
// engine off the request path.
package push

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/careerconnect/careerconnect-be/shared/firebase"
)

// TokenStore resolves and retires device tokens.
type TokenStore interface {
	ActiveTokenValues(ctx context.Context, userUID string) ([]string, error)
	DeactivateToken(ctx context.Context, userUID, fcmToken string) error
}

// Channel sends one message to one device token.
type Channel interface {
	Send(ctx context.Context, token string, msg firebase.PushMessage) error
}

// MulticastChannel is implemented by channels that can address many tokens in
// a single call. The engine prefers it over per-token fan-out.
type MulticastChannel interface {
	SendMulticast(ctx context.Context, tokens []string, msg firebase.PushMessage) (*firebase.MulticastResult, error)
}

// Reason explains a delivery outcome that isn't a plain success.
type Reason string

const (
	ReasonDelivered Reason = "delivered"
	ReasonNoTokens  Reason = "no_tokens"
	ReasonAllFailed Reason = "all_failed"
)

// DeliveryResult aggregates one delivery attempt. Zero active tokens is a
// normal outcome, not an error.
type DeliveryResult struct {
	Delivered    bool
	Reason       Reason
	TotalTokens  int
	SuccessCount int
	FailureCount int
}

// Engine is the push delivery engine. A nil channel means push is not
// configured; deliveries then fail with ErrChannelUnavailable and callers
// drop them.
type Engine struct {
	store   TokenStore
	channel Channel
	logger  *slog.Logger
}

func NewEngine(store TokenStore, channel Channel, logger *slog.Logger) *Engine {
	return &Engine{
		store:   store,
		channel: channel,
		logger:  logger,
	}
}

// Deliver sends title/body plus the string data payload to every active
// device of the recipient. Individual token failures never surface as an
// error; each failed token is deactivated so it stops receiving sends. Only
// a total inability to reach the channel returns an error.
func (e *Engine) Deliver(ctx context.Context, recipientUID string, msg firebase.PushMessage) (*DeliveryResult, error) {
	if e.channel == nil {
		return nil, ErrChannelUnavailable
	}

	tokens, err := e.store.ActiveTokenValues(ctx, recipientUID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve device tokens: %w", err)
	}

	if len(tokens) == 0 {
		e.logger.Debug("No active device tokens for recipient",
			slog.String("recipient_uid", recipientUID),
		)
		deliveriesTotal.WithLabelValues(outcomeNoTokens).Inc()
		return &DeliveryResult{Delivered: false, Reason: ReasonNoTokens}, nil
	}

	var failed []string
	var successCount int

	if mc, ok := e.channel.(MulticastChannel); ok {
		res, err := mc.SendMulticast(ctx, tokens, msg)
		if err != nil {
			return nil, fmt.Errorf("multicast send failed: %w", err)
		}
		successCount = res.SuccessCount
		failed = res.FailedTokens
	} else {
		successCount, failed = e.fanOut(ctx, tokens, msg)
	}

	for _, token := range failed {
		if err := e.store.DeactivateToken(ctx, recipientUID, token); err != nil {
			e.logger.Warn("Failed to deactivate dead token",
				slog.String("recipient_uid", recipientUID),
				slog.String("error", err.Error()),
			)
			continue
		}
		tokensDeactivatedTotal.Inc()
	}

	result := &DeliveryResult{
		Delivered:    successCount > 0,
		TotalTokens:  len(tokens),
		SuccessCount: successCount,
		FailureCount: len(failed),
	}
	if result.Delivered {
		result.Reason = ReasonDelivered
		deliveriesTotal.WithLabelValues(outcomeDelivered).Inc()
	} else {
		result.Reason = ReasonAllFailed
		deliveriesTotal.WithLabelValues(outcomeAllFailed).Inc()
	}

	tokensSentTotal.WithLabelValues(resultSuccess).Add(float64(successCount))
	tokensSentTotal.WithLabelValues(resultFailure).Add(float64(len(failed)))

	e.logger.Info("Push delivery completed",
		slog.String("recipient_uid", recipientUID),
		slog.Int("total_tokens", result.TotalTokens),
		slog.Int("success_count", result.SuccessCount),
		slog.Int("failure_count", result.FailureCount),
	)

	return result, nil
}

// fanOut sends to every token concurrently and joins the results. No token's
// failure blocks another's send.
func (e *Engine) fanOut(ctx context.Context, tokens []string, msg firebase.PushMessage) (successCount int, failed []string) {
	errs := make([]error, len(tokens))

	var wg sync.WaitGroup
	for i, token := range tokens {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			errs[i] = e.channel.Send(ctx, token, msg)
		}(i, token)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			failed = append(failed, tokens[i])
		} else {
			successCount++
		}
	}

	return successCount, failed
}
