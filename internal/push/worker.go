package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/careerconnect/careerconnect-be/shared/rabbitmq"
	"github.com/google/uuid"
)

// envelope pairs a decoded dispatch with its queue delivery tag.
type envelope struct {
	dispatch    Dispatch
	deliveryTag uint64
}

// WorkerConfig holds push worker configuration
type WorkerConfig struct {
	Logger          *slog.Logger
	RabbitClient    *rabbitmq.Client
	Engine          *Engine
	Concurrency     int
	DeliveryTimeout time.Duration
	PrefetchCount   int
}

// Worker consumes push dispatches from the queue and runs them through the
// delivery engine with a bounded per-delivery timeout.
type Worker struct {
	logger          *slog.Logger
	rabbitClient    *rabbitmq.Client
	engine          *Engine
	concurrency     int
	deliveryTimeout time.Duration
	prefetchCount   int
	workerID        string
	dispatchChan    chan *envelope
	wg              sync.WaitGroup
	stopChan        chan struct{}
}

// NewWorker creates a new push worker instance
func NewWorker(cfg *WorkerConfig) *Worker {
	return &Worker{
		logger:          cfg.Logger,
		rabbitClient:    cfg.RabbitClient,
		engine:          cfg.Engine,
		concurrency:     cfg.Concurrency,
		deliveryTimeout: cfg.DeliveryTimeout,
		prefetchCount:   cfg.PrefetchCount,
		workerID:        fmt.Sprintf("push-worker-%s", uuid.New().String()[:8]),
		dispatchChan:    make(chan *envelope),
		stopChan:        make(chan struct{}),
	}
}

// Start begins consuming and delivering until the context is canceled.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting push worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("delivery_timeout", w.deliveryTimeout),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return fmt.Errorf("failed to setup consumer: %w", err)
	}

	w.spawnPool(ctx)
	w.dispatchLoop(ctx, deliveries)

	return nil
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	w.logger.Info("Stopping push worker...")
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("Push worker stopped")
}

// spawnPool spawns N delivery goroutines based on concurrency configuration
func (w *Worker) spawnPool(ctx context.Context) {
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.workerLoop(ctx, i)
	}

	w.logger.Info("Push worker pool spawned",
		slog.Int("worker_count", w.concurrency),
	)
}

// workerLoop is the main processing loop for each delivery goroutine
func (w *Worker) workerLoop(ctx context.Context, workerNum int) {
	defer w.wg.Done()

	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)

	for {
		select {
		case <-w.stopChan:
			w.logger.Info("Delivery goroutine stopping - stopChan closed",
				slog.String("worker_name", workerName),
			)
			return

		case <-ctx.Done():
			w.logger.Info("Delivery goroutine stopping - context canceled",
				slog.String("worker_name", workerName),
			)
			return

		case env, ok := <-w.dispatchChan:
			if !ok {
				return
			}

			err := w.processDispatch(ctx, env)

			channel := w.rabbitClient.GetChannel()
			if channel == nil {
				w.logger.Error("Failed to get RabbitMQ channel for ACK/NACK",
					slog.String("worker_name", workerName),
				)
				continue
			}

			if err != nil {
				requeue := w.shouldRequeue(err)

				w.logger.Error("Push dispatch failed",
					slog.String("worker_name", workerName),
					slog.String("recipient_uid", env.dispatch.RecipientUID),
					slog.Bool("requeue", requeue),
					slog.String("error", err.Error()),
				)

				if nackErr := channel.Nack(env.deliveryTag, false, requeue); nackErr != nil {
					w.logger.Error("Failed to NACK dispatch",
						slog.String("worker_name", workerName),
						slog.String("error", nackErr.Error()),
					)
				}
			} else {
				if ackErr := channel.Ack(env.deliveryTag, false); ackErr != nil {
					w.logger.Error("Failed to ACK dispatch",
						slog.String("worker_name", workerName),
						slog.String("error", ackErr.Error()),
					)
				}
			}
		}
	}
}

// processDispatch runs one dispatch through the engine with a bounded timeout
// so a slow push channel cannot stall the worker indefinitely.
func (w *Worker) processDispatch(ctx context.Context, env *envelope) error {
	deliveryCtx, cancel := context.WithTimeout(ctx, w.deliveryTimeout)
	defer cancel()

	result, err := w.engine.Deliver(deliveryCtx, env.dispatch.RecipientUID, PushMessageFromDispatch(env.dispatch))
	if err != nil {
		if errors.Is(err, ErrChannelUnavailable) {
			// Nothing configured to send through. Drop, don't retry.
			dispatchesDroppedTotal.Inc()
			w.logger.Warn("Push channel unavailable, dropping dispatch",
				slog.String("recipient_uid", env.dispatch.RecipientUID),
			)
			return nil
		}
		return NewRetryableError(err)
	}

	if result.Reason == ReasonNoTokens {
		w.logger.Debug("Recipient has no active tokens",
			slog.String("recipient_uid", env.dispatch.RecipientUID),
		)
	}

	return nil
}

// shouldRequeue determines if a dispatch should be requeued based on the error type
func (w *Worker) shouldRequeue(err error) bool {
	var retryableErr *RetryableError
	return errors.As(err, &retryableErr)
}
