package push

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Delivery outcome is an internal metric, never part of the success contract
// of the operation that triggered it.
var (
	deliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "careerconnect_push_deliveries_total",
		Help: "Push delivery attempts partitioned by outcome.",
	}, []string{"outcome"})

	tokensSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "careerconnect_push_tokens_total",
		Help: "Per-token send results.",
	}, []string{"result"})

	tokensDeactivatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "careerconnect_push_tokens_deactivated_total",
		Help: "Device tokens deactivated after failed sends.",
	})

	dispatchesDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "careerconnect_push_dispatches_dropped_total",
		Help: "Dispatches dropped because the push channel was unavailable or the message was malformed.",
	})
)

const (
	outcomeDelivered = "delivered"
	outcomeNoTokens  = "no_tokens"
	outcomeAllFailed = "all_failed"

	resultSuccess = "success"
	resultFailure = "failure"
)
