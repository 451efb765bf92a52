package push

// Dispatch is the queue envelope for one push delivery request. Published by
// the API service, consumed by the push service. Data values are already
// coerced to strings so the payload survives every platform.
type Dispatch struct {
	RecipientUID string            `json:"recipient_uid"`
	Title        string            `json:"title"`
	Body         string            `json:"body"`
	Data         map[string]string `json:"data,omitempty"`
}
