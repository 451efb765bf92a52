package firebase

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Config holds Firebase project configuration
type Config struct {
	ProjectID       string
	CredentialsFile string
}

// DecodedToken is a verified bearer credential reduced to what the API needs.
type DecodedToken struct {
	UID    string
	Email  string
	Claims map[string]interface{}
}

// PushMessage is one logical push notification. Data values must already be
// strings; FCM rejects anything else.
type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// MulticastResult reports per-token outcomes of a multi-recipient send.
type MulticastResult struct {
	SuccessCount int
	FailureCount int
	FailedTokens []string
}

// Client wraps the Firebase Admin SDK: ID token verification and FCM delivery.
type Client struct {
	app       *firebase.App
	auth      *auth.Client
	messaging *messaging.Client
	logger    *slog.Logger
}

// NewClient initializes the Firebase app and both service clients.
func NewClient(ctx context.Context, config *Config, logger *slog.Logger) (*Client, error) {
	var opts []option.ClientOption
	if config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.CredentialsFile))
	}

	logger.Info("Initializing Firebase",
		slog.String("project_id", config.ProjectID),
	)

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: config.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase auth client: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase messaging client: %w", err)
	}

	logger.Info("Firebase client initialized")

	return &Client{
		app:       app,
		auth:      authClient,
		messaging: messagingClient,
		logger:    logger,
	}, nil
}

// Verify validates a bearer ID token and yields the caller identity.
func (c *Client) Verify(ctx context.Context, idToken string) (*DecodedToken, error) {
	token, err := c.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	decoded := &DecodedToken{
		UID:    token.UID,
		Claims: token.Claims,
	}
	if email, ok := token.Claims["email"].(string); ok {
		decoded.Email = email
	}

	return decoded, nil
}

const androidChannelID = "careerconnect_updates"

// SendMulticast sends one logical message to many device tokens in a single
// call, with high-priority Android delivery and APNs sound/badge hints.
// Per-token failures are reported in the result, not as an error.
func (c *Client) SendMulticast(ctx context.Context, tokens []string, msg PushMessage) (*MulticastResult, error) {
	badge := 1

	resp, err := c.messaging.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: androidChannelID,
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: &badge,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send multicast message: %w", err)
	}

	result := &MulticastResult{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
	}
	for i, r := range resp.Responses {
		if !r.Success {
			result.FailedTokens = append(result.FailedTokens, tokens[i])
			c.logger.Debug("Push send failed for token",
				slog.String("error", r.Error.Error()),
			)
		}
	}

	return result, nil
}

// Send delivers one message to a single device token.
func (c *Client) Send(ctx context.Context, token string, msg PushMessage) error {
	badge := 1

	_, err := c.messaging.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: androidChannelID,
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: &badge,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
