package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/careerconnect/careerconnect-be/internal/api/model"
)

// UpsertDeviceToken registers a device token. A device re-registering under
// the same (user_uid, device_id) replaces its token value in place and is
// reactivated, so exactly one active row exists per device.
func (s *Storage) UpsertDeviceToken(ctx context.Context, t *model.DeviceToken) error {
	query := `
		INSERT INTO user_fcm_tokens (
			id, user_uid, fcm_token, device_id, device_type,
			is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			TRUE, $6, $6
		)
		ON CONFLICT (user_uid, device_id) DO UPDATE
		SET fcm_token = EXCLUDED.fcm_token,
		    device_type = EXCLUDED.device_type,
		    is_active = TRUE,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		t.ID,
		t.UserUID,
		t.FCMToken,
		t.DeviceID,
		t.DeviceType,
		t.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert device token: %w", err)
	}

	return nil
}

func (s *Storage) ListUserDeviceTokens(ctx context.Context, userUID string) ([]model.DeviceToken, error) {
	query := `
		SELECT id, user_uid, fcm_token, device_id, device_type, is_active, created_at, updated_at
		FROM user_fcm_tokens
		WHERE user_uid = $1 AND is_active = TRUE
		ORDER BY created_at DESC
	`

	var tokens []model.DeviceToken
	if err := s.db.SelectContext(ctx, &tokens, query, userUID); err != nil {
		return nil, fmt.Errorf("failed to list device tokens: %w", err)
	}

	return tokens, nil
}

// ActiveTokenValues resolves the raw token values push delivery addresses.
func (s *Storage) ActiveTokenValues(ctx context.Context, userUID string) ([]string, error) {
	query := `
		SELECT fcm_token
		FROM user_fcm_tokens
		WHERE user_uid = $1 AND is_active = TRUE
	`

	var tokens []string
	if err := s.db.SelectContext(ctx, &tokens, query, userUID); err != nil {
		return nil, fmt.Errorf("failed to resolve active tokens: %w", err)
	}

	return tokens, nil
}

// DeactivateToken flips is_active off for one token. The flip is monotonic:
// concurrent delivery attempts may both deactivate the same token and the
// result is the same row state.
func (s *Storage) DeactivateToken(ctx context.Context, userUID, fcmToken string) error {
	query := `
		UPDATE user_fcm_tokens
		SET is_active = FALSE,
		    updated_at = $1
		WHERE user_uid = $2 AND fcm_token = $3
	`

	if _, err := s.db.ExecContext(ctx, query, time.Now(), userUID, fcmToken); err != nil {
		return fmt.Errorf("failed to deactivate token: %w", err)
	}

	return nil
}
