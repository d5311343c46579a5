package repository

import (
	"context"
	"fmt"
	"time"

	authdomain "taskflow-backend/internal/auth/domain"
	"taskflow-backend/internal/shared"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FCMTokenRepository defines the interface for FCM token operations
type FCMTokenRepository interface {
	SaveToken(ctx context.Context, userID shared.UserID, token, deviceInfo string, now time.Time) error
	GetTokensByUserID(ctx context.Context, userID shared.UserID) ([]authdomain.FCMToken, error)
	DeleteToken(ctx context.Context, token string) error
	DeleteUserToken(ctx context.Context, userID shared.UserID, token string) (bool, error)
}

// fcmTokenRepository implements FCMTokenRepository interface
type fcmTokenRepository struct {
	db *gorm.DB
}

// NewFCMTokenRepository creates a new instance of fcmTokenRepository
func NewFCMTokenRepository(db *gorm.DB) FCMTokenRepository {
	return &fcmTokenRepository{
		db: db,
	}
}

// SaveToken registers a device token; a token already known moves to userID
func (r *fcmTokenRepository) SaveToken(ctx context.Context, userID shared.UserID, token, deviceInfo string, now time.Time) error {
	fcmToken := &authdomain.FCMToken{
		ID:         uuid.New().String(),
		UserID:     userID,
		Token:      token,
		DeviceInfo: deviceInfo,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// INSERT ... ON CONFLICT (token) DO UPDATE
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "device_info", "updated_at"}),
	}).Create(fcmToken).Error
	if err != nil {
		return fmt.Errorf("save device token: %w", err)
	}
	return nil
}

// GetTokensByUserID returns all FCM tokens for a user
func (r *fcmTokenRepository) GetTokensByUserID(ctx context.Context, userID shared.UserID) ([]authdomain.FCMToken, error) {
	var tokens []authdomain.FCMToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&tokens).Error
	if err != nil {
		return nil, fmt.Errorf("list device tokens of %s: %w", userID, err)
	}
	return tokens, nil
}

// DeleteToken removes a token FCM no longer accepts
func (r *fcmTokenRepository) DeleteToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&authdomain.FCMToken{}).Error
}

// DeleteUserToken removes one of the user's tokens and reports whether it existed
func (r *fcmTokenRepository) DeleteUserToken(ctx context.Context, userID shared.UserID, token string) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND token = ?", userID, token).Delete(&authdomain.FCMToken{})
	if res.Error != nil {
		return false, fmt.Errorf("delete device token: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
