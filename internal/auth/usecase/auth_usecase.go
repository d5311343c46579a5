package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskflow-backend/internal/auth/repository"
	"taskflow-backend/internal/shared"
	"taskflow-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any bearer token that cannot be trusted.
var ErrInvalidToken = errors.New("invalid token")

// AuthUsecase verifies bearer tokens and manages the caller's push devices.
// Tokens are issued by an external identity service; IssueToken exists for
// local development and tests.
type AuthUsecase interface {
	ValidateToken(tokenString string) (shared.Actor, error)
	IssueToken(actor shared.Actor, ttl time.Duration) (string, error)
	RegisterDevice(ctx context.Context, actor shared.Actor, token, deviceInfo string) error
	UnregisterDevice(ctx context.Context, actor shared.Actor, token string) error
}

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	fcmRepo repository.FCMTokenRepository
	secret  []byte
	clock   shared.Clock
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(fcmRepo repository.FCMTokenRepository, cfg *config.Config, clock shared.Clock) AuthUsecase {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &authUsecase{
		fcmRepo: fcmRepo,
		secret:  []byte(cfg.JWTSecret),
		clock:   clock,
	}
}

// ValidateToken accepts HS256 tokens carrying user_id and, optionally,
// workspace_id. A token without a workspace claim acts in the user's personal
// workspace, whose id is the user id.
func (u *authUsecase) ValidateToken(tokenString string) (shared.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return u.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(u.clock.Now),
	)
	if err != nil || !token.Valid {
		return shared.Actor{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return shared.Actor{}, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || strings.TrimSpace(userID) == "" {
		return shared.Actor{}, ErrInvalidToken
	}
	workspaceID, _ := claims["workspace_id"].(string)
	if workspaceID == "" {
		workspaceID = userID
	}

	return shared.Actor{UserID: shared.UserID(userID), WorkspaceID: shared.WorkspaceID(workspaceID)}, nil
}

func (u *authUsecase) IssueToken(actor shared.Actor, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":      string(actor.UserID),
		"workspace_id": string(actor.WorkspaceID),
		"exp":          u.clock.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(u.secret)
}

func (u *authUsecase) RegisterDevice(ctx context.Context, actor shared.Actor, token, deviceInfo string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return shared.NewValidationError("token", "device token is required")
	}
	return u.fcmRepo.SaveToken(ctx, actor.UserID, token, deviceInfo, u.clock.Now())
}

func (u *authUsecase) UnregisterDevice(ctx context.Context, actor shared.Actor, token string) error {
	deleted, err := u.fcmRepo.DeleteUserToken(ctx, actor.UserID, token)
	if err != nil {
		return err
	}
	if !deleted {
		return shared.NewNotFoundError("device", fmt.Sprintf("%.8s", token))
	}
	return nil
}
