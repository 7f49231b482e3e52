package session

import (
	"context"
	"fmt"
	"time"

	"suma-service/internal/app/contracts"
	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/exceptions"
	"suma-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
	JWTSecret       string
	JWTExpHours     int
}

func NewSessionService(redisRepository contracts.RedisRepository, logger *zap.Logger, jwtSecret string, jwtExpHours int) contracts.SessionService {
	return &sessionService{
		RedisRepository: redisRepository,
		Log:             logger,
		JWTSecret:       jwtSecret,
		JWTExpHours:     jwtExpHours,
	}
}

// CreateSession stores the session in redis keyed by a fresh session id and
// returns a JWT carrying only that id. The token itself never holds identity.
func (s *sessionService) CreateSession(ctx context.Context, session *models.Session) (string, error) {
	session.SessionID = uuid.NewString()
	session.ExpiresAt = time.Now().Add(time.Duration(s.JWTExpHours) * time.Hour)

	sessionTTL := time.Until(session.ExpiresAt)
	err := s.RedisRepository.Set(ctx, sessionKey(session.SessionID), session, sessionTTL)
	if err != nil {
		return "", exceptions.ErrRedisStoreSession(err)
	}

	token, err := utils.GenerateSessionJWT(session.SessionID, s.JWTSecret, s.JWTExpHours)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *sessionService) ResolveSession(ctx context.Context, token string) (*models.Session, error) {
	sessionID, err := utils.ParseJWT(token, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	raw, err := s.RedisRepository.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, exceptions.ErrTokenInvalidOrExpired(fmt.Errorf("session %s not found", sessionID))
	}

	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.Log.Error("sessionService.ResolveSession cannot unmarshal session payload",
			zap.String(constvars.LoggingSessionDataKey, sessionID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &session, nil
}

func (s *sessionService) DestroySession(ctx context.Context, sessionID string) error {
	return s.RedisRepository.Delete(ctx, sessionKey(sessionID))
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf(constvars.RedisSessionKeyFormat, sessionID)
}
