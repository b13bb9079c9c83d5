package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/guard-service/internal/audit"
	"github.com/spec-kit/guard-service/internal/domain"
	"github.com/spec-kit/guard-service/internal/observability"
)

// Service orchestrates token extraction, classification, strategy dispatch,
// and authentication-context construction. It holds no per-request mutable
// state: construct one at startup and share it across requests.
type Service struct {
	factory *StrategyFactory
	logger  *zap.Logger
	metrics *observability.Metrics
	trail   audit.Trail
}

// NewService builds the authentication service. metrics may be nil; trail
// falls back to a no-op when nil.
func NewService(factory *StrategyFactory, logger *zap.Logger, metrics *observability.Metrics, trail audit.Trail) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if trail == nil {
		trail = audit.NewNopTrail()
	}
	return &Service{factory: factory, logger: logger, metrics: metrics, trail: trail}
}

// Factory exposes the strategy registry, e.g. for the admin surface.
func (s *Service) Factory() *StrategyFactory {
	return s.factory
}

// AuthenticateRequest authenticates the Authorization header value and
// returns the resolved user with a fresh per-request authentication
// context. All failures are *Error values; log entries carry only masked
// token summaries, never the credential itself.
func (s *Service) AuthenticateRequest(ctx context.Context, authorization string) (*domain.User, *AuthContext, error) {
	token, ok := extractBearerToken(authorization)
	if !ok {
		s.metrics.RecordAuthAttempt("none", "token_missing")
		return nil, nil, NewTokenRequired()
	}

	tokenType := DetectTokenType(token)
	s.logger.Debug("token classified",
		zap.String("token_type", string(tokenType)),
		zap.String("token", TokenDescription(token)),
		zap.Int("token_length", len(token)),
	)

	strategy := s.factory.Strategy(tokenType)
	if strategy == nil {
		// The default registry partitions every TokenType; this guards a
		// misconfigured one.
		s.metrics.RecordAuthAttempt("none", "failure")
		s.logger.Error("no strategy registered for token type",
			zap.String("token_type", string(tokenType)),
		)
		return nil, nil, NewAuthenticationFailed("Authentication failed: no strategy available for token type")
	}

	user, err := strategy.Authenticate(ctx, token)
	if err != nil {
		s.metrics.RecordAuthAttempt(strategy.Method(), "failure")
		s.logger.Error("authentication failed",
			zap.String("method", strategy.Method()),
			zap.String("token", TokenDescription(token)),
			zap.Error(err),
		)
		var authErr *Error
		if errors.As(err, &authErr) {
			return nil, nil, authErr
		}
		return nil, nil, NewAuthenticationFailed(err.Error())
	}

	// Provider-verified users without a store record have no local ID;
	// the external ID still identifies them in contexts and audit events.
	userID := user.ID
	if userID == "" {
		userID = user.ExternalID
	}

	authCtx := &AuthContext{
		UserID:    userID,
		SessionID: newSessionID(strategy.Method()),
		Claims: map[string]any{
			"sub":   user.ExternalID,
			"email": user.Email,
			"role":  string(user.Role),
		},
		Token:           token,
		TokenType:       tokenType,
		Method:          strategy.Method(),
		AuthenticatedAt: time.Now().UTC(),
	}

	s.metrics.RecordAuthAttempt(strategy.Method(), "success")
	// Full audit record: email is intentionally included here.
	s.logger.Info("request authenticated",
		zap.String("user_id", userID),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
		zap.String("token_type", string(tokenType)),
		zap.String("method", strategy.Method()),
		zap.String("session_id", authCtx.SessionID),
	)

	if err := s.trail.Record(ctx, audit.Event{
		UserID:    userID,
		Email:     user.Email,
		Role:      string(user.Role),
		Method:    strategy.Method(),
		TokenType: string(tokenType),
		SessionID: authCtx.SessionID,
		At:        authCtx.AuthenticatedAt,
	}); err != nil {
		s.logger.Warn("audit trail write failed", zap.Error(err))
	}

	return user, authCtx, nil
}

// extractBearerToken parses "Bearer <token>". The scheme is case-sensitive
// with a single separating space. A whitespace-only token is present but
// invalid: it is returned so verification, not extraction, rejects it.
func extractBearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
