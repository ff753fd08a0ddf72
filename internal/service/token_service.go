package service

import (
	"context"
	"fmt"

	"github.com/dtroode/healthperm-server/internal/logger"
	"github.com/dtroode/healthperm-server/internal/model"
)

// TokenService issues and resolves caller access tokens.
type TokenService struct {
	manager model.TokenManager
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, logger: logger}
}

// Issue returns an access token whose subject is identity.
func (s *TokenService) Issue(identity model.Identity) (string, error) {
	if err := validateIdentity("identity", identity); err != nil {
		return "", err
	}

	token, err := s.manager.GenerateAccessToken(identity)
	if err != nil {
		s.logger.Error("Token service: failed to issue access token",
			"identity", identity,
			"error", err.Error())
		return "", fmt.Errorf("issue access: %w", err)
	}

	return token, nil
}

// GetIdentity resolves the caller identity carried by token.
func (s *TokenService) GetIdentity(_ context.Context, token string) (model.Identity, error) {
	return s.manager.ParseAccessToken(token)
}
