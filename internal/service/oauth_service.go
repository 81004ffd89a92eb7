package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/easysocial/easysocial-server/internal/models"
	"github.com/easysocial/easysocial-server/internal/oauth"
	"github.com/easysocial/easysocial-server/internal/repository"
)

var _ OAuthFlow = (*OAuthService)(nil)

// OAuthService orchestrates a login attempt: state issuance, provider
// dispatch, state validation on callback, identity reconciliation, and
// credential issuance.
type OAuthService struct {
	stateRepo repository.StateRepository
	adapters  map[models.Provider]oauth.Adapter
	users     UserReconciler
	tokens    TokenGenerator
}

func NewOAuthService(
	stateRepo repository.StateRepository,
	adapters map[models.Provider]oauth.Adapter,
	users UserReconciler,
	tokens TokenGenerator,
) *OAuthService {
	return &OAuthService{
		stateRepo: stateRepo,
		adapters:  adapters,
		users:     users,
		tokens:    tokens,
	}
}

func (s *OAuthService) LoginURL(ctx context.Context, provider models.Provider) (string, error) {
	adapter, ok := s.adapters[provider]
	if !ok {
		return "", fmt.Errorf("no adapter configured for provider %q", provider)
	}

	state, err := s.stateRepo.Issue(ctx, provider)
	if err != nil {
		return "", fmt.Errorf("failed to issue oauth state: %w", err)
	}
	return adapter.AuthCodeURL(state), nil
}

func (s *OAuthService) HandleCallback(ctx context.Context, provider models.Provider, state, code string) (string, error) {
	adapter, ok := s.adapters[provider]
	if !ok {
		return "", fmt.Errorf("no adapter configured for provider %q", provider)
	}

	consumed, err := s.stateRepo.Consume(ctx, state, provider)
	if err != nil {
		return "", fmt.Errorf("failed to consume oauth state: %w", err)
	}
	if !consumed {
		// Unknown, expired, and mismatched states all collapse into one
		// rejection; no upstream call happens.
		return "", ErrInvalidState
	}

	// The state is burnt from here on: any failure is terminal for this
	// attempt and the client must restart the flow.
	accessToken, err := adapter.ExchangeCode(ctx, code)
	if err != nil {
		log.Warn().Err(err).Str("provider", provider.String()).Msg("Token exchange failed")
		return "", err
	}

	identity, err := adapter.FetchIdentity(ctx, accessToken)
	if err != nil {
		log.Warn().Err(err).Str("provider", provider.String()).Msg("Identity fetch failed")
		return "", err
	}

	user, err := s.users.Reconcile(ctx, identity)
	if err != nil {
		return "", err
	}

	signed, err := s.tokens.GenerateToken(user)
	if err != nil {
		return "", err
	}

	log.Info().Str("userId", user.ID).Str("provider", provider.String()).Msg("Login completed")
	return signed, nil
}
