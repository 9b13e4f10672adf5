package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/petit/internal/domain"
	"github.com/bnema/petit/internal/ports"
)

const CredentialsSecretKey = "petit/oauth_token"

type credentialsRecord struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	SavedAt     time.Time `json:"saved_at"`
}

type CredentialService struct {
	store ports.SecretStore
	clock ports.Clock
}

func NewCredentialService(store ports.SecretStore, clock ports.Clock) *CredentialService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &CredentialService{store: store, clock: clock}
}

func (s *CredentialService) Login(ctx context.Context, accessToken string) (domain.Credentials, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return domain.Credentials{}, errors.New("access token is empty")
	}

	creds := domain.Credentials{
		AccessToken: accessToken,
		TokenType:   domain.DefaultTokenType,
		SavedAt:     s.clock.Now().UTC(),
	}

	payload, err := json.Marshal(credentialsRecord(creds))
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("encode credentials: %w", err)
	}
	if err := s.store.Put(ctx, CredentialsSecretKey, string(payload)); err != nil {
		return domain.Credentials{}, fmt.Errorf("store credentials: %w", err)
	}

	return creds, nil
}

func (s *CredentialService) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, CredentialsSecretKey); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}

	return nil
}

// Credentials returns domain.ErrNotLoggedIn when nothing usable is stored.
func (s *CredentialService) Credentials(ctx context.Context) (domain.Credentials, error) {
	raw, err := s.store.Get(ctx, CredentialsSecretKey)
	if errors.Is(err, domain.ErrSecretNotFound) {
		return domain.Credentials{}, fmt.Errorf("%w: %w", domain.ErrNotLoggedIn, err)
	}
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("load credentials: %w", err)
	}

	var record credentialsRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return domain.Credentials{}, fmt.Errorf("%w: decode credentials: %w", domain.ErrNotLoggedIn, err)
	}
	creds := domain.Credentials(record)
	if strings.TrimSpace(creds.AccessToken) == "" {
		return domain.Credentials{}, domain.ErrNotLoggedIn
	}
	if creds.TokenType == "" {
		creds.TokenType = domain.DefaultTokenType
	}

	return creds, nil
}
