package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/petit/internal/adapters/secrets/file"
	passstore "github.com/bnema/petit/internal/adapters/secrets/pass"
	"github.com/bnema/petit/internal/domain"
	"github.com/bnema/petit/internal/ports"
)

// Backend names accepted by Open.
const (
	BackendAuto = "auto"
	BackendPass = "pass"
	BackendFile = "file"
)

var ErrUnknownBackend = errors.New("unknown secrets backend")

// Store reads and writes through a primary backend and falls back to a
// second one when the primary fails.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

// Open builds the secret store named by backend. Auto prefers pass and falls
// back to files under fileRoot.
func Open(backend string, fileRoot string) (ports.SecretStore, error) {
	switch backend {
	case "", BackendAuto:
		return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot))
	case BackendPass:
		return passstore.NewStore(), nil
	case BackendFile:
		return filestore.NewStore(fileRoot), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, backend)
	}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}
	primaryMissing := errors.Is(err, domain.ErrSecretNotFound)
	fallbackMissing := errors.Is(fallbackErr, domain.ErrSecretNotFound)
	switch {
	case primaryMissing && fallbackMissing:
		return "", fmt.Errorf("get %q: %w", key, domain.ErrSecretNotFound)
	case primaryMissing:
		// A real failure in one backend must not read as a missing secret.
		return "", fmt.Errorf("primary backend get failed: %v; fallback backend get failed: %w", err, fallbackErr)
	case fallbackMissing:
		return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %v", err, fallbackErr)
	default:
		return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
	}
}

// Delete clears the key from both backends so a stale copy cannot resurface
// through the fallback.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	switch {
	case err == nil && fallbackErr == nil:
		return nil
	case err == nil:
		return fmt.Errorf("fallback backend delete failed: %w", fallbackErr)
	case fallbackErr == nil:
		if errors.Is(err, passstore.ErrUnavailable) {
			return nil
		}
		return fmt.Errorf("primary backend delete failed: %w", err)
	default:
		return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", err, fallbackErr)
	}
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
