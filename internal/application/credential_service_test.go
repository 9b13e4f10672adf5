package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/petit/internal/domain"
	"github.com/bnema/petit/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errStoreLocked = errors.New("pass locked")

func TestCredentialServiceLoginStoresToken(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	clock := mocks.NewMockClock(t)
	service := NewCredentialService(store, clock)

	clock.EXPECT().Now().Return(testNow).Once()
	store.EXPECT().Put(mockAnyContext(), CredentialsSecretKey, mock.MatchedBy(func(value string) bool {
		return assert.ObjectsAreEqual(
			`{"access_token":"tok-123","token_type":"Bearer","saved_at":"2026-10-19T12:00:00Z"}`, value)
	})).Return(nil).Once()

	creds, err := service.Login(context.Background(), "  tok-123\n")
	require.NoError(t, err)
	assert.Equal(t, domain.Credentials{AccessToken: "tok-123", TokenType: "Bearer", SavedAt: testNow}, creds)
}

func TestCredentialServiceLoginRejectsEmptyToken(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	service := NewCredentialService(store, mocks.NewMockClock(t))

	_, err := service.Login(context.Background(), "   ")
	require.Error(t, err)
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

func TestCredentialServiceLoginStoreFailure(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	service := NewCredentialService(store, fixedClock{now: testNow})

	store.EXPECT().Put(mockAnyContext(), CredentialsSecretKey, mock.Anything).Return(errors.New("pass locked")).Once()

	_, err := service.Login(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store credentials: pass locked")
}

func TestCredentialServiceCredentials(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		getErr  error
		want    domain.Credentials
		wantErr error
	}{
		{
			name: "stored token",
			raw:  `{"access_token":"tok","token_type":"Bearer","saved_at":"2026-10-19T12:00:00Z"}`,
			want: domain.Credentials{AccessToken: "tok", TokenType: "Bearer", SavedAt: testNow},
		},
		{
			name: "missing token type defaults to bearer",
			raw:  `{"access_token":"tok"}`,
			want: domain.Credentials{AccessToken: "tok", TokenType: domain.DefaultTokenType},
		},
		{name: "secret missing", getErr: domain.ErrSecretNotFound, wantErr: domain.ErrNotLoggedIn},
		{name: "backend failure is not a logout", getErr: errStoreLocked, wantErr: errStoreLocked},
		{name: "corrupt payload", raw: "{", wantErr: domain.ErrNotLoggedIn},
		{name: "empty token", raw: `{"access_token":"  "}`, wantErr: domain.ErrNotLoggedIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockSecretStore(t)
			service := NewCredentialService(store, fixedClock{now: testNow})
			store.EXPECT().Get(mockAnyContext(), CredentialsSecretKey).Return(tt.raw, tt.getErr).Once()

			got, err := service.Credentials(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				if tt.wantErr != domain.ErrNotLoggedIn {
					assert.NotErrorIs(t, err, domain.ErrNotLoggedIn)
				}
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.SavedAt.Equal(got.SavedAt))
			got.SavedAt = tt.want.SavedAt
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCredentialServiceLogoutDeletesSecret(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	service := NewCredentialService(store, nil)

	store.EXPECT().Delete(mockAnyContext(), CredentialsSecretKey).Return(nil).Once()

	require.NoError(t, service.Logout(context.Background()))
}
