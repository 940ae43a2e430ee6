package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/school-payments-console/internal/apperr"
	"github.com/sbilibin2017/school-payments-console/internal/facades"
	"github.com/sbilibin2017/school-payments-console/internal/models"
	"github.com/sbilibin2017/school-payments-console/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var staff = models.User{ID: "u1", Email: "staff@school.in", Role: "admin"}

func TestStore_LoginPersistsAndArms(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auth := NewMockAuthenticator(ctrl)
	storage := repositories.NewSessionMemoryRepository()
	store := NewStore(auth, storage, nil)

	auth.EXPECT().Login(gomock.Any(), "staff@school.in", "secret").
		Return(&models.AuthResponse{AccessToken: "TOKEN", User: staff}, nil)

	var notified []*models.Session
	store.Subscribe(func(s *models.Session) { notified = append(notified, s) })

	require.NoError(t, store.Login(context.Background(), " staff@school.in ", "secret"))

	sess, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "TOKEN", sess.Token)
	assert.Equal(t, staff, sess.User)

	cred, ok := store.Credential()
	require.True(t, ok)
	assert.Equal(t, "TOKEN", cred.Token)
	assert.Equal(t, store.Generation(), cred.Generation)

	token, ok, _ := storage.Get(context.Background(), TokenKey)
	assert.True(t, ok)
	assert.Equal(t, "TOKEN", token)
	user, ok, _ := storage.Get(context.Background(), UserKey)
	assert.True(t, ok)
	assert.JSONEq(t, `{"id":"u1","email":"staff@school.in","role":"admin"}`, user)

	require.Len(t, notified, 1)
	assert.Equal(t, "TOKEN", notified[0].Token)
}

func TestStore_AuthFailureKeepsPriorSession(t *testing.T) {
	tests := []struct {
		name    string
		call    func(s *Store) error
		expect  func(a *MockAuthenticator)
		wantMsg string
	}{
		{
			name: "login server message",
			call: func(s *Store) error { return s.Login(context.Background(), "x@y.z", "bad") },
			expect: func(a *MockAuthenticator) {
				a.EXPECT().Login(gomock.Any(), "x@y.z", "bad").
					Return(nil, &facades.APIError{StatusCode: 401, Message: "Invalid credentials"})
			},
			wantMsg: "Invalid credentials",
		},
		{
			name: "login default message",
			call: func(s *Store) error { return s.Login(context.Background(), "x@y.z", "bad") },
			expect: func(a *MockAuthenticator) {
				a.EXPECT().Login(gomock.Any(), "x@y.z", "bad").Return(nil, errors.New("dial tcp: refused"))
			},
			wantMsg: "Login failed",
		},
		{
			name: "register default message",
			call: func(s *Store) error { return s.Register(context.Background(), "x@y.z", "pw") },
			expect: func(a *MockAuthenticator) {
				a.EXPECT().Register(gomock.Any(), "x@y.z", "pw").Return(nil, &facades.APIError{StatusCode: 500})
			},
			wantMsg: "Registration failed",
		},
		{
			name: "empty token",
			call: func(s *Store) error { return s.Register(context.Background(), "x@y.z", "pw") },
			expect: func(a *MockAuthenticator) {
				a.EXPECT().Register(gomock.Any(), "x@y.z", "pw").Return(&models.AuthResponse{}, nil)
			},
			wantMsg: "Registration failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			auth := NewMockAuthenticator(ctrl)
			store := NewStore(auth, repositories.NewSessionMemoryRepository(), nil)

			auth.EXPECT().Login(gomock.Any(), "staff@school.in", "secret").
				Return(&models.AuthResponse{AccessToken: "OLD", User: staff}, nil)
			require.NoError(t, store.Login(context.Background(), "staff@school.in", "secret"))
			gen := store.Generation()

			tt.expect(auth)
			err := tt.call(store)

			var authErr *apperr.AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.wantMsg, authErr.Message)

			cred, ok := store.Credential()
			assert.True(t, ok)
			assert.Equal(t, "OLD", cred.Token)
			assert.Equal(t, gen, store.Generation())
		})
	}
}

func TestStore_LoginValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewStore(NewMockAuthenticator(ctrl), repositories.NewSessionMemoryRepository(), nil)

	var ve *apperr.ValidationError
	assert.ErrorAs(t, store.Login(context.Background(), "  ", "pw"), &ve)
	assert.ErrorAs(t, store.Register(context.Background(), "a@b.c", ""), &ve)
}

func TestStore_LogoutDisarms(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auth := NewMockAuthenticator(ctrl)
	storage := repositories.NewSessionMemoryRepository()
	store := NewStore(auth, storage, nil)

	auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.AuthResponse{AccessToken: "TOKEN", User: staff}, nil)
	require.NoError(t, store.Login(context.Background(), "staff@school.in", "secret"))
	before := store.Generation()

	require.NoError(t, store.Logout(context.Background()))

	_, ok := store.Current()
	assert.False(t, ok)
	cred, ok := store.Credential()
	assert.False(t, ok)
	assert.Empty(t, cred.Token)
	assert.Greater(t, store.Generation(), before)

	restored := NewStore(auth, storage, nil)
	require.NoError(t, restored.Restore(context.Background()))
	_, ok = restored.Current()
	assert.False(t, ok)
}

// gatedStorage blocks the first write until release is closed.
type gatedStorage struct {
	Storage
	entered chan struct{}
	release chan struct{}
	once    bool
}

func (g *gatedStorage) Set(ctx context.Context, key, value string) error {
	if !g.once {
		g.once = true
		close(g.entered)
		<-g.release
	}
	return g.Storage.Set(ctx, key, value)
}

func TestStore_LogoutDuringLoginPersistWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	auth := NewMockAuthenticator(ctrl)
	backing := repositories.NewSessionMemoryRepository()
	storage := &gatedStorage{Storage: backing, entered: make(chan struct{}), release: make(chan struct{})}
	store := NewStore(auth, storage, nil)

	auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.AuthResponse{AccessToken: "TOKEN", User: staff}, nil)

	loginDone := make(chan error, 1)
	go func() { loginDone <- store.Login(context.Background(), "staff@school.in", "secret") }()
	<-storage.entered

	logoutDone := make(chan error, 1)
	go func() { logoutDone <- store.Logout(context.Background()) }()
	time.Sleep(20 * time.Millisecond)
	close(storage.release)

	require.NoError(t, <-loginDone)
	require.NoError(t, <-logoutDone)

	_, ok := store.Current()
	assert.False(t, ok)
	_, ok, _ = backing.Get(context.Background(), TokenKey)
	assert.False(t, ok)

	restored := NewStore(auth, backing, nil)
	require.NoError(t, restored.Restore(context.Background()))
	_, ok = restored.Current()
	assert.False(t, ok)
}

func TestStore_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("both keys present", func(t *testing.T) {
		storage := repositories.NewSessionMemoryRepository()
		storage.Set(ctx, TokenKey, "TOKEN")
		storage.Set(ctx, UserKey, `{"id":"u1","email":"staff@school.in","role":"admin"}`)

		store := NewStore(nil, storage, nil)
		require.NoError(t, store.Restore(ctx))

		sess, ok := store.Current()
		require.True(t, ok)
		assert.Equal(t, staff, sess.User)
		cred, ok := store.Credential()
		assert.True(t, ok)
		assert.Equal(t, "TOKEN", cred.Token)
	})

	t.Run("token only", func(t *testing.T) {
		storage := repositories.NewSessionMemoryRepository()
		storage.Set(ctx, TokenKey, "TOKEN")

		store := NewStore(nil, storage, nil)
		require.NoError(t, store.Restore(ctx))
		_, ok := store.Credential()
		assert.False(t, ok)
	})

	t.Run("unreadable user", func(t *testing.T) {
		storage := repositories.NewSessionMemoryRepository()
		storage.Set(ctx, TokenKey, "TOKEN")
		storage.Set(ctx, UserKey, "{not json")

		store := NewStore(nil, storage, nil)
		require.NoError(t, store.Restore(ctx))
		_, ok := store.Current()
		assert.False(t, ok)
	})

	t.Run("expired token is discarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		storage := repositories.NewSessionMemoryRepository()
		storage.Set(ctx, TokenKey, "EXPIRED")
		storage.Set(ctx, UserKey, `{"id":"u1"}`)

		tokens := NewMockTokenInspector(ctrl)
		past := time.Now().Add(-time.Minute)
		tokens.EXPECT().ExpiresAt("EXPIRED").Return(&past, nil)

		store := NewStore(nil, storage, tokens)
		require.NoError(t, store.Restore(ctx))
		_, ok := store.Current()
		assert.False(t, ok)
		_, ok, _ = storage.Get(ctx, TokenKey)
		assert.False(t, ok)
	})

	t.Run("future expiry is recorded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		storage := repositories.NewSessionMemoryRepository()
		storage.Set(ctx, TokenKey, "FRESH")
		storage.Set(ctx, UserKey, `{"id":"u1"}`)

		tokens := NewMockTokenInspector(ctrl)
		future := time.Now().Add(time.Hour)
		tokens.EXPECT().ExpiresAt("FRESH").Return(&future, nil)

		store := NewStore(nil, storage, tokens)
		require.NoError(t, store.Restore(ctx))
		sess, ok := store.Current()
		require.True(t, ok)
		require.NotNil(t, sess.ExpiresAt)
		assert.False(t, sess.Expired(time.Now()))
	})
}
