package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citrushq/citrus/internal/model"
	"github.com/citrushq/citrus/internal/service"
)

type fakeGateway struct {
	service.Gateway
	user *model.UserProfile
	err  error
}

func (f *fakeGateway) FetchCurrentUser(_ context.Context) (*model.UserProfile, error) {
	return f.user, f.err
}

func TestSignalResolvesUser(t *testing.T) {
	sig := NewSignal(&fakeGateway{user: &model.UserProfile{ID: "user-1"}})
	user, err := sig.CurrentUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user-1", user.ID)
}

func TestSignalErrorMeansAnonymous(t *testing.T) {
	sig := NewSignal(&fakeGateway{err: errors.New("network down")})
	user, err := sig.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestTokenFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	tf := NewTokenFile(path)

	token, err := tf.Load()
	require.NoError(t, err)
	assert.Empty(t, token, "missing file reads as no session")

	require.NoError(t, tf.Save("secret-token"))

	token, err = tf.Load()
	require.NoError(t, err)
	assert.Equal(t, "secret-token", token)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, tf.Clear())
	token, err = tf.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing twice is fine.
	require.NoError(t, tf.Clear())
}
