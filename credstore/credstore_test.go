package credstore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestSetGetDelete(t *testing.T) {
	keyring.MockInit()

	_, err := Get("alice")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, keyring.ErrNotFound)

	require.NoError(t, Set("alice", "s3cret"))

	password, err := Get("alice")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", password)

	require.NoError(t, Delete("alice"))
	_, err = Get("alice")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting twice is fine.
	assert.NoError(t, Delete("alice"))
}

func TestSet_Validation(t *testing.T) {
	keyring.MockInit()

	assert.Error(t, Set("", "pw"))
	assert.Error(t, Set("alice", ""))

	_, err := Get("")
	assert.Error(t, err)
}

func TestGet_KeyringUnavailable(t *testing.T) {
	keyring.MockInitWithError(errors.New("no dbus session"))

	_, err := Get("alice")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "OS keyring is not available")
}
