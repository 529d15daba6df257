package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RoundTrip(t *testing.T) {
	var m Memory

	text, err := m.Read()
	require.NoError(t, err)
	assert.Empty(t, text)

	require.NoError(t, m.Write("hello"))

	text, err = m.Read()
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestSystem_ImplementsClipboard(t *testing.T) {
	var _ Clipboard = System()
	var _ Clipboard = &Memory{}
}
