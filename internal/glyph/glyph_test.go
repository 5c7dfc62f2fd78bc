package glyph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackRehydrate(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		source := `{"kind":"module","name":"auth","children":[]}`

		glyphs := Pack(source)
		assert.True(t, strings.HasPrefix(glyphs, Prefix))

		recovered, err := Rehydrate(glyphs)
		require.NoError(t, err)
		assert.Equal(t, source, recovered)
	})

	t.Run("empty source", func(t *testing.T) {
		recovered, err := Rehydrate(Pack(""))
		require.NoError(t, err)
		assert.Equal(t, "", recovered)
	})

	t.Run("surrounding whitespace is tolerated", func(t *testing.T) {
		recovered, err := Rehydrate("  " + Pack("x") + "\n")
		require.NoError(t, err)
		assert.Equal(t, "x", recovered)
	})
}

func TestRehydrateRejections(t *testing.T) {
	t.Run("missing prefix", func(t *testing.T) {
		_, err := Rehydrate("plain text")
		assert.ErrorIs(t, err, ErrNotGlyphString)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, err := Rehydrate(Prefix + "***")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode glyph string")
	})

	t.Run("corrupted stream", func(t *testing.T) {
		_, err := Rehydrate(Prefix + "AAAA")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decompress glyph string")
	})
}

func TestRehydratorAdapter(t *testing.T) {
	recovered, err := Rehydrator{}.Rehydrate(Pack("abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", recovered)
}
