// Package glyph packs CODIE source text into compact glyph strings and
// rehydrates them back. A glyph string is a tagged, base64url-encoded gzip
// stream.
package glyph

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/codie-lang/codie/internal/utils"
)

// Prefix tags glyph strings so other text is rejected early.
const Prefix = "glyph1:"

var ErrNotGlyphString = errors.New("input is not a glyph string")

// Pack compresses source text into a glyph string.
func Pack(source string) string {
	var buf bytes.Buffer

	w := gzip.NewWriter(&buf)
	utils.Must(w.Write([]byte(source)))
	w.Close()

	return Prefix + base64.URLEncoding.EncodeToString(buf.Bytes())
}

// Rehydrate recovers the source text from a glyph string.
func Rehydrate(glyphs string) (string, error) {
	glyphs = strings.TrimSpace(glyphs)
	if !strings.HasPrefix(glyphs, Prefix) {
		return "", ErrNotGlyphString
	}

	compressed, err := base64.URLEncoding.DecodeString(strings.TrimPrefix(glyphs, Prefix))
	if err != nil {
		return "", fmt.Errorf("failed to decode glyph string: %w", err)
	}

	r, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return "", fmt.Errorf("failed to decompress glyph string: %w", err)
	}
	defer r.Close()

	source, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to decompress glyph string: %w", err)
	}
	return string(source), nil
}

// Rehydrator adapts the package functions to the transpiler's collaborator
// interface.
type Rehydrator struct{}

func (Rehydrator) Rehydrate(glyphs string) (string, error) {
	return Rehydrate(glyphs)
}
