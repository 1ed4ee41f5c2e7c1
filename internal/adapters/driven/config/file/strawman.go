package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/deckroute/internal/core/domain"
)

// Strawman file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// StrawmanFormat returns the format implied by a file extension.
// Unknown extensions are treated as JSON.
func StrawmanFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// LoadStrawman reads a strawman from a JSON or TOML file.
func LoadStrawman(path string) (*domain.Strawman, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read strawman: %w", err)
	}
	return DecodeStrawman(bytes.NewReader(data), StrawmanFormat(path))
}

// DecodeStrawman decodes a strawman in the given format. Unknown fields
// are rejected so typos in hint names surface early.
func DecodeStrawman(r io.Reader, format string) (*domain.Strawman, error) {
	var s domain.Strawman
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("%w: decode toml strawman: %w", domain.ErrInvalidInput, err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("%w: decode json strawman: %w", domain.ErrInvalidInput, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown strawman format %q", domain.ErrInvalidInput, format)
	}
	if len(s.Slides) == 0 {
		return nil, fmt.Errorf("%w: strawman has no slides", domain.ErrInvalidInput)
	}
	s.Normalise()
	return &s, nil
}

// WriteStrawman writes a strawman as indented JSON or TOML.
func WriteStrawman(w io.Writer, s *domain.Strawman, format string) error {
	switch format {
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(s)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	default:
		return fmt.Errorf("%w: unknown strawman format %q", domain.ErrInvalidInput, format)
	}
}
