// Package domain holds the coverage aggregation and filtering logic.
package domain

import (
	"strings"

	m "covreport.dev/pkg/covreport/internal/model"
)

// DefaultStripPrefix is the build-agent checkout root embedded in report filenames.
const DefaultStripPrefix = `G:\code\Sailfish\source\`

// PathNormalizer maps raw report filenames to slash-separated relative paths.
type PathNormalizer struct {
	prefix string
}

// NewPathNormalizer creates a PathNormalizer that strips prefix.
func NewPathNormalizer(prefix string) PathNormalizer {
	return PathNormalizer{prefix: prefix}
}

// Normalize strips the configured prefix when raw starts with it and converts
// backslashes to forward slashes. Slash-separated input is returned unchanged.
func (n PathNormalizer) Normalize(raw string) m.Path {
	name := raw
	if n.prefix != "" {
		name = strings.TrimPrefix(name, n.prefix)
	}

	return m.Path(strings.ReplaceAll(name, `\`, "/"))
}
