package html

import (
	"bytes"
	_ "embed"
)

//go:embed assets/index.html
var defaultPage []byte

// DefaultPage returns the built-in landing page holding the signUp and logIn buttons.
func DefaultPage() []byte {
	return bytes.Clone(defaultPage)
}

// ParseDefault parses DefaultPage.
func ParseDefault() (*Document, error) {
	return Parse(bytes.NewReader(defaultPage))
}
