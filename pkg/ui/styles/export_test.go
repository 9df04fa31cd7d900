package styles

import "testing"

// EmbeddedStyles exposes the embedded document to the external test package
func EmbeddedStyles(t *testing.T) []byte {
	t.Helper()
	return embeddedStyles
}
