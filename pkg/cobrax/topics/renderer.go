package topics

// Renderer formats raw topic content for the terminal
type Renderer interface {
	// Render receives the content and its file extension (".md", ".txt")
	Render(content string, format string) string
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
