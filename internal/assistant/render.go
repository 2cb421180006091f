package assistant

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

var markdown = goldmark.New()

// CleanMarkdown strips an outer fenced code block that some models wrap answers in
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)
	if strings.HasPrefix(cleaned, "```") && strings.HasSuffix(cleaned, "```") && len(cleaned) >= 6 {
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimPrefix(cleaned, "```markdown")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}

// RenderMarkdown converts an assistant answer to HTML. Raw HTML in the input is omitted.
func RenderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(CleanMarkdown(content)), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}
