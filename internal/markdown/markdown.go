// Package markdown renders markdown reports for terminal output.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	internalstrings "github.com/stillapp/still/internal/strings"
)

var (
	rendererMu sync.Mutex
	renderers  = map[int]*glamour.TermRenderer{}
)

// Render formats markdown text for terminal output at the given width.
// On renderer failure the normalized input is returned unstyled.
func Render(width int, input string) string {
	value := internalstrings.NormalizeNewlines(input)
	value = internalstrings.TrimTrailingNewlines(value)
	if strings.TrimSpace(value) == "" {
		return ""
	}
	if width < 1 {
		width = 1
	}

	renderer := reportRenderer(width)
	if renderer == nil {
		return value
	}
	formatted, err := renderer.Render(value)
	if err != nil {
		return value
	}
	return internalstrings.TrimTrailingNewlines(formatted)
}

func reportRenderer(width int) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}
