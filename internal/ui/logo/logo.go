// Package logo renders the wordmark above the typing surface.
package logo

import (
	"strings"

	"github.com/zjrosen/keyloom/internal/ui/styles"
)

const wordmark = "k e y l o o m"

// Props is what the coordinator hands down each update.
type Props struct {
	Focused bool
	Music   bool
	Hidden  bool // ui.show_logo off
}

// View renders the logo. Focused mode shrinks it to the bare wordmark.
func View(p Props) string {
	if p.Hidden {
		return ""
	}
	if p.Focused {
		return styles.HintStyle.Render(wordmark)
	}
	var b strings.Builder
	b.WriteString(styles.LogoStyle.Render(wordmark))
	if p.Music {
		b.WriteString(" ")
		b.WriteString(styles.MusicStyle.Render("♪"))
	}
	b.WriteString("\n")
	b.WriteString(styles.HintStyle.Render("a quiet place to type"))
	return b.String()
}
