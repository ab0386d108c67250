package dispatch

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"autoblog/store"
	"autoblog/types"
)

var (
	nameStyle      = lipgloss.NewStyle().Bold(true)
	deliveredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	previewStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).PaddingLeft(2)
)

// PrintQueue lists the queue as platform would see it, without posting.
func PrintQueue(w io.Writer, entries []store.QueueEntry, platform string) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Queue is empty.")
		return
	}
	for _, e := range entries {
		if e.Err != nil {
			fmt.Fprintf(w, "%s %s\n", nameStyle.Render(e.Name), errorStyle.Render("unreadable: "+e.Err.Error()))
			continue
		}
		if !e.Item.Targets(platform) {
			continue
		}
		marker := e.Item.Marker(platform)
		status := pendingStyle.Render(marker.String())
		if marker.IsDelivered() {
			status = deliveredStyle.Render(marker.String())
		}
		fmt.Fprintf(w, "%s [%s] %s\n", nameStyle.Render(e.Name), e.Item.Type, status)

		if marker.IsDelivered() {
			continue
		}
		content, ok := e.Item.Content.For(platform)
		switch {
		case !ok:
			fmt.Fprintln(w, previewStyle.Render("(no content)"))
		case !content.IsStructured():
			fmt.Fprintln(w, previewStyle.Render("(unparsed) "+types.Truncate(content.Raw(), 80)))
		default:
			fmt.Fprintln(w, previewStyle.Render(content.RenderUnit(marker.Cursor())))
		}
	}
}
