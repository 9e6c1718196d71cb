package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"Linkshelf/internal/cli/model"
)

const (
	defaultColumns   = 3
	defaultCardWidth = 36
)

var (
	cardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
	urlStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
)

// Grid renders bookmarks as bordered cards, Columns per row.
type Grid struct {
	Columns   int
	CardWidth int
	Names     Names
}

func (g Grid) Render(w io.Writer, bookmarks []model.Bookmark) error {
	if len(bookmarks) == 0 {
		_, err := fmt.Fprintln(w, "• no bookmarks")
		return err
	}
	cols := g.Columns
	if cols <= 0 {
		cols = defaultColumns
	}
	width := g.CardWidth
	if width <= 0 {
		width = defaultCardWidth
	}

	for start := 0; start < len(bookmarks); start += cols {
		end := min(start+cols, len(bookmarks))
		cards := make([]string, 0, end-start)
		for _, b := range bookmarks[start:end] {
			cards = append(cards, g.card(b, width))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	return nil
}

func (g Grid) card(b model.Bookmark, width int) string {
	inner := width - 4 // рамка и отступы
	lines := []string{
		titleStyle.Render(truncate(b.Title, inner)),
		urlStyle.Render(truncate(b.URL, inner)),
	}
	if d := deref(b.Description); d != "" {
		lines = append(lines, truncate(d, inner))
	}
	if len(b.Tags) > 0 {
		chips := make([]string, 0, len(b.Tags))
		for _, t := range b.Tags {
			chips = append(chips, tagChip(t))
		}
		lines = append(lines, strings.Join(chips, " "))
	}
	lines = append(lines, metaStyle.Render(fmt.Sprintf("#%d · %s · %s", b.ID, g.Names.collection(b), b.CreatedAt.Short())))

	return cardStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func tagChip(t model.Tag) string {
	color := t.Color
	if color == "" {
		color = model.DefaultTagColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("#" + t.Name)
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
