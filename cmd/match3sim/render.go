package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vancomm/match3-server/internal/match3"
)

var tokenColors = map[match3.TokenType]lipgloss.Color{
	match3.Ruby:     lipgloss.Color("#E0115F"),
	match3.Amber:    lipgloss.Color("#FFBF00"),
	match3.Topaz:    lipgloss.Color("#4FC3F7"),
	match3.Emerald:  lipgloss.Color("#50C878"),
	match3.Sapphire: lipgloss.Color("#0F52BA"),
	match3.Amethyst: lipgloss.Color("#9966CC"),
	match3.Diamond:  lipgloss.Color("#E8F4F8"),
	match3.Onyx:     lipgloss.Color("#777777"),
	match3.Prism:    lipgloss.Color("#FF00FF"),
}

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4500")).
			Bold(true)
	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FFD700")).
			Padding(1, 2)
)

// glyph marks specials next to the token letter: - and | for lines, * for
// area bombs, the wildcard shows as a lone P.
func glyph(c match3.Cell) string {
	mark := " "
	switch c.Special {
	case match3.RowClear:
		mark = "-"
	case match3.ColumnClear:
		mark = "|"
	case match3.AreaClear:
		mark = "*"
	}
	return string(c.Type.Letter()) + mark
}

func renderBoard(b *match3.Board) string {
	var sb strings.Builder
	for r, row := range b.Rows() {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			style := lipgloss.NewStyle().Foreground(tokenColors[c.Type])
			if c.Special != match3.None {
				style = style.Bold(true)
			}
			sb.WriteString(style.Render(glyph(c)))
		}
	}
	return boardStyle.Render(sb.String())
}

func renderSummary(g *match3.GameState, turns int) string {
	outcome := "in progress"
	switch {
	case g.Won:
		outcome = "won"
	case g.Lost:
		outcome = "lost"
	}
	text := fmt.Sprintf(
		"%s\n\nlevel %d: %s\nscore %d / %d\nturns %d, moves left %d\nreshuffles %d",
		titleStyle.Render("match3 simulation"),
		g.Level, outcome,
		g.Score, g.Config.TargetScore,
		turns, g.MovesLeft,
		g.AutoShuffles,
	)
	return summaryStyle.Render(text)
}
