package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/pokedex/pkg/pokemon"
	"github.com/muesli/reflow/truncate"
)

const (
	cardWidth = 20 // inner width, without border
	cardLines = 3  // inner height: number, name, types

	// Rendered size of one card cell, border and gap included.
	cellWidth  = cardWidth + 2 + 1
	cellHeight = cardLines + 2

	// rowUnits converts terminal rows into the display units the scroll
	// threshold is expressed in.
	rowUnits = 20
)

// gridColumns is how many cards fit side by side in width columns.
func gridColumns(width int) int {
	return max(1, width/cellWidth)
}

// renderCard draws one grid card.
func renderCard(p pokemon.Pokemon, selected bool) string {
	var b strings.Builder
	b.WriteString(numberStyle.Render(pokemon.Number(p.ID)))
	b.WriteString("\n")
	b.WriteString(nameStyle.Render(truncate.StringWithTail(pokemon.DisplayName(p.Name), cardWidth-2, "…")))
	b.WriteString("\n")

	badges := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		badges = append(badges, typeBadge(t))
	}
	b.WriteString(truncate.String(strings.Join(badges, " "), cardWidth-2))

	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	return style.Render(b.String())
}

// renderGrid lays cards out in rows of cols cards.
func renderGrid(cards []pokemon.Pokemon, cols, selected int) string {
	if len(cards) == 0 {
		return ""
	}

	rows := make([]string, 0, len(cards)/cols+1)
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		cells := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, " ")
			}
			cells = append(cells, renderCard(cards[i], i == selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// cardAt maps a position inside the grid content to a card index, or -1.
func cardAt(x, line, cols, count int) int {
	if x < 0 || line < 0 {
		return -1
	}
	col := x / cellWidth
	if col >= cols || x%cellWidth == cellWidth-1 {
		return -1 // gap between cards
	}
	idx := (line/cellHeight)*cols + col
	if idx >= count {
		return -1
	}
	return idx
}

func countLabel(n int) string {
	return fmt.Sprintf("Showing %d Pokémon", n)
}
