package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestGridColumns(t *testing.T) {
	assert.Equal(t, 4, gridColumns(100))
	assert.Equal(t, 1, gridColumns(cellWidth))
	assert.Equal(t, 1, gridColumns(5), "always at least one column")
}

func TestRenderCard_Size(t *testing.T) {
	p := testEntries(1, 1)[0]
	p.Name = "a-very-long-name-that-would-wrap"
	p.Types = []string{"electric", "psychic", "dragon"}

	card := renderCard(p, false)
	assert.Equal(t, cellHeight, lipgloss.Height(card))
	assert.Equal(t, cellWidth-1, lipgloss.Width(card))
	assert.Equal(t, cellHeight, lipgloss.Height(renderCard(p, true)))
}

func TestRenderGrid(t *testing.T) {
	assert.Empty(t, renderGrid(nil, 4, 0))

	grid := renderGrid(testEntries(1, 6), 4, 0)
	assert.Equal(t, 2*cellHeight, lipgloss.Height(grid))
	assert.Contains(t, grid, "#001")
	assert.Contains(t, grid, "#006")
	assert.Less(t, strings.Index(grid, "#001"), strings.Index(grid, "#002"))
}

func TestCardAt(t *testing.T) {
	tests := []struct {
		name  string
		x     int
		line  int
		count int
		want  int
	}{
		{"first card", 0, 0, 10, 0},
		{"inside first card", 10, 3, 10, 0},
		{"gap after first card", cellWidth - 1, 0, 10, -1},
		{"second card", cellWidth, 0, 10, 1},
		{"second row", 0, cellHeight, 10, 4},
		{"third row", 0, 2 * cellHeight, 10, 8},
		{"past the last card", 2 * cellWidth, 2 * cellHeight, 10, -1},
		{"right of the grid", 4 * cellWidth, 0, 10, -1},
		{"negative", -1, 0, 10, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cardAt(tt.x, tt.line, 4, tt.count))
		})
	}
}

func TestCountLabel(t *testing.T) {
	assert.Equal(t, "Showing 0 Pokémon", countLabel(0))
	assert.Equal(t, "Showing 20 Pokémon", countLabel(20))
}
