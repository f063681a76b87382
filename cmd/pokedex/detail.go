package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/pokedex/pkg/pokemon"
	"github.com/muesli/reflow/wordwrap"
)

const (
	detailWidth   = 46
	statBarWidth  = 20
	statNameWidth = 12
)

// statBar draws a bar whose fill is pokemon.StatFill of value.
func statBar(value, width int) string {
	filled := int(math.Round(pokemon.StatFill(value) * float64(width)))
	return statBarStyle.Render(strings.Repeat("█", filled)) +
		statTrackStyle.Render(strings.Repeat("░", width-filled))
}

// renderDetail draws the overlay card, front or back.
func renderDetail(p pokemon.Pokemon, flipped bool) string {
	var b strings.Builder

	b.WriteString(numberStyle.Render(pokemon.Number(p.ID)) + "  " + modalTitleStyle.Render(pokemon.DisplayName(p.Name)))
	b.WriteString("\n\n")

	if flipped {
		b.WriteString(titleStyle.Render("Base stats"))
		b.WriteString("\n\n")
		for _, s := range p.Stats {
			fmt.Fprintf(&b, "%-*s %3d %s\n", statNameWidth, pokemon.StatLabel(s.Name), s.Value, statBar(s.Value, statBarWidth))
		}
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("Enter: front · c: copy · Esc: close"))
		return modalStyle.Width(detailWidth).Render(b.String())
	}

	b.WriteString(promptStyle.Render(wordwrap.String(p.SpriteOrPlaceholder(), detailWidth-4)))
	b.WriteString("\n\n")

	badges := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		badges = append(badges, typeBadge(t))
	}
	b.WriteString(strings.Join(badges, " "))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Weight  %s\nHeight  %s\n\n", pokemon.Weight(p.Weight), pokemon.Height(p.Height))

	b.WriteString("Abilities\n")
	abilities := make([]string, 0, len(p.Abilities))
	for _, a := range p.Abilities {
		abilities = append(abilities, abilityStyle.Render(pokemon.AbilityLabel(a)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, intersperse(abilities, " ")...))
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render("Enter: stats · c: copy · Esc: close"))

	return modalStyle.Width(detailWidth).Render(b.String())
}

func intersperse(items []string, sep string) []string {
	out := make([]string, 0, 2*len(items))
	for i, s := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, s)
	}
	return out
}
