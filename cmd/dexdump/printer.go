package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jwebster45206/pokedex/pkg/dex"
	"github.com/jwebster45206/pokedex/pkg/pokemon"
)

// printer is a dex.Renderer that streams entries as text lines.
// The list only ever grows between resets, so a rebuild prints just the
// entries past what is already on the terminal.
type printer struct {
	out     io.Writer
	errOut  io.Writer
	json    bool
	printed int
	failed  bool
}

// Ensure printer implements dex.Renderer
var _ dex.Renderer = (*printer)(nil)

func (p *printer) Append(items []pokemon.Pokemon) {
	for _, item := range items {
		p.line(item)
	}
	p.printed += len(items)
}

func (p *printer) Rebuild(items []pokemon.Pokemon) {
	if len(items) < p.printed {
		p.printed = 0
	}
	p.Append(items[p.printed:])
}

func (p *printer) SetLoading(bool) {}

func (p *printer) ShowEnd(shown bool) {
	if shown && !p.json {
		fmt.Fprintln(p.out, "-- end of list --")
	}
}

func (p *printer) Alert(err error) {
	p.failed = true
	fmt.Fprintf(p.errOut, "Could not load Pokémon: %v\n", err)
}

func (p *printer) ShowOverlay(item pokemon.Pokemon, flipped bool) {
	if p.json {
		p.line(item)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", pokemon.Number(item.ID), pokemon.DisplayName(item.Name))
	fmt.Fprintf(p.out, "  sprite:    %s\n", item.SpriteOrPlaceholder())
	fmt.Fprintf(p.out, "  types:     %s\n", strings.Join(item.Types, ", "))
	fmt.Fprintf(p.out, "  weight:    %s\n", pokemon.Weight(item.Weight))
	fmt.Fprintf(p.out, "  height:    %s\n", pokemon.Height(item.Height))

	abilities := make([]string, 0, len(item.Abilities))
	for _, a := range item.Abilities {
		abilities = append(abilities, pokemon.AbilityLabel(a))
	}
	fmt.Fprintf(p.out, "  abilities: %s\n", strings.Join(abilities, ", "))

	for _, s := range item.Stats {
		fmt.Fprintf(p.out, "  %-12s %3d\n", pokemon.StatLabel(s.Name), s.Value)
	}
}

func (p *printer) HideOverlay() {}

func (p *printer) line(item pokemon.Pokemon) {
	if !p.json {
		fmt.Fprintln(p.out, pokemon.Summary(item))
		return
	}
	data, err := json.Marshal(item)
	if err != nil {
		fmt.Fprintf(p.errOut, "encode %s: %v\n", item.Name, err)
		return
	}
	fmt.Fprintln(p.out, string(data))
}
