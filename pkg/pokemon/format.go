package pokemon

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StatCeiling is the base value that fills a stat bar completely.
const StatCeiling = 200

var statLabels = map[string]string{
	"hp":              "HP",
	"attack":          "Attack",
	"defense":         "Defense",
	"special-attack":  "Sp. Attack",
	"special-defense": "Sp. Defense",
	"speed":           "Speed",
}

// Number formats an id as "#001".
func Number(id int) string {
	return fmt.Sprintf("#%03d", id)
}

// Weight converts hectograms to a kilogram label, e.g. 69 -> "6.9 kg".
func Weight(hectograms int) string {
	return fmt.Sprintf("%.1f kg", float64(hectograms)/10)
}

// Height converts decimetres to a metre label, e.g. 7 -> "0.7 m".
func Height(decimetres int) string {
	return fmt.Sprintf("%.1f m", float64(decimetres)/10)
}

// AbilityLabel replaces the API's separators with spaces.
func AbilityLabel(name string) string {
	return strings.NewReplacer("-", " ", "_", " ").Replace(name)
}

// StatLabel returns the short display name of a stat.
func StatLabel(name string) string {
	if label, ok := statLabels[name]; ok {
		return label
	}
	return name
}

// StatFill is the bar fill proportion for a base stat, capped at 1.
func StatFill(value int) float64 {
	if value <= 0 {
		return 0
	}
	return min(float64(value)/StatCeiling, 1)
}

// DisplayName title-cases an API name for display.
func DisplayName(name string) string {
	return cases.Title(language.English).String(name)
}

// Summary is a one-line plain text description of an entry.
func Summary(p Pokemon) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s [%s] %s, %s", Number(p.ID), DisplayName(p.Name),
		strings.Join(p.Types, "/"), Weight(p.Weight), Height(p.Height))
	for _, s := range p.Stats {
		fmt.Fprintf(&b, " %s:%d", StatLabel(s.Name), s.Value)
	}
	return b.String()
}
