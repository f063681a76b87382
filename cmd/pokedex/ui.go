package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/pokedex/internal/config"
	"github.com/jwebster45206/pokedex/internal/services"
	"github.com/jwebster45206/pokedex/pkg/dex"
	"github.com/jwebster45206/pokedex/pkg/pokemon"
)

const (
	headerLines = 2
	footerLines = 2
)

// PokedexUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type PokedexUI struct {
	ctx    context.Context
	ctrl   *dex.Controller
	screen *screen
	logger *slog.Logger
	copy   func(string) error

	viewport viewport.Model
	spinner  spinner.Model
	search   textinput.Model

	ready    bool
	width    int
	height   int
	selected int
	status   string

	// Type picker state
	showTypeModal bool
	typeCursor    int

	// Jump-to search state
	showSearch bool
}

type typesLoadedMsg struct {
	types []pokemon.Type
	err   error
}

type pageLoadedMsg struct {
	result dex.PageResult
}

func NewPokedexUI(ctx context.Context, cfg *config.Config, fetcher services.Fetcher, log *slog.Logger) PokedexUI {
	scr := &screen{}
	ctrl := dex.NewController(fetcher, scr, log, dex.Options{
		Limit:           cfg.PageLimit,
		MaxOffset:       cfg.MaxOffset,
		ScrollThreshold: cfg.ScrollThreshold,
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	ti := textinput.New()
	ti.Placeholder = "number or name"
	ti.Prompt = promptStyle.Render("jump to: ")
	ti.CharLimit = 40

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	return PokedexUI{
		ctx:      ctx,
		ctrl:     ctrl,
		screen:   scr,
		logger:   log,
		copy:     clipboard.WriteAll,
		viewport: vp,
		spinner:  sp,
		search:   ti,
	}
}

func (m PokedexUI) Init() tea.Cmd {
	return tea.Batch(m.loadTypes(), m.startLoad(), m.spinner.Tick)
}

func (m PokedexUI) loadTypes() tea.Cmd {
	return func() tea.Msg {
		types, err := m.ctrl.FetchCategories(m.ctx)
		return typesLoadedMsg{types, err}
	}
}

// startLoad claims the next page and fetches it off the update loop.
func (m PokedexUI) startLoad() tea.Cmd {
	req, ok := m.ctrl.BeginLoad()
	if !ok {
		return nil
	}
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return pageLoadedMsg{ctrl.Fetch(ctx, req)}
	}
}

// maybeLoad starts a load when the viewport is close enough to the bottom.
func (m PokedexUI) maybeLoad() tea.Cmd {
	if !m.ready {
		return nil
	}
	below := max(0, m.viewport.TotalLineCount()-m.viewport.YOffset-m.viewport.Height)
	if !m.ctrl.NearBottom(below * rowUnits) {
		return nil
	}
	return m.startLoad()
}

func (m PokedexUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-headerLines-footerLines)
		m.ready = true
		m.refresh()
		return m, m.maybeLoad()

	case typesLoadedMsg:
		m.ctrl.ApplyCategories(msg.types, msg.err)
		return m, nil

	case pageLoadedMsg:
		err := m.ctrl.Apply(msg.result)
		m.refresh()
		if err != nil {
			return m, nil
		}
		return m, m.maybeLoad()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch {
		case m.screen.alert != nil:
			return m.updateAlert(msg)
		case m.showSearch:
			return m.updateSearch(msg)
		case m.showTypeModal:
			return m.updateTypeModal(msg)
		case m.screen.overlayOpen:
			return m.updateOverlay(msg)
		default:
			return m.updateGrid(msg)
		}
	}

	return m, nil
}

func (m PokedexUI) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := gridColumns(m.width)
	count := len(m.screen.cards)
	m.status = ""

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Left):
		m.moveSelection(-1, count)
	case key.Matches(msg, keys.Right):
		m.moveSelection(1, count)
	case key.Matches(msg, keys.Up):
		m.moveSelection(-cols, count)
	case key.Matches(msg, keys.Down):
		m.moveSelection(cols, count)
	case key.Matches(msg, keys.PageDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
	case key.Matches(msg, keys.PageUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
	case key.Matches(msg, keys.Open):
		if count > 0 {
			m.ctrl.Open(m.screen.cards[m.selected])
		}
		return m, nil
	case key.Matches(msg, keys.Filter):
		m.showTypeModal = true
		m.typeCursor = 0
		for i, name := range m.typeOptions() {
			if name == m.ctrl.Store().Selected() {
				m.typeCursor = i
			}
		}
		return m, nil
	case key.Matches(msg, keys.Reset):
		m.ctrl.Clear()
		m.selected = 0
		m.refresh()
		m.viewport.GotoTop()
		return m, m.startLoad()
	case key.Matches(msg, keys.Search):
		m.showSearch = true
		m.search.Reset()
		cmd := m.search.Focus()
		return m, cmd
	}

	m.refresh()
	return m, m.maybeLoad()
}

func (m *PokedexUI) moveSelection(delta, count int) {
	if count == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), count-1)
	m.ensureVisible()
}

// ensureVisible scrolls so the selected card's row is fully on screen.
func (m *PokedexUI) ensureVisible() {
	cols := gridColumns(m.width)
	top := (m.selected / cols) * cellHeight
	bottom := top + cellHeight
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

func (m PokedexUI) updateOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Open):
		m.ctrl.Flip()
	case key.Matches(msg, keys.Close), key.Matches(msg, keys.Quit):
		m.ctrl.CloseOverlay()
	case key.Matches(msg, keys.Copy):
		summary := pokemon.Summary(m.screen.overlayItem)
		if err := m.copy(summary); err != nil {
			m.logger.Warn("Clipboard unavailable", "error", err)
			m.status = errorStyle.Render("Clipboard unavailable")
		} else {
			m.status = "Copied " + pokemon.DisplayName(m.screen.overlayItem.Name)
		}
	}
	return m, nil
}

func (m PokedexUI) updateAlert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter, tea.KeyEsc, tea.KeySpace:
		m.screen.alert = nil
	}
	return m, nil
}

func (m PokedexUI) typeOptions() []string {
	types := m.ctrl.Store().Types()
	opts := make([]string, 0, len(types)+1)
	opts = append(opts, pokemon.TypeAll)
	for _, t := range types {
		opts = append(opts, t.Name)
	}
	return opts
}

func (m PokedexUI) updateTypeModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	opts := m.typeOptions()

	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.showTypeModal = false
	case tea.KeyUp:
		if m.typeCursor > 0 {
			m.typeCursor--
		}
	case tea.KeyDown:
		if m.typeCursor < len(opts)-1 {
			m.typeCursor++
		}
	case tea.KeyEnter:
		m.showTypeModal = false
		m.ctrl.SetCategory(opts[m.typeCursor])
		m.selected = 0
		m.refresh()
		m.viewport.GotoTop()
		return m, m.maybeLoad()
	}
	return m, nil
}

func (m PokedexUI) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.showSearch = false
		m.search.Blur()
		return m, nil
	case tea.KeyEnter:
		m.showSearch = false
		m.search.Blur()
		query := m.search.Value()
		if !m.ctrl.OpenByKey(query) {
			m.status = fmt.Sprintf("No loaded Pokémon matches %q", strings.TrimSpace(query))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m PokedexUI) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.screen.alert != nil || m.showTypeModal || m.showSearch {
		return m, nil
	}

	click := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft

	if m.screen.overlayOpen {
		if !click {
			return m, nil
		}
		if m.inDetailCard(msg.X, msg.Y) {
			m.ctrl.Flip()
		} else {
			m.ctrl.CloseOverlay()
		}
		return m, nil
	}

	if click {
		line := msg.Y - headerLines + m.viewport.YOffset
		if msg.Y >= headerLines {
			idx := cardAt(msg.X, line, gridColumns(m.width), len(m.screen.cards))
			if idx >= 0 {
				m.selected = idx
				m.refresh()
				m.ctrl.Open(m.screen.cards[idx])
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, tea.Batch(cmd, m.maybeLoad())
}

// inDetailCard reports whether a screen position falls on the centred
// overlay card rather than its background.
func (m PokedexUI) inDetailCard(x, y int) bool {
	card := renderDetail(m.screen.overlayItem, m.screen.flipped)
	w, h := lipgloss.Width(card), lipgloss.Height(card)
	left := (m.width - w) / 2
	top := (m.height - h) / 2
	return x >= left && x < left+w && y >= top && y < top+h
}

// refresh re-lays out the grid into the viewport.
func (m *PokedexUI) refresh() {
	count := len(m.screen.cards)
	if m.selected >= count {
		m.selected = max(0, count-1)
	}

	var content strings.Builder
	switch {
	case count > 0:
		content.WriteString(renderGrid(m.screen.cards, gridColumns(m.width), m.selected))
	case m.ctrl.Store().Filtering():
		content.WriteString(promptStyle.Render("No loaded Pokémon of this type."))
	}
	if m.screen.ended {
		content.WriteString("\n\n")
		content.WriteString(titleStyle.Render("You've reached the end of the Pokédex!"))
	}

	m.viewport.SetContent(content.String())
	m.screen.dirty = false
}

func (m PokedexUI) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	switch {
	case m.screen.alert != nil:
		return m.renderAlert()
	case m.showTypeModal:
		return m.renderTypeModal()
	case m.screen.overlayOpen:
		card := renderDetail(m.screen.overlayItem, m.screen.flipped)
		if m.status != "" {
			card = lipgloss.JoinVertical(lipgloss.Center, card, m.status)
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card, lipgloss.WithWhitespaceChars(" "))
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.viewport.View(), m.renderFooter())
}

func (m PokedexUI) renderHeader() string {
	filter := pokemon.DisplayName(m.ctrl.Store().Selected())
	line := titleStyle.Render("POKÉDEX") + "  " +
		promptStyle.Render("type: ") + filter + "  " +
		promptStyle.Render(countLabel(len(m.screen.cards)))
	return line + "\n"
}

func (m PokedexUI) renderFooter() string {
	var status string
	switch {
	case m.showSearch:
		status = m.search.View()
	case m.screen.loading:
		status = m.spinner.View() + loadingStyle.Render(" Loading Pokémon...")
	default:
		status = m.status
	}
	return status + "\n" + helpLine()
}

func (m PokedexUI) renderAlert() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Error"))
	content.WriteString("\n\n")
	content.WriteString(errorStyle.Render("Could not load Pokémon. Please try again."))
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render(m.screen.alert.Error()))
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Enter to continue"))

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m PokedexUI) renderTypeModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Filter by type"))
	content.WriteString("\n\n")

	for i, name := range m.typeOptions() {
		label := pokemon.DisplayName(name)
		if i == m.typeCursor {
			content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", label)))
		} else {
			content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", label)))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Esc to cancel"))

	modal := modalStyle.Width(40).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}
