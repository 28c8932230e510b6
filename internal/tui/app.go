// Package tui is the interactive roster checklist and ranking view.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	service "github.com/okian/expertcalc/internal/app"
	"github.com/okian/expertcalc/internal/domain/types"
)

type pane int

const (
	paneRoster pane = iota
	paneRanking
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	chromeHeight  = 6
)

// App is the bubbletea model. Every toggle recomputes the ranking
// synchronously before the next frame.
type App struct {
	ctx     context.Context
	session *service.Session
	roster  []string

	cursor int
	offset int
	focus  pane
	recs   []types.Recommendation
	err    error

	keys     keyMap
	help     help.Model
	ranking  viewport.Model
	width    int
	height   int
	quitting bool
}

// New builds the model and computes the initial ranking.
func New(ctx context.Context, svc *service.Service) *App {
	a := &App{
		ctx:     ctx,
		session: service.NewSession(svc),
		roster:  svc.Roster(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		ranking: viewport.New(defaultWidth/2, defaultHeight-chromeHeight),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	a.recs, a.err = a.session.Recommendations(ctx)
	a.refresh()
	return a
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, svc *service.Service) error {
	_, err := tea.NewProgram(New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.quitting = true
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			a.refresh()
			return a, nil
		case key.Matches(msg, a.keys.SwitchUp):
			if a.focus == paneRoster {
				a.focus = paneRanking
			} else {
				a.focus = paneRoster
			}
			return a, nil
		case key.Matches(msg, a.keys.Reset):
			a.recs, a.err = a.session.Reset(a.ctx)
			a.refresh()
			return a, nil
		}

		if a.focus == paneRanking {
			var cmd tea.Cmd
			a.ranking, cmd = a.ranking.Update(msg)
			return a, cmd
		}

		switch {
		case key.Matches(msg, a.keys.Up):
			a.move(-1)
		case key.Matches(msg, a.keys.Down):
			a.move(1)
		case key.Matches(msg, a.keys.PageUp):
			a.move(-a.listHeight())
		case key.Matches(msg, a.keys.PageDown):
			a.move(a.listHeight())
		case key.Matches(msg, a.keys.Toggle):
			a.toggle()
		}
		return a, nil
	}
	return a, nil
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	leftWidth := max(24, a.width/3)
	rightWidth := max(30, a.width-leftWidth-4)

	rosterBox := panelStyle
	rankBox := panelStyle
	if a.focus == paneRoster {
		rosterBox = focusedPanelStyle
	} else {
		rankBox = focusedPanelStyle
	}

	header := titleStyle.Render("Expert Calculator")
	left := rosterBox.Width(leftWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Experts you own"),
		a.renderRoster(),
	))
	right := rankBox.Width(rightWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("I recommend..."),
		a.ranking.View(),
	))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	footer := a.help.View(a.keys)
	if a.err != nil {
		footer = errorStyle.Render(a.err.Error()) + "\n" + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (a *App) move(delta int) {
	if len(a.roster) == 0 {
		return
	}
	a.cursor = min(max(a.cursor+delta, 0), len(a.roster)-1)
	h := a.listHeight()
	switch {
	case a.cursor < a.offset:
		a.offset = a.cursor
	case a.cursor >= a.offset+h:
		a.offset = a.cursor - h + 1
	}
}

func (a *App) toggle() {
	if len(a.roster) == 0 {
		return
	}
	a.recs, a.err = a.session.Toggle(a.ctx, a.roster[a.cursor])
	a.refresh()
}

func (a *App) listHeight() int {
	return max(1, a.height-chromeHeight-1)
}

// refresh resizes the ranking viewport and re-renders its content.
func (a *App) refresh() {
	leftWidth := max(24, a.width/3)
	a.ranking.Width = max(30, a.width-leftWidth-6)
	a.ranking.Height = max(3, a.height-chromeHeight)
	a.ranking.SetContent(renderRanking(a.recs, a.ranking.Width))
}

func (a *App) renderRoster() string {
	h := a.listHeight()
	end := min(len(a.roster), a.offset+h)
	lines := make([]string, 0, h)
	for i := a.offset; i < end; i++ {
		id := a.roster[i]
		box := "[ ]"
		if a.session.Has(a.ctx, id) {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, id)
		if i == a.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	if len(a.roster) > h {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("%d/%d", a.cursor+1, len(a.roster))))
	}
	return strings.Join(lines, "\n")
}

// renderRanking lays out every recommendation as a text block.
func renderRanking(recs []types.Recommendation, width int) string {
	if len(recs) == 0 {
		return dimStyle.Render("No experts in the dataset.")
	}

	blocks := make([]string, 0, len(recs))
	for _, r := range recs {
		var b strings.Builder

		title := fmt.Sprintf("%d. %s", r.Position, r.Expert.ID)
		if r.Medal != nil {
			medal := lipgloss.NewStyle().Bold(true).Foreground(medalColors[r.Medal.Color]).Render(r.Medal.Label + " ♕")
			title += " " + medal
		}
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(r.Expert.Acquisition))
		b.WriteString("\n")
		if len(r.Expert.Genres) > 0 {
			b.WriteString(strings.Join(r.Expert.Genres, types.RequirementSep))
			b.WriteString("\n")
		}
		if len(r.Expert.Traits) > 0 {
			chips := make([]string, len(r.Expert.Traits))
			for i, t := range r.Expert.Traits {
				chips[i] = traitChip(t)
			}
			b.WriteString(strings.Join(chips, " "))
			b.WriteString("\n")
		}

		if r.Note != "" {
			b.WriteString(noteStyle.Render(r.Note))
		} else {
			b.WriteString(renderGains("Satisfies normal stages:", r.NormalGain))
			b.WriteString(renderGains("Satisfies elite stages:", r.EliteGain))
		}
		blocks = append(blocks, lipgloss.NewStyle().Width(width).Render(strings.TrimRight(b.String(), "\n")))
	}
	return strings.Join(blocks, "\n"+dimStyle.Render(strings.Repeat("─", max(1, width)))+"\n")
}

func renderGains(label string, gains []types.StageGain) string {
	if len(gains) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(noteStyle.Render(label))
	b.WriteString("\n")
	for _, g := range gains {
		reqs := make([]string, len(g.Requirements))
		for i, r := range g.Requirements {
			reqs[i] = r.Text
		}
		b.WriteString(stageStyle.Render(fmt.Sprintf("%s (%s)", g.ID, g.Status)))
		b.WriteString(" ")
		b.WriteString(strings.Join(reqs, ", "))
		b.WriteString("\n")
	}
	return b.String()
}

func traitChip(t types.TraitView) string {
	style := lipgloss.NewStyle().Padding(0, 1)
	if t.Color != "" {
		style = style.Background(lipgloss.Color(t.Color)).Foreground(lipgloss.Color("#000000"))
	}
	return style.Render(t.Label)
}
