// Package tui renders the portfolio as a bubbletea program for SSH sessions.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/theme"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	minBodyWidth  = 20
	headerHeight  = 3
	footerHeight  = 2
)

// Options carries session metadata into the model.
type Options struct {
	Width  int
	Height int
	// Context bounds preference writes made by the theme toggle.
	Context context.Context
	// Now stamps the footer year.
	Now func() time.Time
}

// Model is the portfolio view of one SSH session. Styles come from the
// session's StyleRoot; only the theme key talks to the controller.
type Model struct {
	profile    content.Profile
	controller *theme.Controller
	root       *theme.StyleRoot
	ctx        context.Context

	keys     KeyMap
	help     help.Model
	viewport viewport.Model

	sections   []string
	collapsed  []bool
	focus      int
	focusLines []int
	showResume bool

	width  int
	height int
	year   int
}

// New builds the model. The controller must already be initialized so the
// first frame uses the persisted palette.
func New(profile content.Profile, controller *theme.Controller, root *theme.StyleRoot, opts Options) Model {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if root == nil {
		root = theme.NewStyleRoot(nil, theme.ResolveOptions{})
	}
	if controller == nil {
		controller = theme.NewController(nil, root)
		controller.Initialize(opts.Context)
	}

	sections := content.Sections()
	m := Model{
		profile:    profile,
		controller: controller,
		root:       root,
		ctx:        opts.Context,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		sections:   sections,
		collapsed:  make([]bool, len(sections)),
		year:       opts.Now().Year(),
	}
	m.resize(opts.Width, opts.Height)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Mode reports the active theme mode.
func (m Model) Mode() theme.Mode { return m.controller.Mode() }

// Focus returns the index of the focused section.
func (m Model) Focus() int { return m.focus }

// Collapsed reports whether section i is collapsed.
func (m Model) Collapsed(i int) bool {
	return i >= 0 && i < len(m.collapsed) && m.collapsed[i]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
	case key.Matches(msg, m.keys.Up):
		if m.focus > 0 {
			m.focus--
		}
		m.refresh()
	case key.Matches(msg, m.keys.Down):
		if m.focus < len(m.sections)-1 {
			m.focus++
		}
		m.refresh()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
	case key.Matches(msg, m.keys.Collapse):
		m.collapsed[m.focus] = !m.collapsed[m.focus]
		m.refresh()
	case key.Matches(msg, m.keys.Theme):
		m.controller.Toggle(m.ctx)
		m.refresh()
	case key.Matches(msg, m.keys.Resume):
		m.showResume = !m.showResume
		m.resize(m.width, m.height)
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	m.width = width
	m.height = height
	m.help.Width = width

	vh := height - headerHeight - m.footerLines()
	if vh < 1 {
		vh = 1
	}
	offset := m.viewport.YOffset
	m.viewport = viewport.New(width, vh)
	m.viewport.MouseWheelEnabled = true
	m.refresh()
	m.viewport.SetYOffset(offset)
	m.keepFocusVisible()
}

// refresh re-renders the scrollable body with the current styles.
func (m *Model) refresh() {
	body, lines := m.renderBody()
	m.focusLines = lines
	m.viewport.SetContent(body)
	m.keepFocusVisible()
}

func (m *Model) keepFocusVisible() {
	if m.focus >= len(m.focusLines) {
		return
	}
	line := m.focusLines[m.focus]
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

func (m Model) footerLines() int {
	n := footerHeight
	if m.help.ShowAll {
		n += len(m.keys.FullHelp()[0]) - 1
	}
	if m.showResume {
		n++
	}
	return n
}

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderFooter(),
	)
}

func (m Model) bodyWidth() int {
	w := m.width - 4
	if w < minBodyWidth {
		w = minBodyWidth
	}
	return w
}

func (m Model) renderHeader() string {
	st := m.root.Styles()
	mode := m.controller.Mode()
	toggle := st.Toggle.Render(fmt.Sprintf("%s t: %s", theme.Icon(mode), theme.ToggleLabel(mode)))
	name := st.Heading.Render(m.profile.Name)

	gap := m.width - lipgloss.Width(name) - lipgloss.Width(toggle)
	if gap < 1 {
		gap = 1
	}
	top := name + strings.Repeat(" ", gap) + toggle
	tagline := st.Tagline.Render(m.profile.Tagline)
	rule := st.Muted.Render(strings.Repeat("─", max(m.width, 1)))
	return strings.Join([]string{top, tagline, rule}, "\n")
}

// renderBody returns the scrollable content and the line of each section
// header within it.
func (m Model) renderBody() (string, []int) {
	st := m.root.Styles()
	width := m.bodyWidth()
	text := st.Body.Width(width)

	var (
		out   []string
		lines = make([]int, len(m.sections))
	)
	for i, title := range m.sections {
		lines[i] = len(out)

		marker := "▾"
		if m.collapsed[i] {
			marker = "▸"
		}
		heading := st.Section.Render(marker + " " + title)
		if i == m.focus {
			heading = st.SectionFocus.Render(marker + " " + title)
		}
		out = append(out, heading)

		if !m.collapsed[i] {
			block := m.renderSection(title, text, width)
			out = append(out, strings.Split(block, "\n")...)
		}
		out = append(out, "")
	}

	if len(m.profile.Contacts) > 0 {
		contacts := make([]string, 0, len(m.profile.Contacts))
		for _, c := range m.profile.Contacts {
			contacts = append(contacts, st.Muted.Render(c.Label+":")+" "+st.Link.Render(c.URL))
		}
		out = append(out, contacts...)
	}

	return strings.Join(out, "\n"), lines
}

func (m Model) renderSection(title string, text lipgloss.Style, width int) string {
	st := m.root.Styles()
	p := m.profile

	switch title {
	case content.SectionAbout:
		return text.Render(p.About)
	case content.SectionExperience:
		var jobs []string
		for _, job := range p.Experience {
			head := st.Heading.Render(job.Company)
			if job.Role != "" {
				head += st.Muted.Render(" · " + job.Role)
			}
			parts := []string{head}
			if job.Period != "" {
				parts = append(parts, st.Muted.Render(job.Period))
			}
			if job.Summary != "" {
				parts = append(parts, text.Render(job.Summary))
			}
			jobs = append(jobs, strings.Join(parts, "\n"))
		}
		return strings.Join(jobs, "\n\n")
	case content.SectionProjects:
		var projects []string
		for _, project := range p.Projects {
			parts := []string{st.Heading.Render(project.Name)}
			if project.Description != "" {
				parts = append(parts, text.Render(project.Description))
			}
			if project.URL != "" {
				parts = append(parts, st.Link.Render(project.URL))
			}
			projects = append(projects, strings.Join(parts, "\n"))
		}
		return strings.Join(projects, "\n\n")
	case content.SectionSkills:
		return wrapBadges(p.Skills, st.Badge, width)
	}
	return ""
}

// wrapBadges lays badges out in rows no wider than width.
func wrapBadges(skills []string, badge lipgloss.Style, width int) string {
	var (
		rows []string
		row  []string
		used int
	)
	for _, skill := range skills {
		b := badge.Render(skill)
		w := lipgloss.Width(b)
		if used > 0 && used+1+w > width {
			rows = append(rows, strings.Join(row, " "))
			row, used = nil, 0
		}
		if used > 0 {
			used++
		}
		row = append(row, b)
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderFooter() string {
	st := m.root.Styles()
	var lines []string
	if m.showResume {
		lines = append(lines, m.resumeHint())
	}
	lines = append(lines, st.Footer.Render(m.profile.Copyright(m.year)))
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m Model) resumeHint() string {
	st := m.root.Styles()
	r := m.profile.Resume
	if !r.Available() || m.profile.Domain == "" {
		return st.Muted.Render("Résumé available on request.")
	}
	return st.Muted.Render("Résumé: ") + st.Link.Render("https://"+m.profile.Domain+"/resume")
}
