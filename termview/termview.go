// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package termview shows a city map in the terminal. The map is drawn with
// braille dots; a cursor picks the start and destination nodes.

package termview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/2dChan/citymap"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/r2"
)

const (
	// Status line and key help.
	footerRows = 2

	minCols = 10
	minRows = 3

	// Viewport margin in dots.
	margin = 2

	tolerance = 0.01
)

var errTooSmall = errors.New("window too small")

type role uint8

const (
	rolePlain role = iota
	roleLabel
	roleStart
	roleDest
	roleCursor
)

var (
	styles = [...]lipgloss.Style{
		rolePlain:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		roleLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#7FB2FF")),
		roleStart:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true),
		roleDest:   lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true),
		roleCursor: lipgloss.NewStyle().Reverse(true),
	}

	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E6E6E6"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Start  key.Binding
	Dest   key.Binding
	Labels key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Dest, k.Labels, k.Clear, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Left, k.Right}, k.ShortHelp()}
}

var defaultKeys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "set start")),
	Dest:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "set dest")),
	Labels: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "names")),
	Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type Options struct {
	Start string
	Dest  string
	Path  []string
}

type Option func(*Options) error

// WithStart preselects the start node.
func WithStart(city string) Option {
	return func(o *Options) error {
		o.Start = city
		return nil
	}
}

// WithDest preselects the destination node.
func WithDest(city string) Option {
	return func(o *Options) error {
		o.Dest = city
		return nil
	}
}

// WithPath draws a route with an arrow on every step.
func WithPath(path []string) Option {
	return func(o *Options) error {
		o.Path = path
		return nil
	}
}

// Model is the bubbletea model of the map view.
type Model struct {
	m    *citymap.Map
	path []string
	keys keyMap
	help help.Model

	width, height int
	cols, rows    int

	// Device positions in dots, rebuilt on every resize.
	pos    map[string]r2.Point
	index  *rtreego.Rtree
	arrows []citymap.Arrow

	cursor     r2.Point
	start      string
	dest       string
	showLabels bool
	status     string
	err        error
}

// New returns a Model showing m.
func New(m *citymap.Map, setters ...Option) (Model, error) {
	if m == nil {
		return Model{}, errors.New("termview: nil map")
	}
	var opts Options
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return Model{}, err
		}
	}
	for _, city := range []string{opts.Start, opts.Dest} {
		if _, ok := m.Locations[city]; city != "" && !ok {
			return Model{}, fmt.Errorf("termview: node %q not in map %q", city, m.Name)
		}
	}
	if err := m.ValidatePath(opts.Path); err != nil {
		return Model{}, fmt.Errorf("termview: %w", err)
	}

	return Model{
		m:          m,
		path:       opts.Path,
		keys:       defaultKeys,
		help:       help.New(),
		start:      opts.Start,
		dest:       opts.Dest,
		showLabels: true,
		status:     fmt.Sprintf("%d nodes, %d edges", m.NumNodes(), len(m.Edges())),
	}, nil
}

// Run shows m until the user quits.
func Run(m *citymap.Map, setters ...Option) error {
	model, err := New(m, setters...)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(0, -dotsY)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(0, dotsY)
		case key.Matches(msg, m.keys.Left):
			m.moveCursor(-dotsX, 0)
		case key.Matches(msg, m.keys.Right):
			m.moveCursor(dotsX, 0)
		case key.Matches(msg, m.keys.Start):
			if city, ok := m.nearest(); ok {
				m.start = city
				m.status = "start: " + city
			}
		case key.Matches(msg, m.keys.Dest):
			if city, ok := m.nearest(); ok {
				m.dest = city
				m.status = "dest: " + city
			}
		case key.Matches(msg, m.keys.Labels):
			m.showLabels = !m.showLabels
			m.status = fmt.Sprintf("names: %v", m.showLabels)
		case key.Matches(msg, m.keys.Clear):
			m.start, m.dest = "", ""
			m.status = "cleared"
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
	} else {
		for _, line := range m.renderMap() {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteString(titleStyle.Render(m.m.Name) + " " + statusStyle.Render(m.status))
	}
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// layout fits the map into the current window and rebuilds the node index.
func (m *Model) layout() {
	m.cols, m.rows = m.width, m.height-footerRows
	if m.cols < minCols || m.rows < minRows {
		m.err = errTooSmall
		return
	}

	vp := citymap.Viewport{
		Width:  float64(m.cols * dotsX),
		Height: float64(m.rows * dotsY),
		Margin: margin,
	}
	t, err := m.m.Transform(vp)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil

	m.pos = make(map[string]r2.Point, m.m.NumNodes())
	m.index = rtreego.NewTree(2, 2, 5)
	for city, p := range m.m.Locations {
		d := t.Apply(p)
		m.pos[city] = d
		m.index.Insert(&nodeItem{city: city, rect: rtreego.Point{d.X, d.Y}.ToRect(tolerance)})
	}
	// The path was validated in New, so every node has a position.
	m.arrows, _ = citymap.PathArrows(m.path, m.pos, m.m.Profile)

	w, h := vp.Width, vp.Height
	if m.cursor.X <= 0 || m.cursor.Y <= 0 || m.cursor.X >= w || m.cursor.Y >= h {
		m.cursor = r2.Point{X: w / 2, Y: h / 2}
	}
}

func (m *Model) moveCursor(dx, dy float64) {
	if m.err != nil {
		return
	}
	w, h := float64(m.cols*dotsX), float64(m.rows*dotsY)
	m.cursor.X = min(max(m.cursor.X+dx, 0), w-1)
	m.cursor.Y = min(max(m.cursor.Y+dy, 0), h-1)
}

// nearest returns the node closest to the cursor.
func (m *Model) nearest() (string, bool) {
	if m.err != nil || m.index == nil || m.index.Size() == 0 {
		return "", false
	}
	s := m.index.NearestNeighbor(rtreego.Point{m.cursor.X, m.cursor.Y})
	item, ok := s.(*nodeItem)
	if !ok {
		return "", false
	}
	return item.city, true
}

// directionArrow points from the start node to the destination node.
func (m *Model) directionArrow() (citymap.Arrow, bool) {
	if m.start == "" || m.dest == "" || m.start == m.dest {
		return citymap.Arrow{}, false
	}
	from, to := m.pos[m.start], m.pos[m.dest]
	return citymap.BuildArrow(to.Sub(from), to, m.m.Profile), true
}

func (m *Model) renderMap() []string {
	c := NewCanvas(m.cols, m.rows)
	for _, e := range m.m.Edges() {
		c.LineP(m.pos[e.A], m.pos[e.B])
	}
	for i := 1; i < len(m.path); i++ {
		c.LineP(m.pos[m.path[i-1]], m.pos[m.path[i]])
	}
	for _, a := range m.arrows {
		c.Polygon(a.Vertices())
	}
	if a, ok := m.directionArrow(); ok {
		c.Polygon(a.Vertices())
	}
	nodes := m.m.Nodes()
	for _, city := range nodes {
		c.Dot(m.pos[city], 1)
	}

	runes := c.Runes()
	roles := make([][]role, m.rows)
	for i := range roles {
		roles[i] = make([]role, m.cols)
	}
	put := func(x, y int, r rune, ro role) {
		if x >= 0 && y >= 0 && x < m.cols && y < m.rows {
			if r != 0 {
				runes[y][x] = r
			}
			roles[y][x] = ro
		}
	}

	if m.showLabels {
		for _, city := range nodes {
			x, y := cell(m.pos[city])
			for i, r := range []rune(city) {
				put(x+1+i, y, r, roleLabel)
			}
		}
	}
	if m.start != "" {
		x, y := cell(m.pos[m.start])
		put(x, y, 0, roleStart)
	}
	if m.dest != "" {
		x, y := cell(m.pos[m.dest])
		put(x, y, 0, roleDest)
	}
	x, y := cell(m.cursor)
	put(x, y, 0, roleCursor)

	lines := make([]string, m.rows)
	for i := range lines {
		lines[i] = styleRow(runes[i], roles[i])
	}
	return lines
}

// styleRow renders runs of equal role with their style.
func styleRow(runes []rune, roles []role) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i == len(runes) || roles[i] != roles[start] {
			b.WriteString(styles[roles[start]].Render(string(runes[start:i])))
			start = i
		}
	}
	return b.String()
}

type nodeItem struct {
	city string
	rect *rtreego.Rect
}

func (n *nodeItem) Bounds() *rtreego.Rect {
	return n.rect
}
