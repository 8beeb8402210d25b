package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/contrastviz/internal/render"
	"github.com/san-kum/contrastviz/internal/schedule"
	"github.com/san-kum/contrastviz/internal/space"
)

var ErrNoFrames = errors.New("no frames to preview")

const (
	defaultWidth  = 60
	defaultHeight = 22
	defaultFPS    = 12
)

type TickMsg time.Time

type Options struct {
	Title string
	FPS   int
	Loop  bool
	Theme string
	// Canvas size in terminal cells.
	Width, Height int
}

type keyMap struct {
	Play     key.Binding
	Prev     key.Binding
	Next     key.Binding
	First    key.Binding
	Last     key.Binding
	Reset    key.Binding
	Loop     key.Binding
	Theme    key.Binding
	Help     key.Binding
	RotX     key.Binding
	RotXBack key.Binding
	RotY     key.Binding
	RotYBack key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	b := func(keys []string, k, help string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(k, help))
	}
	return keyMap{
		Play:     b([]string{" ", "space"}, "space", "play/pause"),
		Prev:     b([]string{"left", "h"}, "←", "previous frame"),
		Next:     b([]string{"right", "l"}, "→", "next frame"),
		First:    b([]string{"home", "g"}, "g", "first frame"),
		Last:     b([]string{"end", "G"}, "G", "last frame"),
		Reset:    b([]string{"r"}, "r", "reset"),
		Loop:     b([]string{"o"}, "o", "toggle loop"),
		Theme:    b([]string{"t"}, "t", "cycle theme"),
		Help:     b([]string{"?"}, "?", "help"),
		RotX:     b([]string{"x"}, "x/X", "rotate x"),
		RotXBack: b([]string{"X"}, "", ""),
		RotY:     b([]string{"y"}, "y/Y", "rotate y"),
		RotYBack: b([]string{"Y"}, "", ""),
		ZoomIn:   b([]string{"+", "="}, "+/-", "zoom"),
		ZoomOut:  b([]string{"-", "_"}, "", ""),
		Quit:     b([]string{"q", "ctrl+c"}, "q", "quit"),
	}
}

// Model steps through precomputed frames in the terminal.
type Model struct {
	frames   []schedule.Frame
	view     render.View
	dim      int
	index    int
	playing  bool
	loop     bool
	fps      int
	title    string
	canvas   *Canvas
	camera   *Camera
	bar      progress.Model
	keys     keyMap
	theme    Theme
	distance []float64
	showHelp bool
}

// NewModel prepares a paused preview of frames, which must share one
// dimensionality.
func NewModel(frames []schedule.Frame, opts Options) (Model, error) {
	if len(frames) == 0 {
		return Model{}, ErrNoFrames
	}
	if opts.FPS <= 0 {
		opts.FPS = defaultFPS
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.Title == "" {
		opts.Title = "contrastive alignment"
	}

	distance := make([]float64, len(frames))
	for i, f := range frames {
		distance[i] = meanDistance(f)
	}

	return Model{
		frames:   frames,
		view:     render.Fit(frames[0], frames[len(frames)-1]),
		dim:      frames[0].Dim,
		loop:     opts.Loop,
		fps:      opts.FPS,
		title:    opts.Title,
		canvas:   NewCanvas(opts.Width, opts.Height),
		camera:   NewCamera(),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
		keys:     defaultKeys(),
		theme:    GetTheme(opts.Theme),
		distance: distance,
	}, nil
}

func meanDistance(f schedule.Frame) float64 {
	if len(f.Concepts) == 0 {
		return 0
	}
	var sum float64
	for _, c := range f.Concepts {
		sum += f.PairDistance(c.Name)
	}
	return sum / float64(len(f.Concepts))
}

// Index is the frame currently shown.
func (m Model) Index() int { return m.index }

func (m Model) Playing() bool { return m.playing }

func (m Model) Theme() Theme { return m.theme }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		k := m.keys
		switch {
		case key.Matches(msg, k.Quit):
			return m, tea.Quit
		case key.Matches(msg, k.Play):
			if !m.playing && m.index == len(m.frames)-1 {
				m.index = 0
			}
			m.playing = !m.playing
		case key.Matches(msg, k.Prev):
			m.playing = false
			m.index = max(m.index-1, 0)
		case key.Matches(msg, k.Next):
			m.playing = false
			m.index = min(m.index+1, len(m.frames)-1)
		case key.Matches(msg, k.First):
			m.index = 0
		case key.Matches(msg, k.Last):
			m.index = len(m.frames) - 1
		case key.Matches(msg, k.Reset):
			m.index, m.playing = 0, false
			m.camera = NewCamera()
		case key.Matches(msg, k.Loop):
			m.loop = !m.loop
		case key.Matches(msg, k.Theme):
			m.theme = m.theme.Next()
		case key.Matches(msg, k.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, k.RotX):
			m.camera.RotateX(0.1)
		case key.Matches(msg, k.RotXBack):
			m.camera.RotateX(-0.1)
		case key.Matches(msg, k.RotY):
			m.camera.RotateY(0.1)
		case key.Matches(msg, k.RotYBack):
			m.camera.RotateY(-0.1)
		case key.Matches(msg, k.ZoomIn):
			m.camera.ZoomIn()
		case key.Matches(msg, k.ZoomOut):
			m.camera.ZoomOut()
		}
	case TickMsg:
		if m.playing {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance() {
	switch {
	case m.index < len(m.frames)-1:
		m.index++
	case m.loop:
		m.index = 0
	default:
		m.playing = false
	}
}

func (m Model) draw() {
	m.canvas.Clear()
	f := m.frames[m.index]
	if m.dim == 3 {
		m.draw3D(f)
		return
	}
	m.draw2D(f)
}

func (m Model) draw2D(f schedule.Frame) {
	pw, ph := m.canvas.PixelSize()
	pix := func(p space.Vec) (int, int) {
		x := int(math.Round(m.view.Norm(p, 0) * float64(pw-2)))
		y := int(math.Round((1 - m.view.Norm(p, 1)) * float64(ph-2)))
		return x, y
	}
	for _, c := range f.Concepts {
		x1, y1 := pix(f.Image[c.Name])
		x2, y2 := pix(f.Text[c.Name])
		m.canvas.DrawLine(x1, y1, x2, y2, InkLink)
	}
	for _, c := range f.Concepts {
		x, y := pix(f.Image[c.Name])
		m.canvas.Marker(x, y, InkImage)
		x, y = pix(f.Text[c.Name])
		m.canvas.Marker(x, y, InkText)
	}
}

// toScene maps a point into the [-1, 1] cube the camera orbits.
func (m Model) toScene(p space.Vec) Vec3 {
	c := func(i int) float64 { return 2*m.view.Norm(p, i) - 1 }
	return Vec3{X: c(0), Y: c(1), Z: c(2)}
}

func (m Model) draw3D(f schedule.Frame) {
	w := BoxWireframe(1)
	for _, c := range f.Concepts {
		a, b := m.toScene(f.Image[c.Name]), m.toScene(f.Text[c.Name])
		w.AddEdge(a, b, InkLink)
		w.AddPoint(a, InkImage)
		w.AddPoint(b, InkText)
	}
	Render3D(m.canvas, w, m.camera)
}

func (m Model) View() string {
	m.draw()
	f := m.frames[m.index]
	th := m.theme

	canvas := panelStyle.BorderForeground(th.Muted).Render(m.canvas.Render(th.inks()))

	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(th.Title).Render(strings.ToUpper(m.title)))
	s.WriteString("\n\n")

	status := statusPaused.Render("PAUSED")
	if m.playing {
		status = statusPlaying.Render("PLAYING")
	}
	if m.loop {
		status += " " + labelStyle.UnsetWidth().Render("(loop)")
	}
	s.WriteString(status + "\n\n")

	s.WriteString(m.bar.ViewAs(f.Progress) + "\n")
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d / %d", f.Step, f.Total))
	row("Progress", fmt.Sprintf("%.3f", f.Progress))
	row("Blend", fmt.Sprintf("%.3f", f.Blend))
	row("Mean dist", fmt.Sprintf("%.4f", m.distance[m.index]))
	row("Dimensions", fmt.Sprintf("%dD", m.dim))
	s.WriteString("\n" + Sparkline(m.distance[:m.index+1], 30) + "\n")

	if m.index > 0 {
		chart := asciigraph.Plot(m.distance[:m.index+1], asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("pair distance"))
		s.WriteString("\n" + chart + "\n")
	}

	legend := lipgloss.NewStyle().Foreground(th.Image).Render("● image") + "  " +
		lipgloss.NewStyle().Foreground(th.Text).Render("● text") + "  " +
		lipgloss.NewStyle().Foreground(th.Muted).Render("theme: "+th.Name)
	s.WriteString("\n" + legend + "\n")
	s.WriteString(Separator(36) + "\n")
	s.WriteString(helpStyle.Render(m.helpText()))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, statsStyle.Render(s.String()))
}

func (m Model) helpText() string {
	short := []key.Binding{m.keys.Play, m.keys.Prev, m.keys.Next, m.keys.Reset, m.keys.Theme, m.keys.Help, m.keys.Quit}
	if m.showHelp {
		short = append(short, m.keys.First, m.keys.Last, m.keys.Loop)
		if m.dim == 3 {
			short = append(short, m.keys.RotX, m.keys.RotY, m.keys.ZoomIn)
		}
	}
	parts := make([]string, 0, len(short))
	for _, b := range short {
		h := b.Help()
		parts = append(parts, h.Key+":"+h.Desc)
	}
	if m.showHelp {
		return strings.Join(parts, "\n")
	}
	return strings.Join(parts, "  ")
}

// Run opens the preview in the alternate screen and blocks until the user
// quits.
func Run(frames []schedule.Frame, opts Options) error {
	m, err := NewModel(frames, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
