package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphclock/pkg/clock"
	"github.com/matzehuels/glyphclock/pkg/feed"
	"github.com/matzehuels/glyphclock/pkg/observability"
	"github.com/matzehuels/glyphclock/pkg/playlist"
	"github.com/matzehuels/glyphclock/pkg/render/sink"
	"github.com/matzehuels/glyphclock/pkg/surface"
	"github.com/matzehuels/glyphclock/pkg/view"
)

// View names in tab order.
const (
	viewClock    = "clock"
	viewPlaylist = "playlist"
	viewVlog     = "vlog"
)

// chromeRows is the number of text rows taken by the tab bar and help line.
const chromeRows = 4

var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Terminal Host
// =============================================================================

// termHost is the clock's host inside the terminal: one logical pixel per
// column and two per text row.
type termHost struct {
	mu      sync.Mutex
	cols    int
	rows    int
	visible bool
}

func (h *termHost) set(cols, rows int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cols, h.rows = cols, rows
}

func (h *termHost) setVisible(v bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.visible = v
}

func (h *termHost) LogicalSize() (float64, float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return float64(h.cols), float64(h.rows * 2)
}

func (h *termHost) PixelRatio() float64 { return 1 }

func (h *termHost) Visible() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visible
}

// fitFrame returns the text area for a frame of the given aspect
// (height/width) inside a width×height terminal, leaving room for chrome.
func fitFrame(width, height int, aspect float64) (int, int) {
	avail := height - chromeRows
	if width <= 0 || avail <= 0 {
		return 0, 0
	}
	cols, rows := sink.TerminalSize(width, 1, aspect)
	return cols, min(rows, avail)
}

// =============================================================================
// Model
// =============================================================================

type frameMsg struct {
	text   string
	digits string
}

type feedMsg feed.Result

// watchModel is the bubbletea model for `glyphclock watch`. The clock runs
// in its own goroutine and delivers frames as frameMsg.
type watchModel struct {
	ctx    context.Context
	host   *termHost
	clock  *clock.Clock
	views  *view.Switcher
	player *playlist.Player
	loader *feed.Loader
	aspect float64

	width, height int
	frame         string
	digits        string
	feed          *feed.Result
	loading       bool
	err           error
}

func (m *watchModel) Init() tea.Cmd { return nil }

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.host.set(fitFrame(msg.Width, msg.Height, m.aspect))
		m.clock.Resized()
	case frameMsg:
		m.frame, m.digits = msg.text, msg.digits
	case feedMsg:
		res := feed.Result(msg)
		m.feed, m.loading = &res, false
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *watchModel) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "tab":
		return m.cycle(1)
	case "shift+tab":
		return m.cycle(-1)
	}

	switch m.views.Active() {
	case viewPlaylist:
		switch key {
		case "n", "right":
			m.player.Next(m.ctx)
		case "p", "left":
			m.player.Prev(m.ctx)
		case " ", "space", "enter":
			m.player.Toggle(m.ctx)
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			if _, err := m.player.Select(m.ctx, int(key[0]-'1')); err != nil {
				m.err = err
			}
		}
	case viewVlog:
		if key == "r" && !m.loading {
			return m.show(viewVlog)
		}
	}
	return nil
}

func (m *watchModel) cycle(step int) tea.Cmd {
	names := m.views.Names()
	i := 0
	for j, n := range names {
		if n == m.views.Active() {
			i = j
		}
	}
	return m.show(names[(i+step+len(names))%len(names)])
}

// show switches views. The vlog view starts a feed load.
func (m *watchModel) show(name string) tea.Cmd {
	m.err = nil
	m.host.setVisible(name == viewClock)
	if err := m.views.Show(m.ctx, name); err != nil {
		m.err = err
		return nil
	}
	if name != viewVlog {
		return nil
	}
	m.loading = true
	loader, ctx := m.loader, m.ctx
	return func() tea.Msg { return feedMsg(loader.LoadSync(ctx)) }
}

func (m *watchModel) View() string {
	var b strings.Builder
	b.WriteString(m.tabs())
	b.WriteString("\n\n")

	switch m.views.Active() {
	case viewClock:
		b.WriteString(m.clockView())
	case viewPlaylist:
		b.WriteString(m.playlistView())
	case viewVlog:
		b.WriteString(m.vlogView())
	}

	if m.err != nil {
		b.WriteString("\n" + StyleError.Render(m.err.Error()))
	}
	b.WriteString("\n" + StyleDim.Render(m.help()))
	return b.String()
}

func (m *watchModel) tabs() string {
	names := m.views.Names()
	parts := make([]string, len(names))
	for i, n := range names {
		if n == m.views.Active() {
			parts[i] = tabActiveStyle.Render(n)
		} else {
			parts[i] = tabInactiveStyle.Render(n)
		}
	}
	return strings.Join(parts, StyleDim.Render("  ·  "))
}

func (m *watchModel) help() string {
	switch m.views.Active() {
	case viewPlaylist:
		return "tab views  n/p next/prev  space play/pause  1-9 track  q quit"
	case viewVlog:
		return "tab views  r reload  q quit"
	default:
		return "tab views  q quit"
	}
}

func (m *watchModel) clockView() string {
	if m.frame == "" {
		return StyleDim.Render("waiting for a frame...")
	}
	return m.frame + "\n" + StyleHighlight.Render(mirrorText(m.digits))
}

func (m *watchModel) playlistView() string {
	st := m.player.State()
	tracks := m.player.Tracks()
	rows := make([][]string, len(tracks))
	for i, t := range tracks {
		marker := " "
		if i == st.Index {
			marker = "▸"
		}
		rows[i] = []string{marker, fmt.Sprint(i + 1), t.Title, t.Artist}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Title", "Artist").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			case row == st.Index:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			default:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
		})

	status := StyleDim.Render("paused")
	if st.Playing {
		status = StyleSuccess.Render("playing")
	}
	return t.Render() + "\n" + fmt.Sprintf("%s  %s  [%s]", StyleValue.Render(st.Title), status, st.Label)
}

func (m *watchModel) vlogView() string {
	switch {
	case m.loading || m.feed == nil:
		return StyleDim.Render("loading " + m.loader.URL() + "...")
	case m.feed.Err != nil:
		return StyleWarning.Render(feed.FallbackMessage)
	case len(m.feed.Entries) == 0:
		return StyleDim.Render("No entries yet.")
	}
	wrap := lipgloss.NewStyle().Width(max(20, m.width-2))
	var b strings.Builder
	for i, e := range m.feed.Entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(StyleTitle.Render(e.Title) + "  " + StyleDim.Render(e.Date) + "\n")
		b.WriteString(wrap.Render(e.Text) + "\n")
	}
	return b.String()
}

// mirrorText formats "HHMMSS" as "HH:MM:SS".
func mirrorText(digits string) string {
	if len(digits) != 6 {
		return digits
	}
	return digits[0:2] + ":" + digits[2:4] + ":" + digits[4:6]
}

// =============================================================================
// Command
// =============================================================================

type watchOpts struct {
	logFile string
}

// watchCommand runs the live terminal clock.
func (c *CLI) watchCommand() *cobra.Command {
	var opts watchOpts

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show a live clock in the terminal",
		Long: `Show a live clock in the terminal, redrawn every second.

Tab switches between the clock, the playlist and the vlog feed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), &opts)
		},
	}
	cmd.Flags().StringVar(&opts.logFile, "log", "", "write logs to this file while the clock is shown")
	return cmd
}

func (c *CLI) runWatch(ctx context.Context, opts *watchOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	popts, err := frameDefaults(cfg)
	if err != nil {
		return err
	}

	logger, closer, err := fileLogger(opts.logFile, c.Logger.GetLevel())
	if err != nil {
		return err
	}
	defer closer.Close()
	observability.NewLogHooks(logger).Install()
	defer observability.Reset()

	raster := surface.NewRaster(1, 1)
	defer raster.Close()
	if popts.Background != "" {
		col, err := surface.ParseHex(popts.Background)
		if err != nil {
			return err
		}
		raster.SetBackground(col)
	}

	host := &termHost{visible: true}
	var prog *tea.Program
	clk := clock.New(host, raster,
		clock.WithLogger(logger),
		clock.WithRenderer(clock.NewRenderer(
			clock.WithLocation(popts.Location),
			clock.WithRendererLogger(logger))),
		clock.OnFrame(func(_ clock.Frame, digits string) {
			prog.Send(frameMsg{text: sink.HalfBlocks(raster.Image(), nil), digits: digits})
		}))

	player := playlist.New(playlistTracks(cfg), nil, logger)
	views := view.NewSwitcher(logger)
	views.Register(viewClock, view.Clock(clk))
	views.Register(viewPlaylist, player)
	views.Register(viewVlog, view.Funcs{})
	defer views.Close()

	m := &watchModel{
		ctx:    ctx,
		host:   host,
		clock:  clk,
		views:  views,
		player: player,
		loader: c.newFeedLoader(ctx, cfg, logger),
		aspect: cfg.Clock.Height / cfg.Clock.Width,
	}
	m.show(viewClock)

	prog = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	clockCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = clk.Run(clockCtx)
	}()

	_, err = prog.Run()
	cancel()
	<-done
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
