// Command pathlink is an interactive harness for the path hyperlink
// resolver. Type or paste a line of terminal output, move the hover across
// its words, and watch the candidate tiers, the immediate heuristic
// highlight, and the resolved open target update live. Enter opens the
// resolved target in an editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pathlink"
	"pathlink/internal/readfile"
	"pathlink/internal/termgrid"
)

type config struct {
	Root      string
	CWD       string
	Nav       string
	EditorCmd string
	Theme     string
	Cols      int
	NoHome    bool
	Regexes   stringList
}

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ", ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// hostWordRe is the emulator-side word boundary rule; it mirrors the word
// class the resolver scans with so hover and candidates agree.
var hostWordRe = regexp.MustCompile(`[$+\p{L}\p{N}_.\[\]:/\\@~(),-]+`)

type previewState struct {
	Path      string
	StartLine int
	Lines     []string
	Selected  int
	Err       string
}

type resolveMsg struct {
	gen    int
	target *pathlink.OpenTarget
	ok     bool
}

type model struct {
	cfg      config
	resolver *pathlink.Resolver

	width  int
	height int

	input textinput.Model
	line  string
	words []pathlink.Range
	hover int

	maybePath *pathlink.MaybePath
	heuristic *pathlink.HoveredWord
	variants  []string

	gen       int
	resolving bool
	target    *pathlink.OpenTarget

	preview previewState
	status  string
}

func newModel(cfg config, resolver *pathlink.Resolver) model {
	input := textinput.New()
	input.Prompt = "line> "
	input.Focus()
	input.CharLimit = 512
	input.SetValue("+++ b/src/main.go:12:3 done")
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(colAccent))

	m := model{cfg: cfg, resolver: resolver, input: input}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(16, m.width-16)
		// The grid tracks the window width, so re-resolve on resize. The
		// first size message doubles as the initial scan.
		return m, m.rescanCmd()

	case resolveMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.resolving = false
		if !msg.ok {
			// Superseded mid-flight; a newer rescan already queued.
			return m, nil
		}
		m.target = msg.target
		m.loadPreview()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.resolver.Cancel()
			return m, tea.Quit
		case "tab", "right":
			// Right only cycles the hover once the cursor sits at the end of
			// the line; otherwise it keeps moving the cursor.
			if msg.String() == "right" && m.input.Position() < len([]rune(m.input.Value())) {
				break
			}
			m.moveHover(1)
			return m, m.rescanCmd()
		case "shift+tab":
			m.moveHover(-1)
			return m, m.rescanCmd()
		case "enter":
			if m.target == nil {
				m.status = "nothing resolved to open"
				return m, nil
			}
			if err := openTarget(m.target, m.cfg.EditorCmd); err != nil {
				m.status = "open failed: " + err.Error()
				return m, nil
			}
			return m, tea.Quit
		case "ctrl+y":
			if m.target == nil {
				return m, nil
			}
			loc := formatTarget(m.target)
			if err := copyToClipboard(loc); err != nil {
				m.status = "copy failed: " + err.Error()
			} else {
				m.status = "copied " + loc
			}
			return m, nil
		}

		prev := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != prev {
			return m, tea.Batch(cmd, m.rescanCmd())
		}
		return m, cmd
	}

	return m, nil
}

func (m *model) moveHover(delta int) {
	if len(m.words) == 0 {
		m.hover = 0
		return
	}
	m.hover = (m.hover + delta + len(m.words)) % len(m.words)
}

// rescanCmd recomputes the hover state from the input line and kicks off a
// fresh resolution, superseding the previous one.
func (m *model) rescanCmd() tea.Cmd {
	m.line = m.input.Value()
	m.words = m.words[:0]
	for _, loc := range hostWordRe.FindAllStringIndex(m.line, -1) {
		m.words = append(m.words, pathlink.Range{Start: loc[0], End: loc[1]})
	}
	if len(m.words) == 0 {
		m.maybePath = nil
		m.heuristic = nil
		m.variants = nil
		m.target = nil
		m.preview = previewState{}
		m.resolving = false
		return nil
	}
	if m.hover >= len(m.words) {
		m.hover = len(m.words) - 1
	}

	word := m.words[m.hover]
	grid := termgrid.New(m.gridCols(), m.line)
	wordMatch := grid.MatchForByteRange(pathlink.Point{}, m.line, word)
	m.maybePath = pathlink.FromHoveredWordMatch(grid, wordMatch)
	m.heuristic = m.maybePath.BestHeuristicHoveredWord(grid)
	m.variants = collectVariants(m.maybePath)

	m.target = nil
	m.preview = previewState{}
	m.resolving = true
	m.gen++
	gen := m.gen
	ch := m.resolver.Start(m.maybePath)
	return func() tea.Msg {
		target, ok := <-ch
		return resolveMsg{gen: gen, target: target, ok: ok}
	}
}

func (m *model) gridCols() int {
	if m.cfg.Cols > 0 {
		return m.cfg.Cols
	}
	if m.width > 0 {
		return m.width
	}
	return 80
}

// collectVariants snapshots the Default-tier candidate texts for display.
func collectVariants(mp *pathlink.MaybePath) []string {
	var texts []string
	for v := range mp.DefaultVariants() {
		texts = append(texts, v.BaseText())
		if len(texts) == 8 {
			break
		}
	}
	return texts
}

func (m *model) loadPreview() {
	if m.target == nil {
		m.preview = previewState{}
		return
	}

	lines, err := readfile.ReadLinesNormalized(m.target.Path)
	if err != nil {
		m.preview = previewState{Path: m.target.Path, Err: err.Error()}
		return
	}

	row := 1
	if m.target.Position != nil {
		row = m.target.Position.Row
	}
	height := max(1, m.previewHeight())
	window, start := readfile.Window(lines, row, height)
	m.preview = previewState{
		Path:      m.target.Path,
		StartLine: start,
		Lines:     highlightLines(m.target.Path, window, m.cfg.Theme),
		Selected:  row,
	}
}

func formatTarget(t *pathlink.OpenTarget) string {
	if t.Position == nil {
		return t.Path
	}
	if t.Position.Column != 0 {
		return fmt.Sprintf("%s:%d:%d", t.Path, t.Position.Row, t.Position.Column)
	}
	return fmt.Sprintf("%s:%d", t.Path, t.Position.Row)
}

func main() {
	var cfg config
	flag.StringVar(&cfg.Root, "root", "", "worktree root (defaults to the current directory)")
	flag.StringVar(&cfg.CWD, "cwd", "", "terminal cwd used for relative candidates (defaults to -root)")
	flag.StringVar(&cfg.Nav, "nav", "exhaustive", "navigation level: default, advanced, or exhaustive")
	flag.StringVar(&cfg.EditorCmd, "editor-cmd", "", "override open command, supports {file} {line} {col} {target}")
	flag.StringVar(&cfg.Theme, "theme", "nord", "chroma style for the preview pane")
	flag.IntVar(&cfg.Cols, "cols", 0, "grid width override (0 uses the window width)")
	flag.BoolVar(&cfg.NoHome, "no-home", false, "disable ~ expansion")
	flag.Var(&cfg.Regexes, "regex", "extra path regex with a (?P<path>...) capture; repeatable")
	flag.Parse()

	if cfg.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "resolve cwd: %v\n", err)
			os.Exit(1)
		}
		cfg.Root = wd
	}
	absRoot, err := filepath.Abs(cfg.Root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve root: %v\n", err)
		os.Exit(1)
	}
	cfg.Root = absRoot
	if cfg.CWD == "" {
		cfg.CWD = cfg.Root
	}

	nav, err := pathlink.ParseNavigation(cfg.Nav)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -nav: %v\n", err)
		os.Exit(1)
	}

	home := ""
	if !cfg.NoHome {
		home, _ = os.UserHomeDir()
	}

	resolver := pathlink.NewResolver(pathlink.Env{
		Worktrees:   []pathlink.Worktree{pathlink.DirWorktree{Dir: cfg.Root}},
		CWD:         cfg.CWD,
		HomeDir:     home,
		Navigation:  nav,
		PathRegexes: pathlink.CompilePathRegexes(cfg.Regexes),
		FS:          pathlink.OSFS{},
	})

	p := tea.NewProgram(newModel(cfg, resolver), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "pathlink failed: %v\n", err)
		os.Exit(1)
	}
}
