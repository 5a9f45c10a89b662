package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chatpane/chatpane/timeline"
	"github.com/chatpane/chatpane/vscroll"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// termViewport adapts the list area of the terminal to the windowing
// engine's viewport contract. Offset and extent are in terminal lines.
// Shared by pointer between model copies so engine and renderer always
// agree on the scroll position.
type termViewport struct {
	offset int
	extent int
}

func (v *termViewport) Offset() int      { return v.offset }
func (v *termViewport) Extent() int      { return v.extent }
func (v *termViewport) ScrollTo(off int) { v.offset = off }

type model struct {
	records []timeline.Message
	hidden  map[string]bool // hide/restore state, keyed by UUID

	// Derived per generation by rebuild().
	groups timeline.Groups
	items  []timeline.DisplayItem
	index  timeline.Index

	engine *vscroll.Engine
	vp     *termViewport

	cursor   int
	width    int
	height   int
	expanded map[string]bool // expanded rows, keyed by UUID

	// Jump-to-UUID prompt state.
	searching bool
	searchBuf string
	statusMsg string
	statusErr bool // statusMsg reports a failure

	// Rendering collaborators.
	md *markdownRenderer
	hl *payloadHL

	keys     keyMap
	help     help.Model
	showHelp bool

	// Live reload state.
	watching  bool
	watcher   *recordWatcher
	reloadSub chan reloadMsg
	reloadErr chan error

	logger *log.Logger
}

func initialModel(msgs []timeline.Message, logger *log.Logger) model {
	vp := &termViewport{}
	m := model{
		records:  msgs,
		hidden:   make(map[string]bool),
		expanded: make(map[string]bool),
		vp:       vp,
		engine:   vscroll.New(vp, 0, nil, vscroll.DefaultOverscan),
		md:       &markdownRenderer{},
		hl:       newPayloadHL(termenv.HasDarkBackground()),
		keys:     defaultKeyMap(),
		help:     help.New(),
		logger:   logger,
	}
	m.rebuild()
	return m
}

// rebuild recomputes the derived display state: groups, flattened items,
// UUID index, and a fresh engine generation. Called whenever records or
// the hidden set change. Anomalies are logged, never fatal.
func (m *model) rebuild() {
	m.groups = timeline.ComputeGroups(m.records)
	items, anomalies := timeline.Flatten(m.records, m.groups, m.hidden)
	m.items = items
	m.index = timeline.BuildIndex(items)

	est := func(i int) int { return timeline.EstimateHeight(items[i]) }
	m.engine.SetCount(len(items), est)

	for _, a := range anomalies {
		m.logger.Warn("flatten anomaly", "detail", a.String())
	}

	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// listViewHeight is the number of terminal lines available to the row
// list, after the status area.
func (m model) listViewHeight() int {
	h := m.height - statusBarHeight
	if h < 1 {
		h = 1
	}
	return h
}

func (m model) Init() tea.Cmd {
	if !m.watching {
		return nil
	}
	return tea.Batch(waitForReload(m.reloadSub), waitForReloadErr(m.reloadErr))
}

func main() {
	demoN := flag.Int("demo", 0, "render a synthetic conversation with this many request cycles")
	dump := flag.Bool("dump", false, "print the rendered view to stdout and exit")
	logPath := flag.String("log", "", "append diagnostics to this file")
	flag.Parse()

	logger := log.NewWithOptions(io.Discard, log.Options{})
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true})
	}

	var (
		msgs []timeline.Message
		path string
		err  error
	)
	switch {
	case *demoN > 0:
		msgs = demoConversation(*demoN)
	case flag.NArg() == 1:
		path = flag.Arg(0)
		msgs, err = loadRecords(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "usage: chatpane [--demo N] [--dump] [--log FILE] [records.json]")
		os.Exit(2)
	}

	m := initialModel(msgs, logger)

	if *dump {
		m.width = 120
		m.height = 1_000_000
		m.vp.extent = m.height - statusBarHeight
		fmt.Println(m.View())
		return
	}

	if path != "" {
		watcher := newRecordWatcher(path)
		go watcher.run()
		defer watcher.stop()
		m.watching = true
		m.watcher = watcher
		m.reloadSub = watcher.sub
		m.reloadErr = watcher.errc
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
