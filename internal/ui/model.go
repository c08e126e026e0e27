package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"startpage/internal/config"
	"startpage/internal/domain"
	"startpage/internal/engines"
	"startpage/internal/eventbus"
	"startpage/internal/history"
	"startpage/internal/preferences"
	"startpage/internal/suggest"
	"startpage/internal/ui/input"
	inputtypes "startpage/internal/ui/input/types"
	suggestsvc "startpage/internal/ui/services/suggest"
	"startpage/internal/ui/state"
	"startpage/internal/ui/views"
)

const placeholder = "Search Anything..."

// Dependencies are the collaborators the model needs. Bus, Opener, Logger
// and Clock may be nil.
type Dependencies struct {
	Bus         eventbus.EventBus
	History     *history.Service
	Preferences *preferences.Store
	Fetcher     suggest.Fetcher
	Opener      Opener
	Logger      *zap.Logger
	Clock       func() time.Time
}

// Model represents the UI state
type Model struct {
	ctx     context.Context
	config  *config.Config
	bus     eventbus.EventBus
	history *history.Service
	prefs   *preferences.Store
	opener  Opener
	logger  *zap.Logger
	clock   func() time.Time

	state   state.State // visibility flags, changed only through state.Reduce
	engine  domain.Engine
	engines []domain.Engine

	// UI-specific state not in state.State
	width       int
	height      int
	now         time.Time
	status      string
	statusError bool
	inPagerMode bool
	layout      views.Layout

	inputHandler *input.Handler
	suggestions  *suggestsvc.Service
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	help         help.Model
	keys         keyMap

	// Program reference for terminal management
	program *tea.Program
	pager   *PagerOps
}

// NewModel creates a new UI model. The selected engine and the history are
// loaded here, once.
func NewModel(cfg *config.Config, deps Dependencies) *Model {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	opener := deps.Opener
	if opener == nil {
		opener = NewBrowserOpener()
	}

	m := &Model{
		ctx:          context.Background(),
		config:       cfg,
		bus:          deps.Bus,
		history:      deps.History,
		prefs:        deps.Preferences,
		opener:       opener,
		logger:       logger.Named("ui"),
		clock:        clock,
		state:        state.New(),
		engines:      engines.All(),
		now:          clock(),
		inputHandler: input.New(placeholder),
		suggestions:  suggestsvc.NewService(deps.Fetcher, cfg.Suggest.Debounce.D(), logger),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		help:         help.New(),
		keys:         newKeyMap(),
	}

	m.history.Load(m.ctx)
	m.engine = m.prefs.LoadEngine(m.ctx)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// State returns a copy of the search state
func (m *Model) State() state.State {
	return m.state
}

// Engine returns the selected engine
func (m *Model) Engine() domain.Engine {
	return m.engine
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.inputHandler.Init(), m.tickClock())
}

func (m *Model) tickClock() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.inputHandler.SetWidth(max(min(msg.Width-4, 72)-20, 10))

	case clockMsg:
		m.now = m.clock()
		return m, m.tickClock()

	case tea.KeyMsg:
		m.status = ""
		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())

		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case suggestsvc.DebounceElapsedMsg:
		return m, m.suggestions.Elapsed(msg)

	case suggestsvc.ResultMsg:
		current := msg.Generation == m.suggestions.Generation()
		if m.suggestions.Accept(msg) {
			return m, m.reduce(state.SuggestionsLoaded{
				Items: suggest.Truncate(msg.Items, m.config.Suggest.MaxItems),
			})
		}
		if current && msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.publish(eventbus.SuggestionsFailedEvent{Query: msg.Query, Err: msg.Err})
		}

	case openedMsg:
		if msg.err != nil {
			m.logger.Error("failed to open search", zap.String("url", msg.url), zap.Error(msg.err))
			m.setStatus("Could not open browser: "+msg.err.Error(), true)
			m.publish(eventbus.ErrorEvent{Message: "open browser", Err: msg.err})
		} else {
			m.setStatus("Opened "+msg.url, false)
		}

	case pagerMsg:
		if msg.err != nil {
			m.logger.Error("pager failed", zap.String("title", msg.title), zap.Error(msg.err))
			m.setStatus("Pager failed: "+msg.err.Error(), true)
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false

	default:
		// Cursor blink and other text input messages
		return m, m.inputHandler.Update(msg)
	}

	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	m.keys.mode = m.inputHandler.CurrentMode()

	vs := views.ViewState{
		Width:        m.width,
		Height:       m.height,
		Clock:        m.now.Format("15:04"),
		Engine:       m.engine,
		Engines:      m.engines,
		Input:        m.inputHandler.View(),
		Focused:      m.state.Focused,
		Highlight:    m.state.Highlight,
		HistoryTotal: m.history.Len(),
		Status:       m.status,
		StatusError:  m.statusError,
		HelpModel:    m.help,
		Keys:         m.keys,
	}

	switch {
	case m.state.ShowEngineMenu:
		vs.Dropdown = views.DropdownEngines
		vs.Highlight = m.state.EngineCursor
	case m.state.ShowSuggestions:
		vs.Dropdown = views.DropdownSuggestions
		vs.Rows = m.state.Suggestions
	case m.state.ShowHistory:
		vs.Dropdown = views.DropdownHistory
		vs.Rows = m.state.History
	}

	out, layout := m.renderer.Render(vs)
	m.layout = layout
	return out
}

// reduce applies e and moves the input handler into the mode the new state
// implies
func (m *Model) reduce(e state.Event) tea.Cmd {
	m.state = state.Reduce(m.state, e)

	actions, cmd := m.inputHandler.ChangeMode(input.ModeFor(m.state), m.inputContext())
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	return tea.Batch(cmds...)
}

func (m *Model) inputContext() input.ModelContext {
	return input.ModelContext{State: m.state, Engines: len(m.engines)}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.FocusAction:
		return m.reduce(state.FocusGained{History: m.matchingHistory()})

	case inputtypes.DismissAction:
		m.suggestions.Cancel()
		return m.reduce(state.Dismissed{})

	case inputtypes.MoveHighlightAction:
		return m.reduce(state.HighlightMoved{Delta: a.Delta})

	case inputtypes.UpdateTextAction:
		cmd := m.reduce(state.TextChanged{Text: a.Text, History: m.matchingHistory()})
		return tea.Batch(cmd, m.suggestions.Changed(a.Text))

	case inputtypes.SubmitAction:
		if sel, ok := m.state.Selected(); ok {
			return m.pick(sel)
		}
		return m.submit(a.Text)

	case inputtypes.ToggleEngineMenuAction:
		m.suggestions.Cancel()
		return m.reduce(state.EngineMenuToggled{Current: engines.IndexOf(m.engine.ID)})

	case inputtypes.MoveEngineCursorAction:
		return m.reduce(state.EngineCursorMoved{Delta: a.Delta, Count: len(m.engines)})

	case inputtypes.ChooseEngineAction:
		idx := a.Index
		if idx < 0 {
			idx = m.state.EngineCursor
		}
		if idx >= 0 && idx < len(m.engines) {
			m.selectEngine(m.engines[idx])
		}
		return m.reduce(state.EngineChosen{})

	case inputtypes.RemoveHistoryAction:
		sel, ok := m.state.Selected()
		if !ok || !m.state.ShowHistory {
			return nil
		}
		if m.history.Remove(m.ctx, sel) {
			m.publish(eventbus.HistoryEntryRemovedEvent{Query: sel})
		}
		return m.reduce(state.HistoryChanged{History: m.matchingHistory()})

	case inputtypes.ClearHistoryAction:
		m.history.Clear(m.ctx)
		m.publish(eventbus.HistoryClearedEvent{})
		return m.reduce(state.HistoryChanged{History: nil})

	case inputtypes.ShowHelpAction:
		return m.showPager("help", m.helpRenderer.RenderHelpContent(m.engines, m.history.Cap()))

	case inputtypes.ShowHistoryAction:
		return m.showPager("history", m.helpRenderer.RenderHistoryContent(m.history.Entries()))

	case inputtypes.QuitAction:
		m.suggestions.Cancel()
		return tea.Quit
	}

	return nil
}

// pick submits a suggestion or history row, replacing the typed text
func (m *Model) pick(item string) tea.Cmd {
	m.inputHandler.SetValue(item)
	cmd := m.reduce(state.TextChanged{Text: item, History: m.matchingHistory()})
	return tea.Batch(cmd, m.submit(item))
}

// submit records the query and opens the engine's result page. A blank
// query does nothing.
func (m *Model) submit(query string) tea.Cmd {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}

	m.suggestions.Cancel()
	m.history.Add(m.ctx, q)
	url := engines.SearchURL(m.engine, q)

	m.logger.Info("search submitted", zap.String("engine", m.engine.ID), zap.String("url", url))
	m.publish(eventbus.SearchSubmittedEvent{Query: q, EngineID: m.engine.ID, URL: url})

	opener := m.opener
	open := func() tea.Msg {
		return openedMsg{url: url, err: opener.Open(url)}
	}
	return tea.Batch(m.reduce(state.Submitted{}), open)
}

func (m *Model) selectEngine(e domain.Engine) {
	if e.ID == m.engine.ID {
		return
	}
	m.engine = e
	m.prefs.SaveEngine(m.ctx, e)
	m.publish(eventbus.EngineSelectedEvent{EngineID: e.ID})
}

// handleMouse maps a left press onto the layout of the last rendered frame
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	l := m.layout
	switch {
	case !l.Contains(msg.X, msg.Y):
		m.suggestions.Cancel()
		return m.reduce(state.OutsideClicked{})

	case l.OnEngine(msg.X, msg.Y):
		return m.processAction(inputtypes.ToggleEngineMenuAction{})
	}

	if i, ok := l.RowAt(msg.X, msg.Y); ok {
		if m.state.ShowEngineMenu {
			return m.processAction(inputtypes.ChooseEngineAction{Index: i})
		}
		if items := m.state.Visible(); i < len(items) {
			return m.pick(items[i])
		}
	}

	if !m.state.Focused {
		return m.processAction(inputtypes.FocusAction{})
	}
	return nil
}

func (m *Model) matchingHistory() []string {
	return m.history.Filter(m.inputHandler.Value(), history.DropdownLimit)
}

// showPager returns a command that shows content using the ov pager
func (m *Model) showPager(title, content string) tea.Cmd {
	if m.program == nil {
		return nil
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.Show(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{title: title, err: err}
	}
}

func (m *Model) setStatus(s string, isError bool) {
	m.status = s
	m.statusError = isError
}

func (m *Model) publish(e eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}
