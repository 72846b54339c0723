// Package tui implements the interactive registration form.
package tui

import (
	"context"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/regform/internal/core/attachment"
	"github.com/colonyops/regform/internal/core/notify"
	"github.com/colonyops/regform/internal/core/registration"
	"github.com/colonyops/regform/internal/tui/components"
	"github.com/colonyops/regform/internal/tui/components/form"
)

// Field identifiers owned by the terminal form rather than the engine.
const (
	fieldTeamSize = "teamSize"
	fieldAbstract = "abstract"
)

// Options configures a new Model.
type Options struct {
	Settings registration.Settings
	Domains  []string // rendered as a select when non-empty
	Sender   registration.Sender
	Endpoint string
	Logger   zerolog.Logger
}

// fileLoadedMsg reports the outcome of reading the abstract from disk.
type fileLoadedMsg struct {
	seq    int
	path   string
	source registration.FileSource
	file   registration.FileSelection
	err    error
}

// submitFinishedMsg carries the outcome of the network call back into Update.
type submitFinishedMsg struct {
	receipt registration.Receipt
	err     error
}

// Model is the registration form. All state transitions go through
// registration.Reduce; the model only mirrors the state into widgets.
type Model struct {
	state    registration.FormState
	sender   registration.Sender
	domains  []string
	endpoint string
	logger   zerolog.Logger

	dialog   *form.Dialog
	lastPath string // abstract path as of the previous sync
	loadSeq  int    // id of the newest abstract load; older results are stale
	confirm  *components.ConfirmModal

	notifyBus       *notify.Bus
	toastController *ToastController
	toastView       *ToastView

	width    int
	height   int
	quitting bool
}

// New creates the form model at the default team size.
func New(opts Options) Model {
	notifyBus := notify.NewBus()
	toastCtrl := NewToastController()
	toastView := NewToastView(toastCtrl)

	// Wire bus -> toast controller
	notifyBus.Subscribe(func(n notify.Notification) {
		toastCtrl.Push(n)
	})

	m := Model{
		state:           registration.New(opts.Settings),
		sender:          opts.Sender,
		domains:         opts.Domains,
		endpoint:        opts.Endpoint,
		logger:          opts.Logger,
		dialog:          form.NewDialog("Team Registration", nil),
		notifyBus:       notifyBus,
		toastController: toastCtrl,
		toastView:       toastView,
	}
	m, _ = m.rebuildFields()
	return m
}

// State returns the current form state.
func (m Model) State() registration.FormState {
	return m.state
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if f := m.dialog.Focused(); f != nil {
		return f.Focus()
	}
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		// Leave room for the file line, the button and the endpoint.
		m.dialog.SetHeight(max(msg.Height-4, 0))
		return m, nil

	case toastTickMsg:
		return m.handleToastTick(msg)

	case form.SubmitMsg:
		return m.dispatch(registration.SubmitRequested{})

	case fileLoadedMsg:
		return m.handleFileLoaded(msg)

	case submitFinishedMsg:
		return m.handleSubmitFinished(msg)

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m.updateDialog(msg)
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.confirm != nil {
		next, cmd := m.confirm.Update(msg)
		switch {
		case next.Confirmed():
			return m.quit()
		case next.Cancelled():
			m.confirm = nil
		default:
			m.confirm = &next
		}
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		if m.toastController.HasToasts() {
			m.toastController.Dismiss()
			return m, nil
		}
	case "enter":
		if f := m.dialog.Focused(); f != nil && f.ID() == fieldAbstract {
			return m.loadFile(f.Value(), registration.SourcePicker)
		}
	}

	return m.updateDialog(msg)
}

// updateDialog forwards msg to the focused field and feeds any resulting
// value change into the engine.
func (m Model) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.dialog, cmd = m.dialog.Update(msg)
	if m.dialog.Cancelled() {
		if !hasInput(m.state) {
			return m.quit()
		}
		m.dialog.Resume()
		confirm := components.NewConfirmModal("Discard this registration?")
		m.confirm = &confirm
		return m, nil
	}

	m, syncCmd := m.syncFocused()
	return m, tea.Batch(cmd, syncCmd)
}

// syncFocused turns a changed widget value into an engine event.
func (m Model) syncFocused() (Model, tea.Cmd) {
	f := m.dialog.Focused()
	if f == nil {
		return m, nil
	}
	value := f.Value()

	switch f.ID() {
	case fieldTeamSize:
		size, err := strconv.Atoi(value)
		if err != nil || size == m.state.TeamSize {
			return m, nil
		}
		return m.dispatch(registration.TeamSizeChanged{Size: size})

	case fieldAbstract:
		prev := m.lastPath
		if value == prev {
			return m, nil
		}
		m.lastPath = value
		if value == "" {
			m.loadSeq++
			return m.dispatch(registration.FileCleared{})
		}
		// A path arriving in one update was dropped or pasted into the
		// terminal rather than typed.
		if len(value)-len(prev) > 1 {
			return m.loadFile(value, registration.SourceDrop)
		}
		return m, nil
	}

	if value == m.state.Value(f.ID()) {
		return m, nil
	}
	return m.dispatch(registration.FieldChanged{ID: f.ID(), Value: value})
}

// dispatch runs one event through the engine and performs its effect.
func (m Model) dispatch(ev registration.Event) (Model, tea.Cmd) {
	prev := m.state
	next, eff := registration.Reduce(m.state, ev)
	m.state = next

	var cmds []tea.Cmd
	if next.Generation != prev.Generation {
		m.logger.Debug().
			Int("team_size", next.TeamSize).
			Int("generation", next.Generation).
			Msg("roster rebuilt")

		var cmd tea.Cmd
		m, cmd = m.rebuildFields()
		cmds = append(cmds, cmd)
	}
	m.syncErrors()

	switch eff := eff.(type) {
	case registration.Notify:
		m.notifyBus.Publish(eff.Notification)
		cmds = append(cmds, m.ensureToastTick())
	case registration.SendSubmission:
		m.logger.Info().
			Str("team", eff.Submission.Payload.TeamName).
			Int("team_size", eff.Submission.Payload.TeamSize).
			Msg("submission started")
		cmds = append(cmds, m.send(eff.Submission))
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleFileLoaded(msg fileLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.loadSeq {
		m.logger.Debug().Str("path", msg.path).Msg("discarding stale abstract load")
		return m, nil
	}

	if msg.err != nil {
		m.logger.Debug().Err(msg.err).Str("path", msg.path).Msg("abstract load failed")
		m.notifyBus.Warnf("Cannot read abstract: %v", msg.err)

		var cmd tea.Cmd
		m, cmd = m.dispatch(registration.FileCleared{})
		return m, tea.Batch(cmd, m.ensureToastTick())
	}

	m.logger.Debug().
		Str("name", msg.file.Name).
		Str("mime_type", msg.file.MimeType).
		Int64("size", msg.file.Size).
		Str("source", string(msg.source)).
		Msg("abstract selected")

	return m.dispatch(registration.FileSelected{File: msg.file, Source: msg.source})
}

func (m Model) handleSubmitFinished(msg submitFinishedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Msg("submission failed")
	} else {
		m.logger.Info().
			Str("submission_id", msg.receipt.ID).
			Int("status", msg.receipt.StatusCode).
			Msg("submission finished")
	}

	m, cmd := m.dispatch(registration.SubmitFinished{Receipt: msg.receipt, Err: msg.err})
	if msg.err == nil {
		cmd = tea.Batch(cmd, m.dialog.FocusID(registration.FieldTeamName))
	}
	return m, cmd
}

func (m Model) handleToastTick(_ toastTickMsg) (tea.Model, tea.Cmd) {
	m.toastController.Tick(toastTickInterval)
	if m.toastController.HasToasts() {
		return m, scheduleToastTick()
	}
	m.toastController.SetTicking(false)
	return m, nil
}

// send performs the POST off the Update loop.
func (m Model) send(sub registration.Submission) tea.Cmd {
	sender := m.sender
	return func() tea.Msg {
		receipt, err := sender.Send(context.Background(), sub)
		return submitFinishedMsg{receipt: receipt, err: err}
	}
}

// loadFile reads path in the background. Only the newest load is applied.
func (m Model) loadFile(path string, source registration.FileSource) (Model, tea.Cmd) {
	m.loadSeq++
	seq := m.loadSeq
	return m, func() tea.Msg {
		f, err := attachment.Load(path)
		return fileLoadedMsg{seq: seq, path: path, source: source, file: f, err: err}
	}
}

// ensureToastTick returns a tick command when there are active toasts.
func (m Model) ensureToastTick() tea.Cmd {
	if m.toastController.HasToasts() && !m.toastController.Ticking() {
		m.toastController.SetTicking(true)
		return scheduleToastTick()
	}
	return nil
}

// hasInput reports whether leaving now would throw away user input.
func hasInput(s registration.FormState) bool {
	if s.File != nil {
		return true
	}
	for _, v := range s.Values {
		if v != "" {
			return true
		}
	}
	return false
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}
