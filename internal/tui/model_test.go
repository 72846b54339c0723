package tui

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/regform/internal/core/notify"
	"github.com/colonyops/regform/internal/core/registration"
	"github.com/colonyops/regform/internal/tui/components/form"
	"github.com/colonyops/regform/pkg/tuitest"
)

type stubSender struct {
	mu      sync.Mutex
	calls   []registration.Submission
	receipt registration.Receipt
	err     error
}

func (s *stubSender) Send(_ context.Context, sub registration.Submission) (registration.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, sub)
	return s.receipt, s.err
}

func (s *stubSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func newTestModel(sender registration.Sender) Model {
	return New(Options{
		Settings: registration.DefaultSettings(),
		Sender:   sender,
		Endpoint: "http://localhost:5000/submit",
		Logger:   zerolog.Nop(),
	})
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, msg := range tuitest.Type(s) {
		m, _ = step(t, m, msg)
	}
	return m
}

// runCmd executes cmd and returns the messages it produced, unwrapping
// batches one level deep.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c != nil {
			out = append(out, c())
		}
	}
	return out
}

// filled returns a model holding a complete, valid registration.
func filled(t *testing.T, m Model, size int) Model {
	t.Helper()
	d := registration.Draft{
		TeamName:  "Null Pointers",
		TeamSize:  size,
		ProblemID: "PS-07",
		Domain:    "AI/ML",
	}
	for range size {
		d.Members = append(d.Members, registration.MemberRecord{
			Name:        "Member Name",
			Email:       "member@example.org",
			Phone:       "5551234567",
			Affiliation: "State University",
		})
	}
	for _, ev := range d.Events() {
		m, _ = m.dispatch(ev)
	}
	m, _ = m.dispatch(registration.FileSelected{
		File: registration.FileSelection{
			Name:     "abstract.pdf",
			MimeType: "application/pdf",
			Size:     2048,
			Content:  []byte("%PDF-1.7"),
		},
		Source: registration.SourcePicker,
	})
	m, _ = m.rebuildFields()
	require.True(t, m.State().Valid())
	return m
}

func toastMessages(m Model) []notify.Notification {
	var out []notify.Notification
	for _, t := range m.toastController.Toasts() {
		out = append(out, t.notification)
	}
	return out
}

func TestModel_RendersForm(t *testing.T) {
	m := newTestModel(&stubSender{})
	out := tuitest.StripANSI(m.render())

	assert.Contains(t, out, "Team Registration")
	assert.Contains(t, out, "Team Name")
	assert.Contains(t, out, "Member 4")
	assert.Contains(t, out, "Abstract (PDF)")
	assert.Contains(t, out, "[ Please Fill All Required Fields ]")
	assert.Contains(t, out, "http://localhost:5000/submit")
	assert.Contains(t, out, "Team Name is required")
}

func TestModel_FieldLayout(t *testing.T) {
	m := newTestModel(&stubSender{})

	ids := make([]string, 0, len(m.dialog.Fields()))
	for _, f := range m.dialog.Fields() {
		ids = append(ids, f.ID())
	}

	// Team fields, the size select, four member groups, the abstract.
	require.Len(t, ids, 3+1+16+1)
	assert.Equal(t, registration.FieldTeamName, ids[0])
	assert.Equal(t, fieldTeamSize, ids[3])
	assert.Equal(t, "name0", ids[4])
	assert.Equal(t, "college3", ids[19])
	assert.Equal(t, fieldAbstract, ids[20])
	assert.Equal(t, registration.FieldTeamName, m.dialog.Focused().ID())
}

func TestModel_TypingUpdatesState(t *testing.T) {
	m := newTestModel(&stubSender{})

	m = typeText(t, m, "N")
	assert.Equal(t, "N", m.State().Value(registration.FieldTeamName))
	assert.NotEmpty(t, m.dialog.Focused().Error())

	m = typeText(t, m, "ull")
	assert.Equal(t, "Null", m.State().Value(registration.FieldTeamName))
	assert.Empty(t, m.dialog.Focused().Error())
}

func TestModel_TeamSizeChangeRebuildsRoster(t *testing.T) {
	m := newTestModel(&stubSender{})
	m = typeText(t, m, "Null Pointers")

	for range 3 {
		m, _ = step(t, m, tuitest.KeyTab())
	}
	require.Equal(t, fieldTeamSize, m.dialog.Focused().ID())
	gen := m.State().Generation

	m, _ = step(t, m, tuitest.KeyUp())

	assert.Equal(t, 3, m.State().TeamSize)
	assert.Equal(t, gen+1, m.State().Generation)
	assert.Len(t, m.dialog.Fields(), 3+1+12+1)
	assert.Equal(t, fieldTeamSize, m.dialog.Focused().ID(), "focus stays on the size select")
	assert.Equal(t, "Null Pointers", m.State().Value(registration.FieldTeamName))
}

func TestModel_SubmitSuccess(t *testing.T) {
	sender := &stubSender{receipt: registration.Receipt{ID: "abc", StatusCode: 200}}
	m := filled(t, newTestModel(sender), 2)
	assert.Contains(t, tuitest.StripANSI(m.render()), "[ Submit ]")

	m, cmd := step(t, m, form.SubmitMsg{})
	assert.Equal(t, registration.PhaseSubmitting, m.State().Phase)
	assert.Contains(t, tuitest.StripANSI(m.render()), "[ Submitting... ]")
	require.NotNil(t, cmd)

	// A second request while in flight is ignored.
	m, again := step(t, m, form.SubmitMsg{})
	assert.Nil(t, again)

	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, 1, sender.count())

	finished, ok := msgs[0].(submitFinishedMsg)
	require.True(t, ok)
	require.NoError(t, finished.err)

	m, _ = step(t, m, finished)

	s := m.State()
	assert.Equal(t, registration.PhaseIdle, s.Phase)
	assert.Equal(t, s.Settings.Sizes.Default, s.TeamSize)
	assert.Nil(t, s.File)
	assert.Empty(t, s.Value(registration.FieldTeamName))
	assert.Equal(t, registration.LabelIncomplete, s.Submit.Label)
	assert.Equal(t, registration.FieldTeamName, m.dialog.Focused().ID())
	assert.Empty(t, m.dialog.Focused().Value())

	toasts := toastMessages(m)
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.LevelInfo, toasts[0].Level)
	assert.Equal(t, registration.MsgSubmitted, toasts[0].Message)
}

func TestModel_SubmitFailureKeepsValues(t *testing.T) {
	m := filled(t, newTestModel(&stubSender{}), 1)
	before := m.State()

	m, _ = step(t, m, form.SubmitMsg{})
	m, _ = step(t, m, submitFinishedMsg{err: &registration.RejectedError{StatusCode: 500}})

	s := m.State()
	assert.Equal(t, registration.PhaseIdle, s.Phase)
	assert.Equal(t, before.Values, s.Values)
	assert.Equal(t, before.File, s.File)
	assert.Equal(t, registration.SubmitControl{Enabled: true, Label: registration.LabelSubmit}, s.Submit)

	toasts := toastMessages(m)
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.LevelError, toasts[0].Level)
	assert.Equal(t, registration.MsgSubmitRejected, toasts[0].Message)
}

func TestModel_SubmitInvalidIsIgnored(t *testing.T) {
	sender := &stubSender{}
	m := newTestModel(sender)

	m, cmd := step(t, m, form.SubmitMsg{})
	assert.Nil(t, cmd)
	assert.Equal(t, registration.PhaseIdle, m.State().Phase)
	assert.Equal(t, 0, sender.count())
}

func TestModel_EnterOnAbstractLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abstract.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n"), 0o644))

	m := newTestModel(&stubSender{})
	m.dialog.FocusID(fieldAbstract)
	m = typeText(t, m, path)
	assert.Nil(t, m.State().File, "typing a path does not load it")

	m, cmd := step(t, m, tuitest.KeyEnter())
	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)

	loaded, ok := msgs[0].(fileLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.err)
	assert.Equal(t, registration.SourcePicker, loaded.source)

	m, _ = step(t, m, loaded)
	require.NotNil(t, m.State().File)
	assert.Equal(t, "abstract.pdf", m.State().File.Name)
	assert.True(t, m.State().Result.File.OK)
	assert.Contains(t, tuitest.StripANSI(m.render()), "Selected file: abstract.pdf")
}

func TestModel_StaleFileLoadIgnored(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.pdf")
	second := filepath.Join(dir, "second.pdf")
	pdf := []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n")
	require.NoError(t, os.WriteFile(first, pdf, 0o644))
	require.NoError(t, os.WriteFile(second, pdf, 0o644))

	t.Run("cleared before load finishes", func(t *testing.T) {
		m := newTestModel(&stubSender{})
		m.dialog.FocusID(fieldAbstract)
		m = typeText(t, m, first)

		m, cmd := step(t, m, tuitest.KeyEnter())
		msgs := runCmd(cmd)
		require.Len(t, msgs, 1)

		for range len(first) {
			m, _ = step(t, m, tuitest.KeyBackspace())
		}
		require.Equal(t, "", m.dialog.Focused().Value())

		m, _ = step(t, m, msgs[0])
		assert.Nil(t, m.State().File)
		assert.False(t, m.State().Result.File.OK)
	})

	t.Run("newest selection wins", func(t *testing.T) {
		m := newTestModel(&stubSender{})
		m.dialog.FocusID(fieldAbstract)

		m = typeText(t, m, first)
		m, cmd := step(t, m, tuitest.KeyEnter())
		older := runCmd(cmd)
		require.Len(t, older, 1)

		for range len(first) {
			m, _ = step(t, m, tuitest.KeyBackspace())
		}
		m = typeText(t, m, second)
		m, cmd = step(t, m, tuitest.KeyEnter())
		newer := runCmd(cmd)
		require.Len(t, newer, 1)

		m, _ = step(t, m, newer[0])
		m, _ = step(t, m, older[0])
		require.NotNil(t, m.State().File)
		assert.Equal(t, "second.pdf", m.State().File.Name)
	})
}

func TestModel_FileLoadErrorWarns(t *testing.T) {
	m := newTestModel(&stubSender{})

	m, _ = step(t, m, fileLoadedMsg{
		seq:    m.loadSeq,
		path:   "/missing/abstract.pdf",
		source: registration.SourceDrop,
		err:    os.ErrNotExist,
	})

	assert.Nil(t, m.State().File)
	assert.Equal(t, registration.MsgFileRequired, m.State().Result.File.Error)

	toasts := toastMessages(m)
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.LevelWarning, toasts[0].Level)
	assert.Contains(t, toasts[0].Message, "Cannot read abstract")
}

func TestModel_InvalidFileMarked(t *testing.T) {
	m := newTestModel(&stubSender{})

	m, _ = step(t, m, fileLoadedMsg{
		seq:    m.loadSeq,
		source: registration.SourceDrop,
		file:   registration.FileSelection{Name: "resume.docx", MimeType: "application/msword", Size: 10},
	})

	out := tuitest.StripANSI(m.render())
	assert.Contains(t, out, "resume.docx")
	assert.Contains(t, out, "Please upload a PDF file")
	assert.False(t, m.State().Valid())
}

func TestModel_EscDismissesToastBeforeQuitting(t *testing.T) {
	m := newTestModel(&stubSender{})
	m.notifyBus.Infof("hello")
	require.True(t, m.toastController.HasToasts())

	m, cmd := step(t, m, tuitest.KeyEsc())
	assert.Nil(t, cmd)
	assert.False(t, m.toastController.HasToasts())
	assert.False(t, m.quitting)

	m, cmd = step(t, m, tuitest.KeyEsc())
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := newTestModel(&stubSender{})

	m, cmd := step(t, m, tuitest.KeyCtrl('c'))
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
}

func TestModel_EscWithInputAsksToConfirm(t *testing.T) {
	m := newTestModel(&stubSender{})
	m = typeText(t, m, "Null")

	m, _ = step(t, m, tuitest.KeyEsc())
	require.NotNil(t, m.confirm)
	assert.False(t, m.quitting)
	assert.Contains(t, tuitest.StripANSI(m.render()), "Discard this registration?")

	// Declining keeps the form as it was.
	m, _ = step(t, m, tuitest.KeyPress('n'))
	assert.Nil(t, m.confirm)
	assert.False(t, m.dialog.Cancelled())
	assert.Equal(t, "Null", m.State().Value(registration.FieldTeamName))

	m, _ = step(t, m, tuitest.KeyEsc())
	m, cmd := step(t, m, tuitest.KeyPress('y'))
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
}
