package authclient

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Mode selects which tab of the auth dialog is active.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// Dialog drives the two-tab auth dialog: open/close lifecycle, tab
// switching, and submission. Closing the dialog while a submission is in
// flight discards its result; a late success must not sign the user in.
type Dialog struct {
	forms    *FormController
	sessions *SessionStore
	log      zerolog.Logger

	mu   sync.Mutex
	open bool
	mode Mode
	// gen increments on every Close. A submission captures the value at
	// launch and its result is dropped if the two no longer match.
	gen       uint64
	submitGen uint64
}

func NewDialog(forms *FormController, sessions *SessionStore, log zerolog.Logger) *Dialog {
	return &Dialog{forms: forms, sessions: sessions, log: log}
}

// Open shows the dialog on the given tab. Opening an already open dialog
// just switches tabs.
func (d *Dialog) Open(mode Mode) {
	d.mu.Lock()
	d.open = true
	d.mode = mode
	d.mu.Unlock()
	d.forms.ResetSubmission(mode)
}

// SwitchTab changes the active tab. Entered values on both tabs survive
// the switch; only the entered tab's stale outcome is cleared.
func (d *Dialog) SwitchTab(mode Mode) {
	d.mu.Lock()
	if !d.open || d.mode == mode {
		d.mu.Unlock()
		return
	}
	d.mode = mode
	d.mu.Unlock()
	d.forms.ResetSubmission(mode)
}

// Close hides the dialog and invalidates any in-flight submission.
func (d *Dialog) Close() {
	d.mu.Lock()
	d.open = false
	d.gen++
	d.mu.Unlock()
}

func (d *Dialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

func (d *Dialog) ActiveMode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// SubmitLogin submits the login tab. On success the session is installed
// and the dialog closes; on failure it stays open showing the error.
func (d *Dialog) SubmitLogin(ctx context.Context) Submission {
	if !d.arm(ModeLogin) {
		return Submission{}
	}
	sub := d.forms.SubmitLogin(ctx)
	d.settle(sub)
	return sub
}

// SubmitRegister submits the registration tab.
func (d *Dialog) SubmitRegister(ctx context.Context) Submission {
	if !d.arm(ModeRegister) {
		return Submission{}
	}
	sub := d.forms.SubmitRegister(ctx)
	d.settle(sub)
	return sub
}

// arm records the submission's generation. It refuses when the dialog is
// closed or showing the other tab.
func (d *Dialog) arm(mode Mode) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open || d.mode != mode {
		return false
	}
	d.submitGen = d.gen
	return true
}

// settle closes the dialog after a success, unless the dialog was closed
// while the request was in flight.
func (d *Dialog) settle(sub Submission) {
	if sub.State != StateSucceeded {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.submitGen != d.gen {
		d.log.Debug().Msg("discarding auth result from a closed dialog")
		return
	}
	d.open = false
}

// onAuthenticated is the form controller's success hook. Credentials are
// dropped when the dialog was closed mid-flight, so a late login cannot
// sign the user in behind their back.
func (d *Dialog) onAuthenticated(user User, sessionToken string) {
	d.mu.Lock()
	stale := d.submitGen != d.gen
	d.mu.Unlock()
	if stale {
		return
	}
	d.sessions.SetSession(Credentials{User: user, SessionToken: sessionToken})
}

// Shell wires the auth core together for an application: gateway, forms,
// dialog, and session store.
type Shell struct {
	sessions *SessionStore
	dialog   *Dialog
	forms    *FormController
}

// NewShell assembles the auth core around a gateway and a token store.
func NewShell(api API, tokens TokenStore, log zerolog.Logger) *Shell {
	sessions := NewSessionStore(api, tokens, log)
	var dialog *Dialog
	forms := NewFormController(api, func(user User, token string) {
		dialog.onAuthenticated(user, token)
	}, log)
	dialog = NewDialog(forms, sessions, log)
	return &Shell{sessions: sessions, dialog: dialog, forms: forms}
}

// Start restores any persisted session. Call once at startup.
func (s *Shell) Start(ctx context.Context) {
	s.sessions.Hydrate(ctx)
}

// CurrentUser returns the signed-in user, or nil.
func (s *Shell) CurrentUser() *User {
	return s.sessions.Current()
}

// SignedIn reports whether a session is active.
func (s *Shell) SignedIn() bool {
	return s.sessions.SignedIn()
}

// Logout signs the user out, clearing local state even when the server is
// unreachable.
func (s *Shell) Logout(ctx context.Context) {
	s.sessions.Logout(ctx)
}

// Dialog exposes the auth dialog for the UI layer.
func (s *Shell) Dialog() *Dialog { return s.dialog }

// Forms exposes the form controller for the UI layer.
func (s *Shell) Forms() *FormController { return s.forms }

// Sessions exposes the session store.
func (s *Shell) Sessions() *SessionStore { return s.sessions }
