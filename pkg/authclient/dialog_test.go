package authclient

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

// newTestShell builds a shell around a stub gateway and in-memory tokens.
func newTestShell(api API) (*Shell, *memTokenStore) {
	tokens := &memTokenStore{}
	return NewShell(api, tokens, zerolog.Nop()), tokens
}

func TestDialog_OpenAndSwitchTab(t *testing.T) {
	shell, _ := newTestShell(&stubAPI{})
	d := shell.Dialog()

	d.Open(ModeLogin)
	if !d.IsOpen() || d.ActiveMode() != ModeLogin {
		t.Fatalf("expected open on login tab, got open=%v mode=%d", d.IsOpen(), d.ActiveMode())
	}

	shell.Forms().SetLoginForm(LoginForm{Email: "ana@example.com"})
	d.SwitchTab(ModeRegister)
	if d.ActiveMode() != ModeRegister {
		t.Errorf("expected register tab, got %d", d.ActiveMode())
	}
	if form := shell.Forms().LoginForm(); form.Email != "ana@example.com" {
		t.Errorf("expected login values to survive the switch, got %+v", form)
	}
}

func TestDialog_SwitchTab_ClearsStaleError(t *testing.T) {
	api := &stubAPI{
		loginFn: func(ctx context.Context, email, password string) (*Credentials, error) {
			return nil, serverError("invalid credentials")
		},
	}
	shell, _ := newTestShell(api)
	d := shell.Dialog()

	d.Open(ModeLogin)
	d.SubmitLogin(context.Background())
	if sub := shell.Forms().LoginSubmission(); sub.State != StateError {
		t.Fatalf("expected login error, got %+v", sub)
	}

	d.SwitchTab(ModeRegister)
	d.SwitchTab(ModeLogin)
	if sub := shell.Forms().LoginSubmission(); sub.State != StateIdle {
		t.Errorf("expected error cleared on tab entry, got %+v", sub)
	}
}

func TestDialog_SubmitLogin_SuccessClosesAndSignsIn(t *testing.T) {
	api := &stubAPI{
		loginFn: func(ctx context.Context, email, password string) (*Credentials, error) {
			return &Credentials{User: testUser(), SessionToken: "tok-123"}, nil
		},
	}
	shell, tokens := newTestShell(api)
	d := shell.Dialog()

	d.Open(ModeLogin)
	shell.Forms().SetLoginForm(LoginForm{Email: "ana@example.com", Password: "secret1"})
	if sub := d.SubmitLogin(context.Background()); sub.State != StateSucceeded {
		t.Fatalf("expected success, got %+v", sub)
	}

	if d.IsOpen() {
		t.Error("expected dialog closed after success")
	}
	if !shell.SignedIn() {
		t.Fatal("expected active session")
	}
	if tokens.token != "tok-123" {
		t.Errorf("expected token persisted, got %q", tokens.token)
	}
}

func TestDialog_SubmitLogin_FailureStaysOpen(t *testing.T) {
	api := &stubAPI{
		loginFn: func(ctx context.Context, email, password string) (*Credentials, error) {
			return nil, serverError("invalid credentials")
		},
	}
	shell, _ := newTestShell(api)
	d := shell.Dialog()

	d.Open(ModeLogin)
	if sub := d.SubmitLogin(context.Background()); sub.State != StateError {
		t.Fatalf("expected error, got %+v", sub)
	}
	if !d.IsOpen() {
		t.Error("expected dialog to stay open on failure")
	}
	if shell.SignedIn() {
		t.Error("expected guest session")
	}
}

func TestDialog_Submit_ClosedDialogIsNoOp(t *testing.T) {
	// loginFn is nil, so any call through would panic the test.
	shell, _ := newTestShell(&stubAPI{})
	if sub := shell.Dialog().SubmitLogin(context.Background()); sub.State != StateIdle {
		t.Errorf("expected no-op submission, got %+v", sub)
	}
}

func TestDialog_Submit_WrongTabIsNoOp(t *testing.T) {
	shell, _ := newTestShell(&stubAPI{})
	d := shell.Dialog()
	d.Open(ModeLogin)
	if sub := d.SubmitRegister(context.Background()); sub.State != StateIdle {
		t.Errorf("expected no-op submission, got %+v", sub)
	}
}

func TestDialog_CloseDuringSubmit_DiscardsLateSuccess(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	api := &stubAPI{
		loginFn: func(ctx context.Context, email, password string) (*Credentials, error) {
			close(started)
			<-release
			return &Credentials{User: testUser(), SessionToken: "tok-123"}, nil
		},
	}
	shell, tokens := newTestShell(api)
	d := shell.Dialog()

	d.Open(ModeLogin)
	shell.Forms().SetLoginForm(LoginForm{Email: "ana@example.com", Password: "secret1"})

	done := make(chan Submission)
	go func() { done <- d.SubmitLogin(context.Background()) }()
	<-started

	d.Close()
	close(release)
	<-done

	if shell.SignedIn() {
		t.Error("late result must not sign the user in")
	}
	if tokens.saves != 0 {
		t.Errorf("late result must not persist a token, got %d saves", tokens.saves)
	}
	if d.IsOpen() {
		t.Error("expected dialog to remain closed")
	}
}

func TestShell_Start_HydratesSavedSession(t *testing.T) {
	api := &stubAPI{
		verifyFn: func(ctx context.Context, token string) (*User, error) {
			u := testUser()
			return &u, nil
		},
	}
	tokens := &memTokenStore{token: "tok-123"}
	shell := NewShell(api, tokens, zerolog.Nop())

	shell.Start(context.Background())
	if !shell.SignedIn() {
		t.Fatal("expected restored session")
	}
	if shell.CurrentUser().Email != "ana@example.com" {
		t.Errorf("unexpected user %+v", shell.CurrentUser())
	}
}

func TestShell_Logout_ClearsSession(t *testing.T) {
	api := &stubAPI{
		logoutFn: func(ctx context.Context, token string) error { return nil },
	}
	shell, tokens := newTestShell(api)
	shell.Sessions().SetSession(Credentials{User: testUser(), SessionToken: "tok-123"})

	shell.Logout(context.Background())
	if shell.SignedIn() {
		t.Fatal("expected guest session")
	}
	if tokens.token != "" {
		t.Errorf("expected token cleared, got %q", tokens.token)
	}
}
