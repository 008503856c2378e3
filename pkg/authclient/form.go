package authclient

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// LoginForm holds the login tab's entered values.
type LoginForm struct {
	Email    string
	Password string
}

// RegisterForm holds the registration tab's entered values. Title only
// applies to freelancer accounts.
type RegisterForm struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	UserType        string
	Title           string
}

// defaultRegisterForm is the shape the registration tab resets to after a
// successful submission: everything empty, account type back to freelancer.
func defaultRegisterForm() RegisterForm {
	return RegisterForm{UserType: UserTypeFreelancer}
}

// SubmissionState tracks where a form is in its submit lifecycle.
type SubmissionState int

const (
	StateIdle SubmissionState = iota
	StateSubmitting
	StateError
	StateSucceeded
)

// Submission is the outcome of a form as the UI should render it.
type Submission struct {
	State   SubmissionState
	Message string
}

// SuccessFunc receives the authenticated identity after a successful login
// or registration. Invoked exactly once per success, before the submit call
// returns.
type SuccessFunc func(user User, sessionToken string)

const (
	msgPasswordMismatch = "passwords do not match"
	msgPasswordTooShort = "password must be at least 6 characters"
)

// FormController owns the two form states, validates locally, and drives
// submission through the gateway. Outcomes are reported upward via the
// success callback and readable through the Submission accessors; errors
// never propagate past the controller.
type FormController struct {
	api       API
	onSuccess SuccessFunc
	validate  *validator.Validate
	log       zerolog.Logger

	mu          sync.Mutex
	login       LoginForm
	register    RegisterForm
	loginSub    Submission
	registerSub Submission
}

func NewFormController(api API, onSuccess SuccessFunc, log zerolog.Logger) *FormController {
	return &FormController{
		api:       api,
		onSuccess: onSuccess,
		validate:  validator.New(),
		log:       log,
		register:  defaultRegisterForm(),
	}
}

// SetLoginForm replaces the login tab's entered values.
func (fc *FormController) SetLoginForm(form LoginForm) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.login = form
}

// SetRegisterForm replaces the registration tab's entered values.
func (fc *FormController) SetRegisterForm(form RegisterForm) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.register = form
}

func (fc *FormController) LoginForm() LoginForm {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.login
}

func (fc *FormController) RegisterForm() RegisterForm {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.register
}

func (fc *FormController) LoginSubmission() Submission {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.loginSub
}

func (fc *FormController) RegisterSubmission() Submission {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.registerSub
}

// SubmitLogin submits the login form. A call while either form is already
// submitting is a no-op returning the in-flight submission. On failure the
// entered values stay untouched so the user does not retype them.
func (fc *FormController) SubmitLogin(ctx context.Context) Submission {
	fc.mu.Lock()
	if fc.submitting() {
		sub := fc.loginSub
		fc.mu.Unlock()
		return sub
	}
	fc.loginSub = Submission{State: StateSubmitting}
	form := fc.login
	fc.mu.Unlock()

	creds, err := fc.api.Login(ctx, form.Email, form.Password)

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if err != nil {
		fc.log.Debug().Err(err).Msg("login submission failed")
		fc.loginSub = Submission{State: StateError, Message: messageOf(err)}
		return fc.loginSub
	}

	fc.login = LoginForm{}
	fc.loginSub = Submission{State: StateSucceeded}
	fc.deliver(creds)
	return fc.loginSub
}

// SubmitRegister validates locally, in order, before any network call:
// password confirmation first, then minimum length. Success resets the form
// to its default shape; failure preserves every entered value.
func (fc *FormController) SubmitRegister(ctx context.Context) Submission {
	fc.mu.Lock()
	if fc.submitting() {
		sub := fc.registerSub
		fc.mu.Unlock()
		return sub
	}
	fc.registerSub = Submission{State: StateSubmitting}
	form := fc.register
	fc.mu.Unlock()

	if msg, ok := fc.checkRegisterForm(form); !ok {
		err := validationError(msg)
		fc.mu.Lock()
		defer fc.mu.Unlock()
		fc.registerSub = Submission{State: StateError, Message: err.Message}
		return fc.registerSub
	}

	input := RegisterInput{
		Email:     form.Email,
		Password:  form.Password,
		UserType:  form.UserType,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	}
	if form.UserType == UserTypeFreelancer {
		input.Title = form.Title
	}

	creds, err := fc.api.Register(ctx, input)

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if err != nil {
		fc.log.Debug().Err(err).Msg("registration submission failed")
		fc.registerSub = Submission{State: StateError, Message: messageOf(err)}
		return fc.registerSub
	}

	fc.register = defaultRegisterForm()
	fc.registerSub = Submission{State: StateSucceeded}
	fc.deliver(creds)
	return fc.registerSub
}

// ResetSubmission returns a form's displayed outcome to idle. Used when a
// tab is (re)entered so a stale error does not greet the user. In-flight
// submissions are left alone.
func (fc *FormController) ResetSubmission(mode Mode) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	switch mode {
	case ModeLogin:
		if fc.loginSub.State != StateSubmitting {
			fc.loginSub = Submission{}
		}
	case ModeRegister:
		if fc.registerSub.State != StateSubmitting {
			fc.registerSub = Submission{}
		}
	}
}

// checkRegisterForm runs the two local validations in their fixed order.
func (fc *FormController) checkRegisterForm(form RegisterForm) (string, bool) {
	if err := fc.validate.VarWithValue(form.ConfirmPassword, form.Password, "eqfield"); err != nil {
		return msgPasswordMismatch, false
	}
	if err := fc.validate.Var(form.Password, "min=6"); err != nil {
		return msgPasswordTooShort, false
	}
	return "", true
}

// submitting reports whether either form has an in-flight request.
// Callers must hold fc.mu.
func (fc *FormController) submitting() bool {
	return fc.loginSub.State == StateSubmitting || fc.registerSub.State == StateSubmitting
}

// deliver forwards a success upward. Callers must hold fc.mu; the callback
// itself runs with the lock held, which is safe because the dialog and
// session store never call back into the controller.
func (fc *FormController) deliver(creds *Credentials) {
	if fc.onSuccess != nil {
		fc.onSuccess(creds.User, creds.SessionToken)
	}
}
