package views

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gamekeeper/internal/client/client"
	"github.com/dmitrijs2005/gamekeeper/internal/client/models"
)

const (
	msgMissingCredentials = "Error: Please enter email and password"
	msgCheckEmail         = "Success: Check your email for a confirmation link!"
)

type Authenticator interface {
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
}

type AuthMode string

const (
	ModeLogin  AuthMode = "login"
	ModeSignUp AuthMode = "signup"
)

// AuthForm is the sign-in / sign-up form. A successful sign-in shows
// nothing: the session change switches the screen.
type AuthForm struct {
	auth Authenticator

	mu       sync.Mutex
	email    string
	password string
	mode     AuthMode
	loading  bool
	message  string
}

func NewAuthForm(auth Authenticator) *AuthForm {
	return &AuthForm{auth: auth, mode: ModeLogin}
}

func (f *AuthForm) SetEmail(v string) {
	f.mu.Lock()
	f.email = v
	f.mu.Unlock()
}

func (f *AuthForm) SetPassword(v string) {
	f.mu.Lock()
	f.password = v
	f.mu.Unlock()
}

// Toggle switches between login and sign-up.
func (f *AuthForm) Toggle() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mode == ModeLogin {
		f.mode = ModeSignUp
	} else {
		f.mode = ModeLogin
	}
}

func (f *AuthForm) Mode() AuthMode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

func (f *AuthForm) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Message is the outcome of the last submit, empty when there is nothing
// to show.
func (f *AuthForm) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Submit signs in or signs up depending on the mode. It does nothing while
// a previous submit is still running.
func (f *AuthForm) Submit(ctx context.Context) {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return
	}
	email, password, mode := f.email, f.password, f.mode
	f.message = ""

	if email == "" || password == "" {
		f.message = msgMissingCredentials
		f.mu.Unlock()
		return
	}
	f.loading = true
	f.mu.Unlock()

	var msg string
	if mode == ModeSignUp {
		msg = f.signUp(ctx, email, password)
	} else {
		msg = f.signIn(ctx, email, password)
	}

	f.mu.Lock()
	f.loading = false
	f.message = msg
	f.mu.Unlock()
}

func (f *AuthForm) signUp(ctx context.Context, email, password string) string {
	if _, err := f.auth.SignUp(ctx, email, password); err != nil {
		return "Sign Up Error: " + client.Message(err)
	}
	return msgCheckEmail
}

func (f *AuthForm) signIn(ctx context.Context, email, password string) string {
	if _, err := f.auth.SignIn(ctx, email, password); err != nil {
		return "Login Error: " + client.Message(err)
	}
	return ""
}
