package cli

import (
	"context"

	"github.com/dmitrijs2005/gamekeeper/internal/client/views"
	"github.com/dmitrijs2005/gamekeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// SignIn prompts for credentials and signs in. On success the session
// change switches to the catalog screen.
func (a *App) SignIn(ctx context.Context) error {
	return a.authenticate(ctx, views.ModeLogin)
}

// SignUp prompts for credentials and registers a new account.
func (a *App) SignUp(ctx context.Context) error {
	return a.authenticate(ctx, views.ModeSignUp)
}

func (a *App) authenticate(ctx context.Context, mode views.AuthMode) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if a.auth.Mode() != mode {
		a.auth.Toggle()
	}
	a.auth.SetEmail(email)
	a.auth.SetPassword(string(password))

	a.busyDo(func() { a.auth.Submit(ctx) })
	a.auth.SetPassword("")

	if msg := a.auth.Message(); msg != "" {
		a.println(msg)
	}
	if a.screen() == views.ScreenCatalog {
		a.showCatalog()
	}
	return nil
}
