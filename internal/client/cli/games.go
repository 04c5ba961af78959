package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gamekeeper/internal/client/catalog"
	"github.com/dmitrijs2005/gamekeeper/internal/client/models"
)

var errNoCatalog = errors.New("catalog is not open")

// withCatalog runs fn against the mounted catalog and prints the result.
func (a *App) withCatalog(fn func(vm *catalog.ViewModel)) error {
	vm := a.currentCatalog()
	if vm == nil {
		return errNoCatalog
	}
	a.busyDo(func() { fn(vm) })
	a.showCatalog()
	return nil
}

func findGame(vm *catalog.ViewModel, id int64) *models.Game {
	for _, g := range vm.State().Games {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (a *App) List(ctx context.Context) error {
	return a.withCatalog(func(vm *catalog.ViewModel) { vm.List(ctx) })
}

// SetTitle replaces the form draft.
func (a *App) SetTitle(_ context.Context, title string) error {
	return a.withCatalog(func(vm *catalog.ViewModel) { vm.SetTitle(title) })
}

// Submit adds the draft, or saves it when editing.
func (a *App) Submit(ctx context.Context) error {
	return a.withCatalog(func(vm *catalog.ViewModel) { vm.Submit(ctx) })
}

// Add sets the draft to title and submits it.
func (a *App) Add(ctx context.Context, title string) error {
	return a.withCatalog(func(vm *catalog.ViewModel) {
		vm.SetTitle(title)
		vm.Submit(ctx)
	})
}

func (a *App) Edit(_ context.Context, id int64) error {
	return a.withCatalog(func(vm *catalog.ViewModel) {
		g := findGame(vm, id)
		if g == nil {
			a.println(fmt.Sprintf("No game with id %d", id))
			return
		}
		vm.StartEditing(g)
	})
}

func (a *App) Cancel(_ context.Context) error {
	return a.withCatalog(func(vm *catalog.ViewModel) { vm.CancelEditing() })
}

func (a *App) Delete(ctx context.Context, id int64) error {
	return a.withCatalog(func(vm *catalog.ViewModel) {
		g := findGame(vm, id)
		if g == nil {
			a.println(fmt.Sprintf("No game with id %d", id))
			return
		}
		vm.Delete(ctx, g.ID, g.Title)
	})
}

func (a *App) Upload(ctx context.Context, id int64) error {
	return a.withCatalog(func(vm *catalog.ViewModel) { vm.UploadImage(ctx, id) })
}

// Logout signs out; the session change returns to the auth screen.
func (a *App) Logout(ctx context.Context) error {
	vm := a.currentCatalog()
	if vm == nil {
		return errNoCatalog
	}
	a.busyDo(func() { vm.Logout(ctx) })
	return nil
}
