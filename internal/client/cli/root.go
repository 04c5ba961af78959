package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gamekeeper/internal/client/session"
	"github.com/dmitrijs2005/gamekeeper/internal/client/views"
)

func (a *App) getStatus() string {
	s := ""
	if st := a.holder.State(); st.Session != nil && st.Session.User != nil {
		s = st.Session.User.Email
	}
	if m := a.Mode(); m != "" {
		if s != "" {
			s += " "
		}
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run shows a loading line until the stored session has been checked, then
// runs the REPL until the user exits or ctx ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.println("Welcome to GameKeeper (type 'help' for commands)")

	a.root = views.NewRoot(func(prev, next views.Screen) { a.onScreenChange(ctx, prev, next) })
	a.holderSub = a.holder.Observe(func(st session.State) {
		a.root.Update(st.Loaded, st.Session)
	})

	a.println("Loading...")
	a.holder.Init(ctx)
	select {
	case <-a.holder.Ready():
	case <-ctx.Done():
		return
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
