package cli

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/client/catalog"
	"github.com/dmitrijs2005/gamekeeper/internal/client/client"
	"github.com/dmitrijs2005/gamekeeper/internal/client/config"
	"github.com/dmitrijs2005/gamekeeper/internal/client/picker"
	"github.com/dmitrijs2005/gamekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gamekeeper/internal/client/session"
	"github.com/dmitrijs2005/gamekeeper/internal/client/tokenstore"
	"github.com/dmitrijs2005/gamekeeper/internal/client/views"
	"github.com/dmitrijs2005/gamekeeper/internal/cryptox"
	"github.com/dmitrijs2005/gamekeeper/internal/filex"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"

	_ "modernc.org/sqlite"
)

const (
	databaseFile  = "gamekeeper.db"
	deviceKeyFile = "device.key"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	client client.Client
	holder *session.Holder
	auth   *views.AuthForm
	root   *views.Root
	picker *picker.Picker
	dialog *terminalDialog
	reader *bufio.Reader
	out    io.Writer

	busy atomic.Bool

	mu         sync.Mutex
	mode       Mode
	catalog    *catalog.ViewModel
	catalogSub client.Subscription
	holderSub  client.Subscription
}

// NewApp opens the on-device store under cfg.DataDir and connects to the
// server.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewZerologConsole(os.Stderr, cfg.LogLevel)

	dir, err := filex.EnsureDir(cfg.DataDir, "")
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, databaseFile))
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	key, err := cryptox.DeviceKey(filepath.Join(dir, deviceKeyFile))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := tokenstore.New(metadata.NewSQLiteRepository(db), key)
	c, err := client.NewGRPCClient(ctx, cfg.ServerEndpointAddr, cfg.APIKey, store, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(cfg, c, bufio.NewReader(os.Stdin), os.Stdout, logger)
	a.db = db
	return a, nil
}

func newApp(cfg *config.Config, c client.Client, reader *bufio.Reader, out io.Writer, l logging.Logger) *App {
	out = &syncWriter{w: out}
	a := &App{
		config: cfg,
		logger: l,
		client: c,
		holder: session.New(c, l),
		auth:   views.NewAuthForm(c),
		reader: reader,
		out:    out,
		dialog: &terminalDialog{reader: reader, out: out},
	}
	a.picker = picker.New(a.promptImage, nil)
	return a
}

func (a *App) promptImage(_ context.Context) (string, error) {
	return getSimpleText(a.reader, "Image path or URL (empty to cancel)", a.out)
}

// Close releases subscriptions, the connection and the database.
func (a *App) Close() {
	a.unmountCatalog()
	if a.holderSub != nil {
		a.holderSub.Unsubscribe()
	}
	a.holder.Close()
	if err := a.client.Close(); err != nil {
		a.logger.Warn(context.Background(), "closing connection", "error", err)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// busyDo runs fn with realtime re-rendering suppressed, so background
// output does not interleave with a command.
func (a *App) busyDo(fn func()) {
	a.busy.Store(true)
	defer a.busy.Store(false)
	fn()
}

func (a *App) screen() views.Screen {
	if a.root == nil {
		return views.ScreenLoading
	}
	return a.root.Screen()
}

func (a *App) onScreenChange(ctx context.Context, prev, next views.Screen) {
	a.logger.Debug(ctx, "screen changed", "from", prev.String(), "to", next.String())

	if prev == views.ScreenCatalog {
		a.unmountCatalog()
	}

	switch next {
	case views.ScreenAuth:
		a.println("Signed out. Commands: login, signup, help, exit")
	case views.ScreenCatalog:
		a.mountCatalog(ctx)
	}
}

func (a *App) mountCatalog(ctx context.Context) {
	vm := catalog.New(a.client, a.picker, a.dialog, a.logger)
	sub := vm.Observe(func() {
		if !a.busy.Load() {
			a.render(vm.State())
		}
	})

	a.mu.Lock()
	a.catalog = vm
	a.catalogSub = sub
	a.mu.Unlock()

	vm.Start(ctx)
}

func (a *App) unmountCatalog() {
	a.mu.Lock()
	vm, sub := a.catalog, a.catalogSub
	a.catalog, a.catalogSub = nil, nil
	a.mu.Unlock()

	if vm == nil {
		return
	}
	sub.Unsubscribe()
	vm.Close()
}

func (a *App) currentCatalog() *catalog.ViewModel {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalog
}

func (a *App) render(st catalog.State) {
	var buf bytes.Buffer
	renderCatalog(&buf, st)
	_, _ = a.out.Write(buf.Bytes())
}

func (a *App) showCatalog() {
	if vm := a.currentCatalog(); vm != nil {
		a.render(vm.State())
	}
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "connection mode changed", "mode", string(mode))
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// StartOnlineStatusWatcher pings the server every interval and tracks
// whether it is reachable. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.client.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
