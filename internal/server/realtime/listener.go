package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/gamekeeper/internal/api"
	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
)

const defaultReconnectDelay = 2 * time.Second

// Conn is the part of *pgx.Conn the listener needs.
type Conn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

// Dialer opens a dedicated connection for LISTEN.
type Dialer func(ctx context.Context) (Conn, error)

// PgxDialer connects with pgx using dsn.
func PgxDialer(dsn string) Dialer {
	return func(ctx context.Context) (Conn, error) {
		conn, err := pgx.Connect(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
}

// Publisher receives decoded change events.
type Publisher interface {
	Publish(ctx context.Context, ev *api.ChangeEvent)
}

// Listener keeps a LISTEN session on the games channel open and publishes
// every notification. Lost connections are re-established after
// ReconnectDelay.
type Listener struct {
	dial           Dialer
	channel        string
	publisher      Publisher
	logger         logging.Logger
	ReconnectDelay time.Duration
}

func NewListener(dial Dialer, p Publisher, l logging.Logger) *Listener {
	return &Listener{
		dial:           dial,
		channel:        common.GamesChannel,
		publisher:      p,
		logger:         l.With("module", "realtime_listener"),
		ReconnectDelay: defaultReconnectDelay,
	}
}

// Run blocks until ctx is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}
		l.logger.Error(ctx, "listen session ended", "error", err)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.ReconnectDelay):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.dial(ctx)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	l.logger.Info(ctx, "listening for changes", "channel", l.channel)

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		if n.Channel != l.channel {
			continue
		}

		ev, err := ParsePayload(n.Payload)
		if err != nil {
			l.logger.Warn(ctx, "bad notification payload", "error", err)
			continue
		}
		l.publisher.Publish(ctx, ev)
	}
}

// ErrUnknownEventType is returned for payloads whose type is not INSERT,
// UPDATE or DELETE.
var ErrUnknownEventType = errors.New("unknown event type")

// ParsePayload decodes a notify_games_change payload.
func ParsePayload(payload string) (*api.ChangeEvent, error) {
	var ev api.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	switch ev.Type {
	case api.EventInsert, api.EventUpdate, api.EventDelete:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, ev.Type)
	}
	return &ev, nil
}
