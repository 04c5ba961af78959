package realtime

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gamekeeper/internal/api"
	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
)

const insertPayload = `{"type":"INSERT","table":"games","record":{"id":7,"title":"Chess","image_url":null,"user_id":"u1","created_at":"2025-01-02T10:00:00.123456+00:00"},"old_record":null,"commit_timestamp":"2025-01-02T10:00:00.123456+00:00"}`

func TestParsePayload(t *testing.T) {
	ev, err := ParsePayload(insertPayload)
	require.NoError(t, err)
	assert.Equal(t, api.EventInsert, ev.Type)
	assert.Equal(t, "games", ev.Table)
	require.NotNil(t, ev.Record)
	assert.Equal(t, int64(7), ev.Record.ID)
	assert.Equal(t, "u1", ev.Record.UserID)
	assert.Nil(t, ev.Record.ImageURL)
	assert.Nil(t, ev.OldRecord)
	assert.Equal(t, 2025, ev.CommitTimestamp.Year())

	ev, err = ParsePayload(`{"type":"UPDATE","table":"games","record":{"id":7,"user_id":"u1"},"old_record":{"id":7,"user_id":"u1"},"commit_timestamp":"2025-01-02T10:00:00.123456+00:00"}`)
	require.NoError(t, err)
	require.NotNil(t, ev.OldRecord)
	assert.Equal(t, "u1", ev.OldRecord.UserID)
	assert.Empty(t, ev.Record.Title)

	_, err = ParsePayload(`{"type":"TRUNCATE"}`)
	assert.ErrorIs(t, err, ErrUnknownEventType)

	_, err = ParsePayload(`not json`)
	assert.Error(t, err)
}

type fakeConn struct {
	mu      sync.Mutex
	execs   []string
	notes   chan *pgconn.Notification
	closed  bool
	execErr error
}

func (c *fakeConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.execs = append(c.execs, sql)
	return pgconn.CommandTag{}, c.execErr
}

func (c *fakeConn) WaitForNotification(ctx context.Context) (*pgconn.Notification, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case n, ok := <-c.notes:
		if !ok {
			return nil, errors.New("connection lost")
		}
		return n, nil
	}
}

func (c *fakeConn) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

type recordingPublisher struct {
	events chan *api.ChangeEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, ev *api.ChangeEvent) {
	p.events <- ev
}

func TestListener_PublishesNotifications(t *testing.T) {
	conn := &fakeConn{notes: make(chan *pgconn.Notification, 3)}
	conn.notes <- &pgconn.Notification{Channel: "other", Payload: insertPayload}
	conn.notes <- &pgconn.Notification{Channel: common.GamesChannel, Payload: "garbage"}
	conn.notes <- &pgconn.Notification{Channel: common.GamesChannel, Payload: insertPayload}

	pub := &recordingPublisher{events: make(chan *api.ChangeEvent, 1)}
	l := NewListener(func(context.Context) (Conn, error) { return conn, nil }, pub, logging.Nop{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	select {
	case ev := <-pub.events:
		assert.Equal(t, int64(7), ev.Record.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no event published")
	}

	cancel()
	require.NoError(t, <-done)

	conn.mu.Lock()
	defer conn.mu.Unlock()
	assert.Equal(t, []string{`LISTEN "games_changes"`}, conn.execs)
	assert.True(t, conn.closed)
}

func TestListener_Reconnects(t *testing.T) {
	first := &fakeConn{notes: make(chan *pgconn.Notification)}
	close(first.notes)
	second := &fakeConn{notes: make(chan *pgconn.Notification, 1)}
	second.notes <- &pgconn.Notification{Channel: common.GamesChannel, Payload: insertPayload}

	var mu sync.Mutex
	dials := 0
	dial := func(context.Context) (Conn, error) {
		mu.Lock()
		defer mu.Unlock()
		dials++
		switch dials {
		case 1:
			return nil, errors.New("refused")
		case 2:
			return first, nil
		default:
			return second, nil
		}
	}

	pub := &recordingPublisher{events: make(chan *api.ChangeEvent, 1)}
	l := NewListener(dial, pub, logging.Nop{})
	l.ReconnectDelay = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	select {
	case ev := <-pub.events:
		assert.Equal(t, api.EventInsert, ev.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("no event after reconnect")
	}
	cancel()
	require.NoError(t, <-done)
}
