package client

import (
	"context"
	"errors"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/gamekeeper/internal/api"
	"github.com/dmitrijs2005/gamekeeper/internal/client/models"
	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
)

// tokenExpiredMessage is the status message the server uses for an access
// token past its expiry.
const tokenExpiredMessage = "token expired"

// TokenStore persists the session between runs.
type TokenStore interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
}

// AuthListener receives session transitions. session is nil on SIGNED_OUT.
type AuthListener func(event models.AuthEvent, session *models.Session)

type GRPCClient struct {
	endpointURL string
	apiKey      string
	conn        *grpc.ClientConn
	client      api.GameKeeperClient
	health      healthpb.HealthClient
	store       TokenStore
	logger      logging.Logger

	mu      sync.RWMutex
	session *models.Session

	refreshMu sync.Mutex

	listenersMu  sync.Mutex
	listeners    map[int]AuthListener
	nextListener int
}

// NewGRPCClient connects lazily to endpointURL and restores the persisted
// session from store. Extra dial options are appended, which is how tests
// plug in an in-memory transport.
func NewGRPCClient(ctx context.Context, endpointURL, apiKey string, store TokenStore, l logging.Logger, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{
		endpointURL: endpointURL,
		apiKey:      apiKey,
		store:       store,
		logger:      l.With("module", "grpc_client"),
		listeners:   make(map[int]AuthListener),
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName)),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
		grpc.WithStreamInterceptor(c.streamInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewGameKeeperClient(conn)
	c.health = healthpb.NewHealthClient(conn)

	c.restoreSession(ctx)
	return c, nil
}

func (c *GRPCClient) restoreSession(ctx context.Context) {
	if c.store == nil {
		return
	}
	s, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Warn(ctx, "discarding stored session", "error", err)
		_ = c.store.Clear(ctx)
		return
	}
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) currentSession() *models.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *GRPCClient) accessToken() string {
	if s := c.currentSession(); s != nil {
		return s.AccessToken
	}
	return ""
}

// setSession replaces the cached session, persists it and notifies
// listeners with event.
func (c *GRPCClient) setSession(ctx context.Context, s *models.Session, event models.AuthEvent) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()

	if c.store != nil {
		var err error
		if s == nil {
			err = c.store.Clear(ctx)
		} else {
			err = c.store.Save(ctx, s)
		}
		if err != nil {
			c.logger.Warn(ctx, "persisting session failed", "error", err)
		}
	}
	c.emit(event, s)
}

// OnAuthStateChange registers fn for session transitions.
func (c *GRPCClient) OnAuthStateChange(fn AuthListener) Subscription {
	c.listenersMu.Lock()
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn
	c.listenersMu.Unlock()

	return NewSubscription(func() {
		c.listenersMu.Lock()
		delete(c.listeners, id)
		c.listenersMu.Unlock()
	})
}

func (c *GRPCClient) emit(event models.AuthEvent, s *models.Session) {
	c.listenersMu.Lock()
	fns := make([]AuthListener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.listenersMu.Unlock()

	for _, fn := range fns {
		fn(event, s)
	}
}

func (c *GRPCClient) withCredentials(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Set(common.APIKeyHeaderName, c.apiKey)
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == tokenExpiredMessage
}

func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	token := c.accessToken()
	err := invoker(c.withCredentials(ctx, token), method, req, reply, cc, opts...)
	if err == nil || method == api.GameKeeper_RefreshToken_FullMethodName || !isTokenExpired(err) {
		return err
	}

	if rerr := c.refresh(ctx, token); rerr != nil {
		return err
	}
	return invoker(c.withCredentials(ctx, c.accessToken()), method, req, reply, cc, opts...)
}

func (c *GRPCClient) streamInterceptor(
	ctx context.Context,
	desc *grpc.StreamDesc,
	cc *grpc.ClientConn,
	method string,
	streamer grpc.Streamer,
	opts ...grpc.CallOption,
) (grpc.ClientStream, error) {
	return streamer(c.withCredentials(ctx, c.accessToken()), desc, cc, method, opts...)
}

// refresh exchanges the refresh token for a new session. staleToken is the
// access token the failed call used; when another goroutine has already
// replaced it there is nothing to do. A rejected refresh signs the user out.
func (c *GRPCClient) refresh(ctx context.Context, staleToken string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	current := c.currentSession()
	if current == nil {
		return ErrNoSession
	}
	if current.AccessToken != staleToken {
		return nil
	}

	resp, err := c.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: current.RefreshToken})
	if err != nil {
		mapped := mapError(err)
		if errors.Is(mapped, ErrUnauthorized) {
			c.logger.Info(ctx, "refresh token rejected, signing out")
			c.setSession(ctx, nil, models.SignedOut)
		}
		return mapped
	}

	c.setSession(ctx, fromAPISession(resp.Session), models.TokenRefreshed)
	return nil
}
