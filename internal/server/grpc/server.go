// Package grpc exposes the GameKeeper service over gRPC: auth, the games
// table, object storage and the WatchGames change stream.
package grpc

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/gamekeeper/internal/api"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
	"github.com/dmitrijs2005/gamekeeper/internal/server/services"
)

type UserService interface {
	SignUp(ctx context.Context, email, password string) (*models.User, *services.Session, error)
	SignIn(ctx context.Context, email, password string) (*services.Session, error)
	SignOut(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*services.Session, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	ConfirmEmail(ctx context.Context, token string) (*models.User, error)
}

type GameService interface {
	List(ctx context.Context, callerID string) ([]*models.Game, error)
	Insert(ctx context.Context, callerID, title, userID string) (*models.Game, error)
	Update(ctx context.Context, callerID string, id int64, patch models.GamePatch) (*models.Game, error)
	Delete(ctx context.Context, callerID string, id int64) error
}

type StorageService interface {
	Upload(ctx context.Context, userID, bucket, name, contentType string, data []byte) (string, error)
	PublicURL(bucket, name string) (string, error)
}

// Subscriber hands out per-user change event channels.
type Subscriber interface {
	Subscribe(userID string) (string, <-chan *api.ChangeEvent, func())
}

// Options configures the non-service parts of GRPCServer.
type Options struct {
	Address       string
	SecretKey     string
	APIKey        string
	MaxRecvSize   int
	ShutdownGrace time.Duration
}

type GRPCServer struct {
	api.UnimplementedGameKeeperServer
	address       string
	users         UserService
	games         GameService
	storage       StorageService
	changes       Subscriber
	logger        logging.Logger
	jwtSecret     []byte
	apiKey        string
	maxRecvSize   int
	shutdownGrace time.Duration
	health        *health.Server
}

func NewGRPCServer(opts Options, l logging.Logger, us UserService, gs GameService, ss StorageService, sub Subscriber) *GRPCServer {
	grace := opts.ShutdownGrace
	if grace <= 0 {
		grace = 5 * time.Second
	}
	return &GRPCServer{
		address:       opts.Address,
		users:         us,
		games:         gs,
		storage:       ss,
		changes:       sub,
		logger:        l.With("module", "grpc_server"),
		jwtSecret:     []byte(opts.SecretKey),
		apiKey:        opts.APIKey,
		maxRecvSize:   opts.MaxRecvSize,
		shutdownGrace: grace,
		health:        health.NewServer(),
	}
}

// NewServer builds a *grpc.Server with the service, the interceptors and the
// health service registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(s.recoveryInterceptor, s.loggingInterceptor, s.authInterceptor),
		grpc.ChainStreamInterceptor(s.streamAuthInterceptor),
	}
	if s.maxRecvSize > 0 {
		opts = append(opts, grpc.MaxRecvMsgSize(s.maxRecvSize))
	}

	srv := grpc.NewServer(opts...)
	api.RegisterGameKeeperServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	return srv
}

// Run serves until ctx is cancelled, then drains in-flight calls. Streams
// still open after the grace period are cut.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(s.shutdownGrace):
			srv.Stop()
		}
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}
