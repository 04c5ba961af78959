// Package httpapi is the HTTP side of the server: a health probe, the email
// confirmation link target and public downloads from the local object store.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
	"github.com/dmitrijs2005/gamekeeper/internal/server/objectstore"
)

// ObjectOpener resolves a stored object to a file on disk.
type ObjectOpener interface {
	Open(bucket, name string) (path string, contentType string, err error)
}

// EmailConfirmer consumes confirmation tokens.
type EmailConfirmer interface {
	ConfirmEmail(ctx context.Context, token string) (*models.User, error)
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Gateway struct {
	address string
	objects ObjectOpener
	users   EmailConfirmer
	db      Pinger
	logger  logging.Logger
}

// NewGateway wires the routes. objects may be nil when objects live in S3.
func NewGateway(address string, objects ObjectOpener, users EmailConfirmer, db Pinger, l logging.Logger) *Gateway {
	return &Gateway{
		address: address,
		objects: objects,
		users:   users,
		db:      db,
		logger:  l.With("module", "http_gateway"),
	}
}

func (g *Gateway) Handler() http.Handler {
	router := gin.New()
	router.Use(LoggingMiddleware(g.logger))
	router.Use(gin.CustomRecovery(HandlePanics(g.logger)))

	router.GET("/health", g.health)

	authV1 := router.Group("auth/v1")
	{
		authV1.GET("/verify", g.verify)
	}

	if g.objects != nil {
		router.GET(objectstore.PublicPathPrefix+"/:bucket/*name", g.publicObject)
	}

	return router
}

// Run serves until ctx is cancelled.
func (g *Gateway) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              g.address,
		Handler:           g.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		g.logger.Info(ctx, "Stopping HTTP gateway...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	g.logger.Info(ctx, "Starting HTTP gateway", "address", g.address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (g *Gateway) health(c *gin.Context) {
	if g.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := g.db.PingContext(ctx); err != nil {
			g.logger.Warn(ctx, "health check: database unreachable", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (g *Gateway) verify(c *gin.Context) {
	token := c.Query("token")
	user, err := g.users.ConfirmEmail(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Email link is invalid or has expired"})
			return
		}
		g.logger.Error(c.Request.Context(), "confirm email failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email confirmed", "email": user.Email})
}

func (g *Gateway) publicObject(c *gin.Context) {
	bucket := c.Param("bucket")
	name := strings.TrimPrefix(c.Param("name"), "/")

	path, contentType, err := g.objects.Open(bucket, name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Object not found"})
		return
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=3600")
	c.File(path)
}
