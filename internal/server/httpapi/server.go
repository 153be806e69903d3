package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/avlasov/chatauth/internal/logging"
	"github.com/avlasov/chatauth/internal/server/auth"
	"github.com/avlasov/chatauth/internal/server/config"
	"github.com/avlasov/chatauth/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	router  *gin.Engine
	logger  logging.Logger
}

func NewServer(cfg *config.Config, l logging.Logger, us *users.Service) *Server {
	if !cfg.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := NewHandler(us, auth.NewCookiePolicy(cfg.TokenValidityDuration, !cfg.DevMode), l)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(l.With("module", "http_server")))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	registerRoutes(router, handler)

	return &Server{
		address: cfg.EndpointAddrHTTP,
		router:  router,
		logger:  l.With("module", "http_server"),
	}
}

func registerRoutes(router *gin.Engine, h *Handler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/auth")
	{
		api.POST("/signup", h.Signup)
		api.POST("/login", h.Login)
		api.POST("/logout", h.Logout)
		api.PUT("/update-profile", h.RequireAuth(), h.UpdateProfile)
		api.GET("/check", h.RequireAuth(), h.CheckAuth)
	}
}

// Run serves requests until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.router}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
