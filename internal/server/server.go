package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/auth"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/booking"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/clock"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/config"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/gym"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/session"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/wallet"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	config *config.Config
}

type Deps struct {
	Ledger   *wallet.Ledger
	Bookings *booking.Store
	Catalog  gym.Catalog
	Clock    clock.Clock
}

func New(cfg *config.Config, deps Deps) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	walletHandler := wallet.NewHandler(deps.Ledger)
	bookingHandler := booking.NewHandler(deps.Bookings, deps.Ledger, deps.Clock, func(b *booking.Booking) string {
		return session.Generate(b).Encode()
	})
	sessionHandler := session.NewHandler(deps.Bookings, deps.Clock)
	gymHandler := gym.NewHandler(deps.Catalog)
	authHandler := newAuthHandler(cfg)

	public := router.Group("/auth")
	{
		public.POST("/login", authHandler.Login)
		public.POST("/refresh", authHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)

	owner := router.Group("/")
	owner.Use(authMiddleware, auth.RequireRole(auth.RoleOwner))
	{
		owner.GET("/wallet", walletHandler.GetWallet)
		owner.POST("/wallet/topup", walletHandler.TopUp)
		owner.GET("/wallet/transactions", walletHandler.ListTransactions)
		owner.GET("/wallet/integrity", walletHandler.Integrity)

		owner.GET("/gyms", gymHandler.List)

		owner.POST("/bookings", bookingHandler.Create)
		owner.GET("/bookings", bookingHandler.ListMine)
		owner.GET("/bookings/active", bookingHandler.Active)
		owner.POST("/bookings/:bookingID/extend", bookingHandler.Extend)
		owner.POST("/bookings/:bookingID/cancel", bookingHandler.Cancel)
		owner.GET("/bookings/:bookingID/qr", sessionHandler.GetQR)
		owner.GET("/bookings/:bookingID/receipt", bookingHandler.Receipt)
	}

	operator := router.Group("/")
	operator.Use(authMiddleware, auth.RequireRole(auth.RoleOperator))
	{
		operator.POST("/verify", sessionHandler.Verify)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	return &Server{
		router: router,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the engine for handler tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
