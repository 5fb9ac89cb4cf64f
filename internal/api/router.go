package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sportspot/booking-backend/internal/auth"
	"github.com/sportspot/booking-backend/internal/booking"
	bookingHttp "github.com/sportspot/booking-backend/internal/booking/http"
	"github.com/sportspot/booking-backend/internal/court"
	courtHttp "github.com/sportspot/booking-backend/internal/court/http"
	"github.com/sportspot/booking-backend/internal/file"
	fileHttp "github.com/sportspot/booking-backend/internal/file/http"
	"github.com/sportspot/booking-backend/internal/payment"
	paymentHttp "github.com/sportspot/booking-backend/internal/payment/http"
	"github.com/sportspot/booking-backend/internal/sport"
	sportHttp "github.com/sportspot/booking-backend/internal/sport/http"
	"github.com/sportspot/booking-backend/internal/timeslot"
	timeslotHttp "github.com/sportspot/booking-backend/internal/timeslot/http"
	"github.com/sportspot/booking-backend/internal/user"
	userHttp "github.com/sportspot/booking-backend/internal/user/http"
)

// Config holds everything the router needs to assemble middleware and
// register module routes.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	AuthRatePerMinute int

	UserService     user.Service
	FileService     file.Service
	SportService    sport.Service
	CourtService    court.Service
	TimeslotService timeslot.Service
	BookingService  booking.Service
	PaymentService  payment.Service

	JWTManager *auth.JWTManager
}

// NewRouter assembles the HTTP engine: global middleware (recovery, CORS),
// per-module handlers, and the /api route tree.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	ownerMiddleware := auth.RequireRole(auth.RoleOwner, auth.RoleAdmin)
	adminMiddleware := auth.RequireRole(auth.RoleAdmin)
	rateLimiter := auth.RateLimit(cfg.AuthRatePerMinute)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.FileService, cfg.JWTManager)
	fileHandler := fileHttp.NewHandler(cfg.FileService)
	sportHandler := sportHttp.NewHandler(cfg.SportService)
	courtHandler := courtHttp.NewHandler(cfg.CourtService, cfg.FileService)
	timeslotHandler := timeslotHttp.NewHandler(cfg.TimeslotService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	paymentHandler := paymentHttp.NewHandler(cfg.PaymentService)

	api := r.Group("/api")
	{
		userHttp.RegisterRoutes(api, userHandler, authMiddleware, adminMiddleware, rateLimiter)
		fileHttp.RegisterRoutes(api, fileHandler)
		sportHttp.RegisterRoutes(api, sportHandler, authMiddleware, adminMiddleware)
		courtHttp.RegisterRoutes(api, courtHandler, authMiddleware, ownerMiddleware)
		timeslotHttp.RegisterRoutes(api, timeslotHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(api, bookingHandler, authMiddleware, ownerMiddleware, adminMiddleware)
		paymentHttp.RegisterRoutes(api, paymentHandler, authMiddleware)
	}

	return r
}
