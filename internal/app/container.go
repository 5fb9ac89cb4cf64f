package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sportspot/booking-backend/internal/api"
	"github.com/sportspot/booking-backend/internal/auth"
	"github.com/sportspot/booking-backend/internal/booking"
	"github.com/sportspot/booking-backend/internal/config"
	"github.com/sportspot/booking-backend/internal/court"
	"github.com/sportspot/booking-backend/internal/file"
	"github.com/sportspot/booking-backend/internal/payment"
	"github.com/sportspot/booking-backend/internal/payment/vnpay"
	"github.com/sportspot/booking-backend/internal/pkg/storage"
	"github.com/sportspot/booking-backend/internal/sport"
	"github.com/sportspot/booking-backend/internal/timeslot"
	"github.com/sportspot/booking-backend/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL, cfg.JWTRefreshTokenTTL)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, err
	}

	// File module
	fileRepo := file.NewPgxRepository(pool)
	fileService := file.NewService(fileRepo, store)

	// User module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, passwordHasher, cfg.ResetTokenTTL)

	// Sport module
	sportRepo := sport.NewPgxRepository(pool)
	sportService := sport.NewService(sportRepo)

	// Court module
	courtRepo := court.NewPgxRepository(pool)
	courtService := court.NewService(courtRepo, sportService)

	// Time slot module
	timeslotRepo := timeslot.NewPgxRepository(pool)
	timeslotService := timeslot.NewService(timeslotRepo)

	// Booking module
	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(bookingRepo, courtService, timeslotService, cfg.Location)

	// Payment module
	gateway := vnpay.NewClient(cfg.VNPayTmnCode, cfg.VNPayHashSecret, cfg.VNPayPayURL, cfg.VNPayReturnURL)
	paymentRepo := payment.NewPgxRepository(pool)
	paymentService := payment.NewService(paymentRepo, gateway, bookingService)

	router := api.NewRouter(api.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		AuthRatePerMinute: cfg.AuthRatePerMinute,
		UserService:       userService,
		FileService:       fileService,
		SportService:      sportService,
		CourtService:      courtService,
		TimeslotService:   timeslotService,
		BookingService:    bookingService,
		PaymentService:    paymentService,
		JWTManager:        jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
