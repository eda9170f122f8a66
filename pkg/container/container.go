package container

import (
	"context"
	"fmt"
	"time"

	"pharmacy-backend/internal/config"
	"pharmacy-backend/internal/domains/auth"
	"pharmacy-backend/internal/domains/branch"
	"pharmacy-backend/internal/domains/category"
	"pharmacy-backend/internal/domains/city"
	"pharmacy-backend/internal/domains/country"
	"pharmacy-backend/internal/domains/coupon"
	"pharmacy-backend/internal/domains/manufacturer"
	"pharmacy-backend/internal/domains/order"
	"pharmacy-backend/internal/domains/presentation"
	"pharmacy-backend/internal/domains/product"
	"pharmacy-backend/internal/domains/promo"
	"pharmacy-backend/internal/domains/state"
	"pharmacy-backend/internal/domains/user"
	infracache "pharmacy-backend/internal/infrastructure/cache"
	"pharmacy-backend/internal/infrastructure/database"
	"pharmacy-backend/internal/infrastructure/queue"
	"pharmacy-backend/internal/infrastructure/storage"
	"pharmacy-backend/pkg/cache"
	"pharmacy-backend/pkg/jwt"
	"pharmacy-backend/pkg/logger"
)

// Container wires the whole application together: config, database,
// cache, queue, storage, then repositories, services and handlers.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache
	JWT    *jwt.Manager
	Queue  *queue.Client

	CountryHandler      *country.Handler
	StateHandler        *state.Handler
	CityHandler         *city.Handler
	BranchHandler       *branch.Handler
	ManufacturerHandler *manufacturer.Handler
	CategoryHandler     *category.Handler
	PresentationHandler *presentation.Handler
	ProductHandler      *product.Handler
	UserHandler         *user.Handler
	AuthHandler         *auth.Handler
	CouponHandler       *coupon.Handler
	PromoHandler        *promo.Handler
	OrderHandler        *order.Handler

	UserOTPRepository user.OTPRepository
}

func New(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	cacheClient := infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if redisCache, ok := cacheClient.(*infracache.RedisCache); ok {
		if err := redisCache.Connect(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.SessionTTLHours)*time.Hour)

	queueClient := queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	objectStorage, err := storage.NewMinIOStorage(
		cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey,
		cfg.MinIO.Bucket, cfg.MinIO.UseSSL,
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create object storage: %w", err)
	}

	pool := db.Pool

	countryRepo := country.NewPostgresRepository(pool)
	stateRepo := state.NewPostgresRepository(pool)
	cityRepo := city.NewPostgresRepository(pool)
	branchRepo := branch.NewPostgresRepository(pool)
	manufacturerRepo := manufacturer.NewPostgresRepository(pool)
	categoryRepo := category.NewPostgresRepository(pool)
	presentationRepo := presentation.NewPostgresRepository(pool)
	productRepo := product.NewPostgresRepository(pool)
	userRepo := user.NewPostgresRepository(pool)
	otpRepo := user.NewPostgresOTPRepository(pool)
	couponRepo := coupon.NewPostgresRepository(pool)
	promoRepo := promo.NewPostgresRepository(pool)
	orderRepo := order.NewPostgresRepository(pool)

	countryService := country.NewService(countryRepo)
	stateService := state.NewService(stateRepo, countryRepo)
	cityService := city.NewService(cityRepo, stateRepo)
	branchService := branch.NewService(branchRepo, cityRepo)
	manufacturerService := manufacturer.NewService(manufacturerRepo, countryRepo)
	categoryService := category.NewService(categoryRepo)
	presentationService := presentation.NewService(presentationRepo)
	productService := product.NewService(productRepo, manufacturerRepo, categoryRepo, presentationRepo, objectStorage, cacheClient)
	userService := user.NewService(userRepo, otpRepo, branchRepo)
	authService := auth.NewService(userRepo, otpRepo, jwtManager, queueClient,
		cfg.Auth.AdminOrigins, time.Duration(cfg.Auth.OTPTTLMins)*time.Minute)
	couponService := coupon.NewService(couponRepo)
	promoService := promo.NewService(promoRepo, productRepo)
	orderService := order.NewService(orderRepo, userRepo, branchRepo, productRepo, order.NewExcelExporter())

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cacheClient,
		JWT:    jwtManager,
		Queue:  queueClient,

		CountryHandler:      country.NewHandler(countryService),
		StateHandler:        state.NewHandler(stateService),
		CityHandler:         city.NewHandler(cityService),
		BranchHandler:       branch.NewHandler(branchService),
		ManufacturerHandler: manufacturer.NewHandler(manufacturerService),
		CategoryHandler:     category.NewHandler(categoryService),
		PresentationHandler: presentation.NewHandler(presentationService),
		ProductHandler:      product.NewHandler(productService),
		UserHandler:         user.NewHandler(userService),
		AuthHandler:         auth.NewHandler(authService),
		CouponHandler:       coupon.NewHandler(couponService),
		PromoHandler:        promo.NewHandler(promoService),
		OrderHandler:        order.NewHandler(orderService),

		UserOTPRepository: otpRepo,
	}, nil
}

// Cleanup releases every external connection; called on shutdown.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Error("failed to close queue client", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("container cleaned up", nil)
}
