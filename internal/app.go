package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"medbook-api/config"
	"medbook-api/internal/application/ports"
	"medbook-api/internal/application/services"
	mongoDB "medbook-api/internal/infrastructure/db/mongo"
	assignmentDB "medbook-api/internal/infrastructure/db/mongo/assignment"
	facilityDB "medbook-api/internal/infrastructure/db/mongo/facility"
	userDB "medbook-api/internal/infrastructure/db/mongo/user"
	"medbook-api/internal/infrastructure/jwt"
	"medbook-api/internal/infrastructure/metrics"
	"medbook-api/internal/infrastructure/mq"
	"medbook-api/internal/infrastructure/oauth"
	"medbook-api/internal/infrastructure/password"
	"medbook-api/internal/infrastructure/tokenstore"
	"medbook-api/internal/interface/api/rest"
	"medbook-api/internal/interface/api/rest/middleware"
	"medbook-api/pkg/mailworker"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	mongo      *mongo.Client
	db         *mongo.Database
	tokens     *tokenstore.Store
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.MailConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// config
	if err = godotenv.Load(".env"); err != nil {
		logger.Fatal("error loading .env file", zap.Error(err))
	}
	cfg := config.Load()

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	corsCfg := cors.DefaultConfig()
	if cfg.App.CORSOrigins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(cfg.App.CORSOrigins, ",")
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// httpServer
	httpSrv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	// db
	mongoURI, err := cfg.MongoURI()
	if err != nil {
		logger.Fatal("Mongo config error", zap.Error(err))
	}
	client, db, err := mongoDB.New(ctx, logger, mongoURI, cfg.Mongo.Name)
	if err != nil {
		logger.Fatal("failed to connect to mongo", zap.Error(err))
	}

	// token store
	tokens, err := tokenstore.New(ctx, logger, cfg.Redis, cfg.App.RefreshTokenTTL, cfg.App.ResetTokenTTL)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}
	// mail consumer
	mailConsumer := mailworker.New(cfg.MQ, logger, rbMQ.GetConn())
	if err = mailConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = mailConsumer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	return &App{
		logger:     logger,
		cfg:        cfg,
		mongo:      client,
		db:         db,
		tokens:     tokens,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         rbMQ,
		mqConsumer: mailConsumer,
	}, nil
}

func (a *App) Close() {
	if a.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.mongo.Disconnect(ctx)
	}
	if a.tokens != nil {
		_ = a.tokens.Close()
	}
	if a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.cfg.App.Host+":"+a.cfg.App.Port))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.mqConsumer.DeliveryWorker(ctx)
		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	facilityRepo := facilityDB.NewRepository(a.db)
	hasher := password.New(a.cfg.App.BcryptCost)
	userRepo := userDB.NewRepository(a.db, hasher, facilityRepo)
	assignmentRepo := assignmentDB.NewRepository(a.db)

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret, a.cfg.App.AccessTokenTTL, a.cfg.App.RefreshTokenTTL)
	oauthClient := oauth.New(a.cfg.OAuth)
	authService := services.NewAuthService(userRepo, jwtService, hasher, a.tokens, oauthClient, a.mq, a.cfg.Mail, a.mCounter)
	userService := services.NewUserService(userRepo, a.tokens, a.mCounter)
	assignmentService := services.NewAssignmentService(assignmentRepo, userRepo)
	facilityService := services.NewFacilityService(facilityRepo)

	// controllers
	rest.NewAuthController(a.router, authService, userService, a.logger, jwtService)
	rest.NewUserController(a.router, userService, authService, assignmentService, a.logger, jwtService)
	rest.NewFacilityController(a.router, facilityService, userService, a.logger, jwtService)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
