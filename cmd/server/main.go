package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"Murmur/internal/api/handlers/realtime"
	"Murmur/internal/api/middleware"
	"Murmur/internal/api/routes"
	"Murmur/internal/config"
	"Murmur/internal/core/auth"
	"Murmur/internal/core/events"
	"Murmur/internal/core/follows"
	"Murmur/internal/core/messages"
	"Murmur/internal/core/posts"
	"Murmur/internal/core/reactions"
	"Murmur/internal/core/users"
	"Murmur/internal/core/visibility"
	postgresRepo "Murmur/internal/db/postgres"
	"Murmur/internal/kafka"
	"Murmur/internal/redisx"
	"Murmur/internal/storage/s3"
	"Murmur/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.OTelServiceName, cfg.OTelEndpoint)
	if err != nil {
		log.Fatal("Failed to initialize tracing:", err)
	}
	metrics := telemetry.NewMetrics()

	db, err := postgresRepo.Connect(ctx, cfg.DatabaseURL, postgresRepo.DefaultPoolConfig)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	if err := postgresRepo.Migrate(db, cfg.MigrationsDir); err != nil {
		log.Fatal(err)
	}
	log.Println("Migrations completed successfully")

	gdb, err := postgresRepo.NewGorm(db)
	if err != nil {
		log.Fatal(err)
	}

	storage, err := s3.New(s3.Config{
		Endpoint:   cfg.S3Endpoint,
		AccessKey:  cfg.S3AccessKey,
		SecretKey:  cfg.S3SecretKey,
		Bucket:     cfg.S3Bucket,
		UseSSL:     cfg.S3UseSSL,
		PresignTTL: cfg.PresignTTL,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := storage.EnsureBucket(ctx); err != nil {
		// Uploads fail until storage is reachable; reads keep working
		log.Printf("Warning: media bucket unavailable: %v", err)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers, kafka.Topics{
			Posts:  cfg.KafkaTopicPosts,
			Social: cfg.KafkaTopicSocial,
		})
		defer func() {
			if err := kp.Close(); err != nil {
				log.Printf("Failed to close event publisher: %v", err)
			}
		}()
		publisher = kp
		log.Printf("Publishing domain events to %v", cfg.KafkaBrokers)
	}

	// Initialize repositories
	userRepo := postgresRepo.NewUserRepository(gdb)
	followRepo := postgresRepo.NewFollowRepository(gdb)
	postRepo := postgresRepo.NewPostRepository(gdb)
	reactionRepo := postgresRepo.NewReactionRepository(gdb)
	messageRepo := postgresRepo.NewMessageRepository(gdb)

	// Initialize services
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	predicate := visibility.NewPredicate(postgresRepo.NewAccountLookup(gdb), followRepo)

	authService := auth.NewAuthService(userRepo, tokens)
	userService := users.NewUserService(userRepo, followRepo, storage)
	followService := follows.NewFollowService(followRepo, userRepo, publisher)
	postService := posts.NewPostService(postRepo, posts.NewFilterBuilder(followRepo), predicate, storage, publisher)
	reactionService := reactions.NewReactionService(reactionRepo, postService, predicate, publisher)

	g, gctx := errgroup.WithContext(ctx)

	hub := messages.NewHub()
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	// Without Redis every session lives on this instance
	var dispatcher messages.Dispatcher = hub
	if cfg.RedisAddr != "" {
		rdb, err := redisx.Open(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()

		broker := redisx.NewBroker(rdb, hub, redisx.DefaultChannel)
		g.Go(func() error { return broker.Run(gctx) })
		dispatcher = broker
		log.Printf("Relaying realtime deliveries through Redis at %s", cfg.RedisAddr)
	}
	messageService := messages.NewMessageService(messageRepo, followService, dispatcher, publisher)

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(metrics.Middleware)

	// Identify must run before the limiter so it can key on the user id
	authMiddleware := middleware.NewJWTAuthMiddleware(tokens)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	r.Use(authMiddleware.Identify)
	r.Use(rateLimiter.Middleware)

	routes.RegisterHealthRoutes(r, db)
	r.Handle("/metrics", metrics.Handler())
	routes.RegisterAuthRoutes(r, authService)
	routes.RegisterUserRoutes(r, userService, authMiddleware)
	routes.RegisterPostRoutes(r, postService, authMiddleware)
	routes.RegisterFollowerRoutes(r, followService, authMiddleware)
	routes.RegisterReactionRoutes(r, reactionService, authMiddleware)
	routes.RegisterMessageRoutes(r, messageService, authMiddleware)
	routes.RegisterRealtimeRoutes(r,
		realtime.NewHandler(messageService, hub, metrics, cfg.CORSAllowedOrigins), authMiddleware)

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           otelhttp.NewHandler(r, "murmur"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		log.Printf("Murmur API starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP shutdown error: %v", err)
		}
		return shutdownTracing(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
