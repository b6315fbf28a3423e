package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/finddreams/find-dreams/pkg/auth"
	"github.com/finddreams/find-dreams/pkg/database"
	"github.com/finddreams/find-dreams/pkg/domain"
	"github.com/finddreams/find-dreams/pkg/llm"
	"github.com/finddreams/find-dreams/pkg/llm/openai"
	"github.com/finddreams/find-dreams/pkg/llm/samurai"
	"github.com/finddreams/find-dreams/pkg/logger"
	"github.com/finddreams/find-dreams/pkg/repository"
	"github.com/finddreams/find-dreams/pkg/server/handlers"
	"github.com/finddreams/find-dreams/pkg/server/middleware"
	"github.com/finddreams/find-dreams/pkg/services"
	"github.com/finddreams/find-dreams/pkg/storage"
)

type Config struct {
	Addr        string `env:"ADDR" envDefault:":8080"`
	TokenSecret string `env:"TOKEN_SECRET,required"`

	PgURL    string `env:"DATABASE_URL"`
	PgHost   string `env:"DB_HOST" envDefault:"localhost:5432"`
	BunDebug int    `env:"BUNDEBUG" envDefault:"0"`

	SamuraiBaseURL  string `env:"SAMURAI_API_BASE_URL,required"`
	SamuraiImageKey string `env:"SAMURAI_API_IMAGE_KEY,required"`
	OpenAIToken     string `env:"OPEN_AI_TOKEN"`
	ChatModel       string `env:"CHAT_MODEL" envDefault:"gpt-4o-mini"`

	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`

	S3Endpoint      string `env:"S3_ENDPOINT"`
	S3Region        string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Bucket        string `env:"S3_BUCKET,required"`
	S3AccessKey     string `env:"S3_ACCESS_KEY,required"`
	S3SecretKey     string `env:"S3_SECRET_KEY,required"`
	S3PublicBaseURL string `env:"S3_PUBLIC_BASE_URL,required"`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	svcGroup, err := setupServices(ctx)
	if err != nil {
		return err
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return svcGroup.Start(ctx)
}

func setupServices(ctx context.Context) (services.Group, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	var svcGroup services.Group

	db, err := database.NewDB(cfg.PgURL, cfg.PgHost)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	tokens, err := auth.NewTokenManager(cfg.TokenSecret)
	if err != nil {
		return nil, fmt.Errorf("creating token manager: %w", err)
	}

	samuraiClient, err := samurai.NewClient(cfg.SamuraiBaseURL, cfg.SamuraiImageKey)
	if err != nil {
		return nil, fmt.Errorf("creating samurai client: %w", err)
	}

	imageProviders := map[string]llm.ImageGenerator{
		domain.GeminiFlashModel: samuraiClient,
	}

	// Enhancement is best effort: without an OpenAI token the pipeline
	// simply uses seed prompts as-is.
	var enhancer handlers.PromptEnhancer
	if cfg.OpenAIToken != "" {
		openAIClient, err := openai.NewClient(cfg.OpenAIToken)
		if err != nil {
			return nil, fmt.Errorf("creating open ai client: %w", err)
		}
		enhancer = openAIClient
		imageProviders[domain.DallE2Model] = openAIClient
		imageProviders[domain.DallE3Model] = openAIClient
	}
	imageClient := llm.NewMultiProviderImageClient(imageProviders)

	blobs, err := storage.NewClient(ctx, storage.Config{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	userRepository := repository.NewUserRepository(db)
	imageRepository := repository.NewImageRepository(db)
	journeyRepository := repository.NewJourneyRepository()

	galleryCache := gocache.New(30*time.Second, 5*time.Minute)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Auth(tokens))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	api.POST("/auth/signup", handlers.SignUp(userRepository, tokens))
	api.POST("/auth/signin", handlers.SignIn(userRepository, tokens))
	api.POST("/auth/anonymous", handlers.SignInAnonymous(userRepository, tokens))
	if cfg.GoogleClientID != "" {
		googleVerifier, err := auth.NewGoogleVerifier(cfg.GoogleClientID)
		if err != nil {
			return nil, fmt.Errorf("creating google verifier: %w", err)
		}
		api.POST("/auth/google", handlers.SignInGoogle(googleVerifier, userRepository, tokens))
	}

	api.POST("/journeys", handlers.StartJourney(journeyRepository))
	api.POST("/journeys/:id/answer", handlers.AnswerQuestion(journeyRepository))
	api.POST("/journeys/:id/back", handlers.PreviousQuestion(journeyRepository))
	api.DELETE("/journeys/:id", handlers.AbandonJourney(journeyRepository))

	api.POST("/images/generate",
		middleware.RateLimit(rate.Every(10*time.Second), 3),
		handlers.GenerateImage(journeyRepository, enhancer, cfg.ChatModel, imageClient))
	api.POST("/images/save", middleware.RequireAuth(), handlers.SaveImage(blobs, imageRepository, galleryCache))

	api.GET("/gallery", handlers.ListGallery(imageRepository, galleryCache))
	api.GET("/gallery/mine", middleware.RequireAuth(), handlers.ListMyImages(imageRepository))
	api.POST("/gallery/:id/like", middleware.RequireAuth(), handlers.ToggleLike(imageRepository, galleryCache))

	httpServer, err := services.NewHTTPServer(cfg.Addr, router)
	if err != nil {
		return nil, fmt.Errorf("creating http server: %w", err)
	}
	svcGroup = append(svcGroup, httpServer)

	return svcGroup, nil
}
