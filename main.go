package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"social-manager/infrastructure/cache"
	"social-manager/infrastructure/clients/generator"
	youtubeclient "social-manager/infrastructure/clients/youtube"
	"social-manager/infrastructure/configuration"
	"social-manager/infrastructure/crypto"
	"social-manager/infrastructure/logger"
	"social-manager/infrastructure/persistence"
	"social-manager/infrastructure/pubsub"
	httpHandler "social-manager/interfaces/http"
	"social-manager/server"
	"social-manager/usecase"
)

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence),
	// then re-evaluate the configuration against the merged environment.
	configuration.LoadEnvFromFile("config.env", ".env")
	configuration.LoadConfig()

	db, err := persistence.NewPostgreSQLDb(configuration.C.Database.Psql)
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Cannot connect to PostgreSQL")
	}
	if err := persistence.EnsureSchema(db); err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Schema migration failed")
	}

	vault, err := crypto.NewVault(crypto.Config{MasterKeyHex: configuration.C.Vault.MasterKeyHex})
	if err != nil {
		logger.GetLogger().WithField("error", err).Fatal("Credential vault unavailable")
	}

	redisClient := cache.NewRedisClient(
		configuration.C.Redis.Host,
		configuration.C.Redis.Port,
		configuration.C.Redis.Password,
	)
	healthCache := cache.NewHealthCache(redisClient)

	pubSubClient := pubsub.NewPubSubClient(ctx, configuration.C.Pubsub.ProjectID)
	publishEvents := pubsub.NewNotifier(pubSubClient, configuration.C.Pubsub.Topic)

	brandRepository := persistence.NewBrandRepository(db)
	channelRepository := persistence.NewChannelRepository(db)
	scriptRepository := persistence.NewScriptRepository(db)
	jobRepository := persistence.NewJobRepository(db)
	publishRepository := persistence.NewPublishRepository(db)

	generatorClient := generator.NewClient(configuration.C.Generator.BaseURL)
	tokenManager := youtubeclient.NewTokenManager(channelRepository, brandRepository, vault, youtubeclient.TokenManagerConfig{
		RedirectURI: configuration.C.YouTube.RedirectURI,
		Scopes:      configuration.C.YouTube.Scopes,
	})

	brandUsecase := usecase.NewBrandUsecase(brandRepository, channelRepository, vault, healthCache)
	channelUsecase := usecase.NewChannelUsecase(channelRepository, brandRepository, tokenManager, tokenManager, healthCache)
	scriptUsecase := usecase.NewScriptUsecase(scriptRepository, jobRepository, generatorClient)
	publishUsecase := usecase.NewPublishUsecase(
		publishRepository,
		scriptRepository,
		jobRepository,
		channelRepository,
		brandRepository,
		tokenManager,
		generatorClient,
		publishEvents,
	)

	router := server.InitiateRouter(
		httpHandler.NewBrandHandler(brandUsecase),
		httpHandler.NewChannelHandler(channelUsecase),
		httpHandler.NewScriptHandler(scriptUsecase),
		httpHandler.NewPublishHandler(publishUsecase),
		httpHandler.NewHealthHandler(db),
		configuration.C.App.SecretKey,
		allowedOrigins(),
	)

	port := configuration.C.App.Port
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)

	if pubSubClient != nil {
		_ = pubSubClient.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	_ = db.Close()

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

func allowedOrigins() []string {
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		return strings.Split(v, ",")
	}
	return []string{"http://localhost:3000", "http://localhost:4200"}
}
