package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"reelforge/adapter"
	"reelforge/config"
	"reelforge/constant"
	"reelforge/handler"
	"reelforge/pkg/workspace"
	"reelforge/repository"
	"reelforge/service"
)

func RunHttp(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Bool("isProduction", cfg.App.Environment == constant.EnvironmentProduction.String()).Send()
	if cfg.App.Environment == constant.EnvironmentProduction.String() {
		gin.SetMode(gin.ReleaseMode)
	}

	ws := workspace.New(cfg.Paths.Jobs, cfg.Paths.Work, cfg.Paths.Images, cfg.Paths.Videos)
	if err := ws.EnsureDirs(); err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("failed to prepare workspace")
	}

	mixer := adapter.NewAudioMixer(cfg, ws)

	tools := service.Toolchain{
		Script:   adapter.NewScriptGenerator(cfg, ws),
		Voice:    adapter.NewVoiceSynthesizer(cfg, ws),
		Captions: adapter.NewCaptionGenerator(cfg),
		Media:    adapter.NewMediaCollector(cfg, ws),
		Render:   adapter.NewRenderer(cfg),
		Audio:    mixer,
	}

	store := repository.NewStore()
	showcase := service.NewShowcase(cfg.Paths.Showcase)
	intake := service.NewIntake(store, ws)
	pipeline := service.NewPipeline(store, cfg, ws, tools, showcase)
	h := handler.New(ctx, store, intake, pipeline, showcase, mixer, ws)

	r := gin.Default()
	addHealth(r)

	api := r.Group("/api")
	api.POST("/generate", h.Generate)
	api.GET("/status/:job_id", h.Status)
	api.GET("/download/:job_id", h.Download)
	api.GET("/video/:job_id", h.Stream)
	api.POST("/add-audio/:job_id", h.AddAudio)
	api.GET("/showcase", h.Showcase)
	api.GET("/config", h.Config)

	srv := http.Server{
		Handler:           r,
		Addr:              fmt.Sprintf(":%s", cfg.Server.HttpPort),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("start http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
		}
	}()

	<-ctx.Done()
	zerolog.Ctx(ctx).Info().Msg("shutting down server")
	if err := srv.Shutdown(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
	}

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("server shutdown")
}

func addHealth(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}

func setupLogger(cfg *config.Config) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.App.Environment == constant.EnvironmentDevelop.String() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	return ctx
}
