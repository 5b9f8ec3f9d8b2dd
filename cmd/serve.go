package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/vonvha/Nutri-Smart/config"
	"github.com/vonvha/Nutri-Smart/controllers"
	"github.com/vonvha/Nutri-Smart/routes"
	"github.com/vonvha/Nutri-Smart/services"
	"github.com/vonvha/Nutri-Smart/utils"
)

const shutdownTimeout = 10 * time.Second

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	})
}

func serve(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := utils.NewLogger("nutrismart", cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	db, err := config.OpenDB(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := buildDeps(ctx, cfg, db, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("db", cfg.DBDriver).Str("vision", cfg.VisionProvider).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return pkgerrors.Wrap(err, "http server")
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildDeps wires services and controllers. AWS is only touched when one of
// its integrations is configured.
func buildDeps(ctx context.Context, cfg *config.Config, db *gorm.DB, log zerolog.Logger) (routes.Deps, error) {
	var awsCfg *aws.Config
	loadAWS := func() (aws.Config, error) {
		if awsCfg == nil {
			c, err := utils.LoadAWSConfig(ctx, cfg.AWSRegion)
			if err != nil {
				return aws.Config{}, pkgerrors.Wrap(err, "load aws config")
			}
			awsCfg = &c
		}
		return *awsCfg, nil
	}

	var identity services.IdentityResolver
	var issuer services.TokenIssuer
	if cfg.AuthMode == "fake" {
		identity, issuer = services.FakeTokens{}, services.FakeTokens{}
	} else {
		jwtTokens := services.JWTTokens{Secret: []byte(cfg.JWTSecret), TTL: cfg.JWTTTL}
		identity, issuer = jwtTokens, jwtTokens
	}

	var push *services.PushService
	if cfg.SNSPlatformARN != "" {
		ac, err := loadAWS()
		if err != nil {
			return routes.Deps{}, err
		}
		push = services.NewPushService(db, sns.NewFromConfig(ac), cfg.SNSPlatformARN, log)
	}

	hub := services.NewRealtimeHub()
	notifications := services.NewNotificationService(db, hub, push, log)

	profiles := services.NewProfileService(db, notifications)
	ledger := services.NewLedgerService(db)
	catalog := services.NewCatalogService(db)

	visionCfg := services.VisionConfig{
		BaseURL:     cfg.VisionBaseURL,
		APIKey:      cfg.VisionAPIKey,
		Model:       cfg.VisionModel,
		Temperature: cfg.VisionTemperature,
		MaxTokens:   cfg.VisionMaxTokens,
	}
	var analyzer services.FoodAnalyzer
	switch cfg.VisionProvider {
	case "llm":
		a, err := services.NewLLMAnalyzer(visionCfg)
		if err != nil {
			return routes.Deps{}, err
		}
		analyzer = a
	case "rekognition":
		ac, err := loadAWS()
		if err != nil {
			return routes.Deps{}, err
		}
		analyzer = services.NewRekognitionAnalyzer(rekognition.NewFromConfig(ac), services.MsgNotFood)
	default:
		analyzer = services.DisabledAnalyzer{}
	}

	var archive services.ImageStore
	if cfg.S3Bucket != "" {
		ac, err := loadAWS()
		if err != nil {
			return routes.Deps{}, err
		}
		archive = utils.NewImageArchive(s3.NewFromConfig(ac), cfg.S3Bucket, cfg.S3PublicURL)
	}
	vision := services.NewVisionService(analyzer, catalog, archive, notifications, log)

	return routes.Deps{
		Log:           log,
		Identity:      identity,
		Auth:          controllers.NewAuthController(services.NewAuthService(db, issuer)),
		Profile:       controllers.NewProfileController(profiles),
		Dashboard:     controllers.NewDashboardController(services.NewDashboardService(profiles, ledger), ledger),
		Food:          controllers.NewFoodController(services.NewFoodService(catalog, ledger, profiles), catalog),
		Vision:        controllers.NewVisionController(vision, cfg.VisionMaxImageBytes),
		Notifications: controllers.NewNotificationController(notifications, push),
		Devices:       controllers.NewDeviceController(push),
		Realtime:      controllers.NewRealtimeController(hub),
		Appointments:  controllers.NewAppointmentController(services.NewAppointmentService(db)),
		Plan:          controllers.NewPlanController(services.NewPlanService(profiles)),
	}, nil
}
