package main

import (
	"fmt"
	"log"

	"github.com/Masterminds/sprig/v3"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pusdatin/simontok/internal/apiserver/database"
	"github.com/pusdatin/simontok/internal/apiserver/handler"
	"github.com/pusdatin/simontok/internal/apiserver/middleware"
	"github.com/pusdatin/simontok/internal/auth/jwt"
	"github.com/pusdatin/simontok/internal/common/config"
	"github.com/pusdatin/simontok/internal/i18n"
	"github.com/pusdatin/simontok/internal/session"
	"github.com/pusdatin/simontok/pkg/logger"
	"github.com/pusdatin/simontok/pkg/metrics"
	"github.com/pusdatin/simontok/pkg/version"
)

var (
	configFile string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of simontok",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("simontok version %s\n", version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   "simontok",
		Short: "Personnel and equipment registry for diplomatic missions",
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "simontok.yaml", "configuration file name")
	rootCmd.AddCommand(versionCmd)
}

func run() {
	cfg, cfgPath, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	zapLogger.Info("Starting simontok",
		zap.String("version", version.Get()),
		zap.String("config", cfgPath))

	i18n.SetDefaultLanguage(cfg.I18n.DefaultLang)
	if err := i18n.InitTranslator(cfg.I18n.Dir); err != nil {
		zapLogger.Fatal("Failed to load translations", zap.Error(err))
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	flashes, err := session.NewStore(zapLogger, &cfg.Session)
	if err != nil {
		zapLogger.Fatal("Failed to initialize session store", zap.Error(err))
	}
	defer func() {
		_ = flashes.Close()
	}()

	jwtSvc, err := jwt.NewService(cfg.JWT)
	if err != nil {
		zapLogger.Fatal("Failed to initialize session signer", zap.Error(err))
	}

	m := metrics.New(cfg.Metrics)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(zapLogger))
	r.Use(m.Middleware())
	r.Use(middleware.Lang())
	r.Use(middleware.Auth(jwtSvc))

	r.SetFuncMap(sprig.FuncMap())
	r.LoadHTMLGlob(cfg.Web.TemplateGlob)
	if cfg.Web.StaticDir != "" {
		r.Static("/static", cfg.Web.StaticDir)
	}

	h := handler.New(db, jwtSvc, flashes, m, zapLogger, cfg)
	h.Routes(r)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	addr := fmt.Sprintf(":%d", cfg.Port)
	zapLogger.Info("Listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zapLogger.Fatal("Server stopped", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
