package config

import (
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"stayhub/services/logger"
	"stayhub/store"
	"stayhub/validator"
)

// App holds the long-lived components built at startup.
type App struct {
	Router     *gin.Engine
	Melody     *melody.Melody
	Cron       *cron.Cron
	Store      store.Store
	Redis      *redis.Client
	Cloudinary *cloudinary.Cloudinary
	Logger     logger.Logger
}

func InitApp(cfg *Config) (*App, error) {
	log := logger.NewLogrusLogger(logger.ParseLevel(cfg.LogLevel), cfg.IsProduction())
	logger.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(cors.New(corsConfig()))
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, err
	}
	validator.RegisterGinTagNames()

	st, err := ConnectStore(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	cld, err := ConnectCloudinary(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	app := &App{
		Router:     router,
		Melody:     melody.New(),
		Cron:       cron.New(),
		Store:      st,
		Redis:      ConnectRedis(cfg, log),
		Cloudinary: cld,
		Logger:     log,
	}
	log.Info("All components initialized successfully (admin auth %s, vendor auth %s)", cfg.AdminAuth, cfg.VendorAuth)
	return app, nil
}

// corsConfig echoes the origin so cookies work cross-site.
func corsConfig() cors.Config {
	c := cors.DefaultConfig()
	c.AddAllowHeaders("Authorization", "X-Session-ID", "X-Vendor-Id")
	c.AddAllowMethods("PATCH")
	c.AllowCredentials = true
	c.AllowAllOrigins = false
	c.AllowOriginFunc = func(origin string) bool {
		return true
	}
	return c
}

// ConnectCloudinary is optional: without CLOUDINARY_URL uploads are refused.
func ConnectCloudinary(cfg *Config, log logger.Logger) (*cloudinary.Cloudinary, error) {
	if cfg.CloudinaryURL == "" {
		log.Info("CLOUDINARY_URL not set, uploads disabled")
		return nil, nil
	}
	return cloudinary.NewFromURL(cfg.CloudinaryURL)
}

// InitWebSocket mounts the melody hub on /ws.
func InitWebSocket(router *gin.Engine, m *melody.Melody, log logger.Logger) {
	router.GET("/ws", func(c *gin.Context) {
		if err := m.HandleRequest(c.Writer, c.Request); err != nil {
			log.Warn("websocket upgrade: %v", err)
		}
	})
	log.Info("WebSocket initialized successfully")
}
