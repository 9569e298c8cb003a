package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"stayhub/services/logger"
	"stayhub/store"
	"stayhub/store/gormstore"
	"stayhub/store/memstore"
)

// ConnectStore opens the configured backend and migrates the schema.
func ConnectStore(cfg *Config, log logger.Logger) (store.Store, error) {
	if cfg.StoreDriver == DriverMemory {
		log.Warn("using in-memory store, data is lost on restart")
		return memstore.New(), nil
	}

	gormCfg := &gorm.Config{}
	if cfg.IsProduction() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}
	if err := gormstore.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info("Successfully connected to db")
	return gormstore.New(db), nil
}
