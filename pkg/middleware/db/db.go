package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/agrigouv/pspc/pkg/middleware/logger"
)

type LogConf struct {
	Level string
}

type Config struct {
	Host    string
	Port    int
	User    string
	PW      string
	DBName  string
	LogConf LogConf
}

// Datastore wraps the process-wide gorm pool.
type Datastore struct {
	db *gorm.DB
}

var store *Datastore

// InitPostgres opens the global connection pool. Called once at process
// start; the pool is closed by ClosePostgres at shutdown.
func InitPostgres(ctx context.Context, conf *Config) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		conf.Host, conf.Port, conf.User, conf.PW, conf.DBName)

	level := gormlogger.Warn
	if conf.LogConf.Level == "debug" {
		level = gormlogger.Info
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		logger.Fatalf(ctx, "open postgres err: %+v", err)
		return
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Fatalf(ctx, "get sql db err: %+v", err)
		return
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	store = &Datastore{db: gdb}
}

func ClosePostgres(_ context.Context) {
	if store == nil {
		return
	}
	if sqlDB, err := store.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	store = nil
}

func DB() *Datastore {
	return store
}

// SetDB swaps the datastore, for tests only.
func SetDB(gdb *gorm.DB) {
	store = &Datastore{db: gdb}
}

func (d *Datastore) DBWithContext(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx)
}

func (d *Datastore) DBIns() *gorm.DB {
	return d.db
}
