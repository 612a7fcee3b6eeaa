package utils

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/code-100-precent/lingrx/pkg/constants"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PoolConfig tunes the sql.DB behind a gorm handle
type PoolConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig is applied by InitDatabase
var DefaultPoolConfig = PoolConfig{
	MaxIdleConns:    10,
	MaxOpenConns:    100,
	ConnMaxLifetime: time.Hour,
	ConnMaxIdleTime: 30 * time.Minute,
}

// InitDatabase opens driver/dsn, falling back to DB_DRIVER and DSN from the
// environment. SQL warnings and slow queries go to logWrite (stdout if nil).
func InitDatabase(logWrite io.Writer, driver, dsn string) (*gorm.DB, error) {
	if driver == "" {
		driver = GetEnv(constants.ENV_DB_DRIVER)
	}
	if dsn == "" {
		dsn = GetEnv(constants.ENV_DSN)
	}
	if logWrite == nil {
		logWrite = os.Stdout
	}

	cfg := &gorm.Config{
		Logger:                                   newGormLogger(logWrite),
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	db, err := createDatabaseInstance(cfg, driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Exec("SELECT 1").Error; err != nil {
		return nil, err
	}

	ConfigureConnectionPool(db, DefaultPoolConfig)
	return db, nil
}

func newGormLogger(w io.Writer) logger.Interface {
	return logger.New(
		log.New(w, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// ConfigureConnectionPool applies pool to the underlying sql.DB
func ConfigureConnectionPool(db *gorm.DB, pool PoolConfig) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get database instance: %v", err)
		return
	}

	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)
}

// MakeMigrates runs AutoMigrate for every model in insts
func MakeMigrates(db *gorm.DB, insts []any) error {
	for _, v := range insts {
		if err := db.AutoMigrate(v); err != nil {
			return err
		}
	}
	return nil
}
