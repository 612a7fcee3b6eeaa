package bootstrap

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/code-100-precent/lingrx/internal/models"
	"github.com/code-100-precent/lingrx/pkg/config"
	"github.com/code-100-precent/lingrx/pkg/logger"
	"github.com/code-100-precent/lingrx/pkg/utils"
	"go.uber.org/zap"

	"gorm.io/gorm"
)

// Options controls database initialization behavior
type Options struct {
	// InitSQLPath points to a .sql script run before migration; skipped if empty
	InitSQLPath string
	AutoMigrate bool
	// SeedNonProd writes sample entries into an empty table outside production
	SeedNonProd bool
}

// SetupDatabase connects, runs the optional init script, migrates and, outside
// production, seeds sample entries.
func SetupDatabase(logWriter io.Writer, opts *Options) (*gorm.DB, error) {
	if opts == nil {
		opts = &Options{AutoMigrate: true, SeedNonProd: true}
	}
	cfg := config.GlobalConfig
	if cfg == nil {
		return nil, errors.New("config is not loaded")
	}

	db, err := utils.InitDatabase(logWriter, cfg.DBDriver, cfg.DSN)
	if err != nil {
		logger.Error("init database failed", zap.Error(err))
		return nil, err
	}

	if opts.InitSQLPath != "" {
		if err := RunInitSQL(db, opts.InitSQLPath); err != nil {
			logger.Error("run init sql failed", zap.String("path", opts.InitSQLPath), zap.Error(err))
			return nil, err
		}
	}

	if opts.AutoMigrate {
		if err := RunMigrations(db); err != nil {
			logger.Error("migration failed", zap.Error(err))
			return nil, err
		}
		logger.Info("migration success", zap.String("database", cfg.DBDriver))
	}

	if opts.SeedNonProd && cfg.Mode != "production" {
		service := SeedService{db: db}
		if err := service.SeedAll(); err != nil {
			logger.Error("seed failed", zap.Error(err))
			return nil, err
		}
	}

	logger.Info("system bootstrap - database is initialization complete")
	return db, nil
}

// RunInitSQL executes a .sql file statement by statement inside one
// transaction. Scripts should guard with IF NOT EXISTS to stay rerunnable.
func RunInitSQL(db *gorm.DB, sqlFilePath string) error {
	f, err := os.Open(sqlFilePath)
	if err != nil {
		return err
	}
	defer f.Close()

	stmts, err := SplitStatements(f)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range stmts {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SplitStatements cuts a script into statements ending in a semicolon at
// the end of a line. Blank lines and lines starting with -- or # are
// skipped. Trailing text without a semicolon is its own statement.
func SplitStatements(r io.Reader) ([]string, error) {
	var (
		stmts   []string
		sb      strings.Builder
		scanner = bufio.NewScanner(r)
	)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	flush := func() {
		if stmt := strings.TrimSpace(sb.String()); stmt != "" {
			stmts = append(stmts, stmt)
		}
		sb.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "--") || strings.HasPrefix(trim, "#") {
			continue
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
		if strings.HasSuffix(trim, ";") {
			flush()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return stmts, nil
}

// RunMigrations executes entity migration
func RunMigrations(db *gorm.DB) error {
	if db == nil {
		return errors.New("db is nil")
	}
	return utils.MakeMigrates(db, []any{
		&models.Entry{},
	})
}
