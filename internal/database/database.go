package database

import (
	"fmt"
	"strings"
	"time"

	"gamelist/backend/internal/config"
	"gamelist/backend/internal/logger"
	"gamelist/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the database described by settings and creates the schema
// when the users table does not exist yet.
func Connect(settings config.DatabaseSettings, log logger.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(writer{log}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch settings.Type {
	case config.PostgresDbType:
		db, err = gorm.Open(postgres.Open(settings.DSN), gormConfig)
	case config.SqliteDbType:
		db, err = connectSQLite(settings.DSN, gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", settings.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("Database connection established.")

	if err := Migrate(db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func connectSQLite(dsn string, gormConfig *gorm.Config) (*gorm.DB, error) {
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(withForeignKeys(dsn)), gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is a separate database.
	if strings.Contains(dsn, ":memory:") {
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// withForeignKeys makes the driver enable foreign keys on every pooled
// connection, not only the first one.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// Migrate creates the tables on first boot. An existing schema is left alone.
func Migrate(db *gorm.DB, log logger.Logger) error {
	if db.Migrator().HasTable(&models.User{}) {
		log.Info("Database already contains the users table.")
		return nil
	}

	if err := db.AutoMigrate(&models.User{}, &models.List{}, &models.Game{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("Initialized the database!")
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// writer routes gorm's log lines to the application logger.
type writer struct {
	log logger.Logger
}

func (w writer) Printf(format string, args ...interface{}) {
	w.log.Warn(fmt.Sprintf(format, args...))
}
