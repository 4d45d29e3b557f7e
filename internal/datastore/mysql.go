package datastore

import (
	"fmt"

	"github.com/econsult/commentnet-go/internal/conf"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// MySQLStore implements Interface for MySQL
type MySQLStore struct {
	DataStore
	Settings *conf.Settings
}

// Open sets up the MySQL database connection and runs schema migration.
func (store *MySQLStore) Open() error {
	mysqlConf := &store.Settings.Output.MySQL
	if mysqlConf.Database == "" {
		return fmt.Errorf("mysql database name is not configured")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		mysqlConf.Username, mysqlConf.Password,
		mysqlConf.Host, mysqlConf.Port,
		mysqlConf.Database)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: createGormLogger()})
	if err != nil {
		return fmt.Errorf("failed to open MySQL database: %w", err)
	}

	store.DB = db
	return performAutoMigration(db, store.Settings.Debug, "MySQL",
		fmt.Sprintf("%s@%s:%s/%s", mysqlConf.Username, mysqlConf.Host, mysqlConf.Port, mysqlConf.Database))
}

// Close closes the underlying MySQL connection.
func (store *MySQLStore) Close() error {
	if store.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	sqlDB, err := store.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to retrieve generic DB object: %w", err)
	}
	return sqlDB.Close()
}
