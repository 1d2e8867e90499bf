package migration

import (
	"github.com/smallbiznis/rolodex/internal/config"
	customerdomain "github.com/smallbiznis/rolodex/internal/customer/domain"
	"github.com/smallbiznis/rolodex/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, logger *zap.Logger) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite/mysql get the gorm-derived schema; the SQL migrations
			// carry the postgres CHECK constraints.
			if err := conn.AutoMigrate(&customerdomain.Customer{}, &customerdomain.Address{}); err != nil {
				return err
			}
		}

		if cfg.SeedDemoData {
			return seed.EnsureDemoData(conn, logger)
		}
		return nil
	}),
)
