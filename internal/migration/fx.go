package migration

import (
	"github.com/smallbiznis/kursus/internal/bundle/domain"
	"github.com/smallbiznis/kursus/internal/config"
	coursedomain "github.com/smallbiznis/kursus/internal/course/domain"
	userdomain "github.com/smallbiznis/kursus/internal/user/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// The SQL migrations target postgres. Other dialects are used for
		// local development and tests and get the gorm schema directly.
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(
				&userdomain.User{},
				&coursedomain.Course{},
				&domain.Bundle{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
