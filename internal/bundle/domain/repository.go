package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/kursus/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListBundleFilter struct {
	CreatorID snowflake.ID
	Title     string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, bundle *Bundle) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Bundle, error)
	Update(ctx context.Context, db *gorm.DB, bundle *Bundle) error
	Deactivate(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
	List(ctx context.Context, db *gorm.DB, filter ListBundleFilter, page pagination.Pagination) ([]*Bundle, error)
}
