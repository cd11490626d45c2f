package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/kursus/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListCourseFilter struct {
	Category  string
	Level     string
	CreatorID snowflake.ID
	MinPrice  *float64
	MaxPrice  *float64
	Search    string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, course *Course) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Course, error)
	Update(ctx context.Context, db *gorm.DB, course *Course) error
	Deactivate(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
	List(ctx context.Context, db *gorm.DB, filter ListCourseFilter, page pagination.Pagination) ([]*Course, error)
	ListActiveByCreator(ctx context.Context, db *gorm.DB, creatorID snowflake.ID) ([]Course, error)
	FindActiveByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID, creatorID snowflake.ID) ([]Course, error)
}
