package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/kursus/internal/course/domain"
	"github.com/smallbiznis/kursus/pkg/db/option"
	"github.com/smallbiznis/kursus/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, course *domain.Course) error {
	return db.WithContext(ctx).Create(course).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Course, error) {
	var course domain.Course
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&course).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, course *domain.Course) error {
	return db.WithContext(ctx).Save(course).Error
}

func (r *repo) Deactivate(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.Course{}).
		Where("id = ? AND active", id).
		Update("active", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListCourseFilter, page pagination.Pagination) ([]*domain.Course, error) {
	var courses []*domain.Course
	stmt := db.WithContext(ctx).
		Model(&domain.Course{}).
		Where("active")
	if filter.Category != "" {
		stmt = stmt.Where("category = ?", filter.Category)
	}
	if filter.Level != "" {
		stmt = stmt.Where("level = ?", filter.Level)
	}
	if filter.CreatorID != 0 {
		stmt = stmt.Where("creator_id = ?", filter.CreatorID)
	}
	if filter.MinPrice != nil {
		stmt = stmt.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		stmt = stmt.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		stmt = stmt.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *repo) ListActiveByCreator(ctx context.Context, db *gorm.DB, creatorID snowflake.ID) ([]domain.Course, error) {
	var courses []domain.Course
	err := db.WithContext(ctx).
		Where("creator_id = ? AND active", creatorID).
		Order("price asc").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *repo) FindActiveByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID, creatorID snowflake.ID) ([]domain.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var courses []domain.Course
	stmt := db.WithContext(ctx).
		Where("id IN ? AND active", ids)
	if creatorID != 0 {
		stmt = stmt.Where("creator_id = ?", creatorID)
	}
	err := stmt.Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}
