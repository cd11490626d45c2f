package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/kursus/internal/bundle/domain"
	"github.com/smallbiznis/kursus/pkg/db/option"
	"github.com/smallbiznis/kursus/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, bundle *domain.Bundle) error {
	return db.WithContext(ctx).Create(bundle).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Bundle, error) {
	var bundle domain.Bundle
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&bundle).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &bundle, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, bundle *domain.Bundle) error {
	return db.WithContext(ctx).Save(bundle).Error
}

func (r *repo) Deactivate(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.Bundle{}).
		Where("id = ? AND active", id).
		Update("active", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListBundleFilter, page pagination.Pagination) ([]*domain.Bundle, error) {
	var bundles []*domain.Bundle
	stmt := db.WithContext(ctx).
		Model(&domain.Bundle{}).
		Where("active")
	if filter.CreatorID != 0 {
		stmt = stmt.Where("creator_id = ?", filter.CreatorID)
	}
	if filter.Title != "" {
		stmt = stmt.Where("title = ?", filter.Title)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&bundles).Error
	if err != nil {
		return nil, err
	}
	return bundles, nil
}
