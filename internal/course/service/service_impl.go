package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/kursus/internal/course/domain"
	userdomain "github.com/smallbiznis/kursus/internal/user/domain"
	"github.com/smallbiznis/kursus/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Users userdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	users userdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("course.service"),
		genID: p.GenID,
		repo:  p.Repo,
		users: p.Users,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCourseRequest) (domain.Course, error) {
	title := strings.TrimSpace(req.Title)
	if len(title) < domain.TitleMinLen || len(title) > domain.TitleMaxLen {
		return domain.Course{}, domain.ErrInvalidTitle
	}

	description := strings.TrimSpace(req.Description)
	if len(description) < domain.DescriptionMinLen || len(description) > domain.DescriptionMaxLen {
		return domain.Course{}, domain.ErrInvalidDescription
	}

	if req.Price < 0 || req.Price > domain.PriceMax {
		return domain.Course{}, domain.ErrInvalidPrice
	}

	if !domain.ValidCategory(req.Category) {
		return domain.Course{}, domain.ErrInvalidCategory
	}

	level := req.Level
	if level == "" {
		level = "Beginner"
	}
	if !domain.ValidLevel(level) {
		return domain.Course{}, domain.ErrInvalidLevel
	}

	if req.DurationHours != 0 &&
		(req.DurationHours < domain.DurationMinHours || req.DurationHours > domain.DurationMaxHours) {
		return domain.Course{}, domain.ErrInvalidDuration
	}

	creatorID, err := snowflake.ParseString(strings.TrimSpace(req.CreatorID))
	if err != nil || creatorID == 0 {
		return domain.Course{}, domain.ErrInvalidCreator
	}

	creator, err := s.users.FindByID(ctx, s.db, creatorID)
	if err != nil {
		return domain.Course{}, err
	}
	if creator == nil {
		return domain.Course{}, domain.ErrCreatorNotFound
	}

	now := time.Now().UTC()
	course := domain.Course{
		ID:            s.genID.Generate(),
		Slug:          slug.Make(title),
		Title:         title,
		Description:   description,
		Price:         req.Price,
		Image:         strings.TrimSpace(req.Image),
		CreatorID:     creatorID,
		Category:      req.Category,
		Level:         level,
		DurationHours: req.DurationHours,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &course); err != nil {
		return domain.Course{}, err
	}

	return course, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCourseRequest) (domain.ListCourseResponse, error) {
	filter := domain.ListCourseFilter{
		Category: strings.TrimSpace(req.Category),
		Level:    strings.TrimSpace(req.Level),
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Search:   strings.TrimSpace(req.Search),
	}

	if creator := strings.TrimSpace(req.CreatorID); creator != "" {
		creatorID, err := snowflake.ParseString(creator)
		if err != nil || creatorID == 0 {
			return domain.ListCourseResponse{}, domain.ErrInvalidCreator
		}
		filter.CreatorID = creatorID
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListCourseResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(course *domain.Course) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        course.ID.String(),
			CreatedAt: course.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	courses := make([]domain.Course, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		courses = append(courses, *item)
	}

	resp := domain.ListCourseResponse{Courses: courses}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCourseRequest) (domain.Course, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Course{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Course{}, err
	}
	if item == nil || !item.Active {
		return domain.Course{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCourseRequest) (domain.Course, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Course{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Course{}, err
	}
	if item == nil || !item.Active {
		return domain.Course{}, domain.ErrNotFound
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if len(title) < domain.TitleMinLen || len(title) > domain.TitleMaxLen {
			return domain.Course{}, domain.ErrInvalidTitle
		}
		item.Title = title
		item.Slug = slug.Make(title)
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if len(description) < domain.DescriptionMinLen || len(description) > domain.DescriptionMaxLen {
			return domain.Course{}, domain.ErrInvalidDescription
		}
		item.Description = description
	}
	if req.Price != nil {
		if *req.Price < 0 || *req.Price > domain.PriceMax {
			return domain.Course{}, domain.ErrInvalidPrice
		}
		item.Price = *req.Price
	}
	if req.Image != nil {
		item.Image = strings.TrimSpace(*req.Image)
	}
	if req.Category != nil {
		if !domain.ValidCategory(*req.Category) {
			return domain.Course{}, domain.ErrInvalidCategory
		}
		item.Category = *req.Category
	}
	if req.Level != nil {
		if !domain.ValidLevel(*req.Level) {
			return domain.Course{}, domain.ErrInvalidLevel
		}
		item.Level = *req.Level
	}
	if req.DurationHours != nil {
		if *req.DurationHours != 0 &&
			(*req.DurationHours < domain.DurationMinHours || *req.DurationHours > domain.DurationMaxHours) {
			return domain.Course{}, domain.ErrInvalidDuration
		}
		item.DurationHours = *req.DurationHours
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Course{}, err
	}

	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.DeleteCourseRequest) error {
	id, err := s.parseID(req.ID)
	if err != nil {
		return err
	}

	deactivated, err := s.repo.Deactivate(ctx, s.db, id)
	if err != nil {
		return err
	}
	if !deactivated {
		return domain.ErrNotFound
	}

	return nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
