package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/kursus/internal/bundle/domain"
	coursedomain "github.com/smallbiznis/kursus/internal/course/domain"
	userdomain "github.com/smallbiznis/kursus/internal/user/domain"
	"github.com/smallbiznis/kursus/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Courses coursedomain.Repository
	Users   userdomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	courses coursedomain.Repository
	users   userdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("bundle.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		courses: p.Courses,
		users:   p.Users,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateBundleRequest) (domain.Bundle, error) {
	title := strings.TrimSpace(req.Title)
	if !domain.ValidTitle(title) {
		return domain.Bundle{}, domain.ErrInvalidTitle
	}

	if req.Discount < 0 || req.Discount > 100 {
		return domain.Bundle{}, domain.ErrInvalidDiscount
	}

	creatorID, err := snowflake.ParseString(strings.TrimSpace(req.CreatorID))
	if err != nil || creatorID == 0 {
		return domain.Bundle{}, domain.ErrInvalidCreator
	}

	creator, err := s.users.FindByID(ctx, s.db, creatorID)
	if err != nil {
		return domain.Bundle{}, err
	}
	if creator == nil {
		return domain.Bundle{}, domain.ErrCreatorNotFound
	}

	requested, err := parseCourseIDs(req.CourseIDs)
	if err != nil {
		return domain.Bundle{}, err
	}

	members, err := s.resolveMembers(ctx, requested, creatorID)
	if err != nil {
		return domain.Bundle{}, err
	}

	sum := 0.0
	ids := make(datatypes.JSONSlice[string], 0, len(members))
	for _, member := range members {
		sum += member.Price
		ids = append(ids, member.ID.String())
	}

	now := time.Now().UTC()
	bundle := domain.Bundle{
		ID:         s.genID.Generate(),
		Title:      title,
		CourseIDs:  ids,
		CreatorID:  creatorID,
		Image:      strings.TrimSpace(req.Image),
		TotalPrice: sum * (1 - req.Discount/100),
		Discount:   req.Discount,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, s.db, &bundle); err != nil {
		return domain.Bundle{}, err
	}

	return bundle, nil
}

func (s *Service) AutoCreate(ctx context.Context, req domain.AutoCreateRequest) ([]domain.Bundle, error) {
	creatorID, err := snowflake.ParseString(strings.TrimSpace(req.CreatorID))
	if err != nil || creatorID == 0 {
		return nil, domain.ErrInvalidCreator
	}

	creator, err := s.users.FindByID(ctx, s.db, creatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, domain.ErrCreatorNotFound
	}

	catalog, err := s.courses.ListActiveByCreator(ctx, s.db, creatorID)
	if err != nil {
		return nil, err
	}
	if len(catalog) < 2 {
		return nil, domain.ErrInsufficientCatalog
	}

	bundles := domain.Synthesize(creatorID, catalog)

	now := time.Now().UTC()
	created := make([]domain.Bundle, 0, len(bundles))
	for _, bundle := range bundles {
		bundle.ID = s.genID.Generate()
		bundle.Active = true
		bundle.CreatedAt = now
		bundle.UpdatedAt = now

		if err := s.repo.Insert(ctx, s.db, &bundle); err != nil {
			return nil, err
		}
		created = append(created, bundle)
	}

	s.log.Info("auto bundles created",
		zap.String("creator_id", creatorID.String()),
		zap.Int("catalog_size", len(catalog)),
		zap.Int("bundles", len(created)),
	)

	return created, nil
}

func (s *Service) List(ctx context.Context, req domain.ListBundleRequest) (domain.ListBundleResponse, error) {
	filter := domain.ListBundleFilter{
		Title: strings.TrimSpace(req.Title),
	}

	if creator := strings.TrimSpace(req.CreatorID); creator != "" {
		creatorID, err := snowflake.ParseString(creator)
		if err != nil || creatorID == 0 {
			return domain.ListBundleResponse{}, domain.ErrInvalidCreator
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
		return domain.ListBundleResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(bundle *domain.Bundle) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        bundle.ID.String(),
			CreatedAt: bundle.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	bundles := make([]domain.Bundle, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		bundles = append(bundles, *item)
	}

	resp := domain.ListBundleResponse{Bundles: bundles}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetBundleRequest) (domain.Bundle, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Bundle{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Bundle{}, err
	}
	if item == nil || !item.Active {
		return domain.Bundle{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateBundleRequest) (domain.Bundle, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Bundle{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Bundle{}, err
	}
	if item == nil || !item.Active {
		return domain.Bundle{}, domain.ErrNotFound
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if !domain.ValidTitle(title) {
			return domain.Bundle{}, domain.ErrInvalidTitle
		}
		item.Title = title
	}
	if req.Image != nil {
		item.Image = strings.TrimSpace(*req.Image)
	}
	if req.Discount != nil {
		if *req.Discount < 0 || *req.Discount > 100 {
			return domain.Bundle{}, domain.ErrInvalidDiscount
		}
		item.Discount = *req.Discount
	}

	// A stored total only changes when the member set itself changes; price
	// edits on member courses never reprice an existing bundle.
	if len(req.CourseIDs) > 0 {
		requested, err := parseCourseIDs(req.CourseIDs)
		if err != nil {
			return domain.Bundle{}, err
		}

		members, err := s.resolveMembers(ctx, requested, item.CreatorID)
		if err != nil {
			return domain.Bundle{}, err
		}

		sum := 0.0
		ids := make(datatypes.JSONSlice[string], 0, len(members))
		for _, member := range members {
			sum += member.Price
			ids = append(ids, member.ID.String())
		}

		item.CourseIDs = ids
		item.TotalPrice = sum * (1 - item.Discount/100)
	}

	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Bundle{}, err
	}

	return *item, nil
}

func (s *Service) Delete(ctx context.Context, req domain.DeleteBundleRequest) error {
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

// resolveMembers loads the requested courses restricted to active ones owned
// by the creator, and fails when any requested member is missing from the
// resolved set.
func (s *Service) resolveMembers(ctx context.Context, requested []snowflake.ID, creatorID snowflake.ID) ([]coursedomain.Course, error) {
	members, err := s.courses.FindActiveByIDs(ctx, s.db, requested, creatorID)
	if err != nil {
		return nil, err
	}

	if len(members) != len(requested) {
		resolved := make(map[snowflake.ID]struct{}, len(members))
		for _, member := range members {
			resolved[member.ID] = struct{}{}
		}

		missing := make([]string, 0, len(requested)-len(members))
		for _, id := range requested {
			if _, ok := resolved[id]; !ok {
				missing = append(missing, id.String())
			}
		}

		return nil, &domain.MemberValidationError{Missing: missing}
	}

	return members, nil
}

func parseCourseIDs(values []string) ([]snowflake.ID, error) {
	if len(values) == 0 {
		return nil, domain.ErrInvalidCourses
	}

	seen := make(map[snowflake.ID]struct{}, len(values))
	ids := make([]snowflake.ID, 0, len(values))
	for _, value := range values {
		id, err := snowflake.ParseString(strings.TrimSpace(value))
		if err != nil || id == 0 {
			return nil, domain.ErrInvalidCourses
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
