package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/kursus/pkg/db/pagination"
)

type CreateCourseRequest struct {
	Title         string
	Description   string
	Price         float64
	Image         string
	CreatorID     string
	Category      string
	Level         string
	DurationHours float64
}

type UpdateCourseRequest struct {
	ID            string
	Title         *string
	Description   *string
	Price         *float64
	Image         *string
	Category      *string
	Level         *string
	DurationHours *float64
}

type GetCourseRequest struct {
	ID string
}

type DeleteCourseRequest struct {
	ID string
}

type ListCourseRequest struct {
	PageToken string
	PageSize  int
	Category  string
	Level     string
	CreatorID string
	MinPrice  *float64
	MaxPrice  *float64
	Search    string
}

type ListCourseResponse struct {
	pagination.PageInfo
	Courses []Course `json:"courses"`
}

type Service interface {
	Create(context.Context, CreateCourseRequest) (Course, error)
	List(context.Context, ListCourseRequest) (ListCourseResponse, error)
	GetByID(context.Context, GetCourseRequest) (Course, error)
	Update(context.Context, UpdateCourseRequest) (Course, error)
	Delete(context.Context, DeleteCourseRequest) error
}

const (
	TitleMinLen       = 3
	TitleMaxLen       = 100
	DescriptionMinLen = 10
	DescriptionMaxLen = 1000
	PriceMax          = 10000
	DurationMinHours  = 0.5
	DurationMaxHours  = 500
)

var (
	ErrInvalidTitle       = errors.New("invalid_title")
	ErrInvalidDescription = errors.New("invalid_description")
	ErrInvalidPrice       = errors.New("invalid_price")
	ErrInvalidCategory    = errors.New("invalid_category")
	ErrInvalidLevel       = errors.New("invalid_level")
	ErrInvalidDuration    = errors.New("invalid_duration")
	ErrInvalidCreator     = errors.New("invalid_creator")
	ErrCreatorNotFound    = errors.New("creator_not_found")
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
)
