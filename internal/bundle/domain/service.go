package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/smallbiznis/kursus/pkg/db/pagination"
)

type CreateBundleRequest struct {
	Title     string
	CourseIDs []string
	CreatorID string
	Image     string
	Discount  float64
}

type AutoCreateRequest struct {
	CreatorID string
}

type UpdateBundleRequest struct {
	ID        string
	Title     *string
	CourseIDs []string
	Image     *string
	Discount  *float64
}

type GetBundleRequest struct {
	ID string
}

type DeleteBundleRequest struct {
	ID string
}

type ListBundleRequest struct {
	PageToken string
	PageSize  int
	CreatorID string
	Title     string
}

type ListBundleResponse struct {
	pagination.PageInfo
	Bundles []Bundle `json:"bundles"`
}

type Service interface {
	Create(context.Context, CreateBundleRequest) (Bundle, error)
	AutoCreate(context.Context, AutoCreateRequest) ([]Bundle, error)
	List(context.Context, ListBundleRequest) (ListBundleResponse, error)
	GetByID(context.Context, GetBundleRequest) (Bundle, error)
	Update(context.Context, UpdateBundleRequest) (Bundle, error)
	Delete(context.Context, DeleteBundleRequest) error
}

var (
	ErrInvalidTitle        = errors.New("invalid_title")
	ErrInvalidCourses      = errors.New("invalid_courses")
	ErrInvalidDiscount     = errors.New("invalid_discount")
	ErrInvalidCreator      = errors.New("invalid_creator")
	ErrCreatorNotFound     = errors.New("creator_not_found")
	ErrInsufficientCatalog = errors.New("insufficient_catalog")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
)

// MemberValidationError reports bundle members that do not exist, are
// inactive, or belong to another creator.
type MemberValidationError struct {
	Missing []string
}

func (e *MemberValidationError) Error() string {
	return fmt.Sprintf("invalid_members: %s", strings.Join(e.Missing, ","))
}

func (e *MemberValidationError) Unwrap() error {
	return ErrInvalidCourses
}
