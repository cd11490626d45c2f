package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/kursus/pkg/db/pagination"
)

type CreateUserRequest struct {
	Name         string
	Email        string
	Region       string
	ProfileImage string
}

type UpdateUserRequest struct {
	ID           string
	Name         *string
	Email        *string
	Region       *string
	ProfileImage *string
}

type GetUserRequest struct {
	ID string
}

type DeleteUserRequest struct {
	ID string
}

type ListUserRequest struct {
	PageToken string
	PageSize  int
	Region    string
}

type ListUserResponse struct {
	pagination.PageInfo
	Users []User `json:"users"`
}

type Service interface {
	Create(context.Context, CreateUserRequest) (User, error)
	List(context.Context, ListUserRequest) (ListUserResponse, error)
	GetByID(context.Context, GetUserRequest) (User, error)
	Update(context.Context, UpdateUserRequest) (User, error)
	Delete(context.Context, DeleteUserRequest) error
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrEmailTaken   = errors.New("email_taken")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
)
