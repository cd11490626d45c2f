package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	userdomain "github.com/smallbiznis/kursus/internal/user/domain"
)

type createUserRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Region       string `json:"region"`
	ProfileImage string `json:"profile_image"`
}

func (s *Server) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.userSvc.Create(c.Request.Context(), userdomain.CreateUserRequest{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Region:       strings.TrimSpace(req.Region),
		ProfileImage: strings.TrimSpace(req.ProfileImage),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListUsers(c *gin.Context) {
	var query struct {
		PageToken string `form:"page_token"`
		PageSize  int    `form:"page_size"`
		Region    string `form:"region"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.userSvc.List(c.Request.Context(), userdomain.ListUserRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Region:    strings.TrimSpace(query.Region),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetUserByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.userSvc.GetByID(c.Request.Context(), userdomain.GetUserRequest{ID: id})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateUserRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Region       *string `json:"region"`
	ProfileImage *string `json:"profile_image"`
}

func (s *Server) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.userSvc.Update(c.Request.Context(), userdomain.UpdateUserRequest{
		ID:           strings.TrimSpace(c.Param("id")),
		Name:         req.Name,
		Email:        req.Email,
		Region:       req.Region,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteUser(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.userSvc.Delete(c.Request.Context(), userdomain.DeleteUserRequest{ID: id}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isUserValidationError(err error) bool {
	switch err {
	case userdomain.ErrInvalidName,
		userdomain.ErrInvalidEmail,
		userdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
