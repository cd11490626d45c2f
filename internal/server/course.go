package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	coursedomain "github.com/smallbiznis/kursus/internal/course/domain"
	"github.com/smallbiznis/kursus/internal/pricing"
	"github.com/smallbiznis/kursus/pkg/db/pagination"
)

// coursePayload is a course plus the price localized for the caller's
// region. The stored base price is never mutated.
type coursePayload struct {
	coursedomain.Course
	Pricing pricing.LocalizedPrice `json:"pricing"`
}

func courseView(ctx context.Context, course coursedomain.Course) coursePayload {
	loc := pricing.FromContext(ctx)
	return coursePayload{
		Course:  course,
		Pricing: pricing.Localize(course.Price, loc.Profile),
	}
}

type listCoursesPayload struct {
	pagination.PageInfo
	Region  string          `json:"region"`
	Courses []coursePayload `json:"courses"`
}

type createCourseRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	CreatorID     string  `json:"creator_id"`
	Category      string  `json:"category"`
	Level         string  `json:"level"`
	DurationHours float64 `json:"duration_hours"`
}

func (s *Server) CreateCourse(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.courseSvc.Create(c.Request.Context(), coursedomain.CreateCourseRequest{
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Price:         req.Price,
		Image:         strings.TrimSpace(req.Image),
		CreatorID:     strings.TrimSpace(req.CreatorID),
		Category:      strings.TrimSpace(req.Category),
		Level:         strings.TrimSpace(req.Level),
		DurationHours: req.DurationHours,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": courseView(c.Request.Context(), resp)})
}

func (s *Server) ListCourses(c *gin.Context) {
	var query struct {
		PageToken string `form:"page_token"`
		PageSize  int    `form:"page_size"`
		Category  string `form:"category"`
		Level     string `form:"level"`
		CreatorID string `form:"creator_id"`
		MinPrice  string `form:"min_price"`
		MaxPrice  string `form:"max_price"`
		Search    string `form:"search"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	minPrice, err := parseOptionalFloat(query.MinPrice)
	if err != nil {
		AbortWithError(c, newValidationError("min_price", "invalid_min_price", "invalid min price"))
		return
	}
	maxPrice, err := parseOptionalFloat(query.MaxPrice)
	if err != nil {
		AbortWithError(c, newValidationError("max_price", "invalid_max_price", "invalid max price"))
		return
	}

	s.listCourses(c, coursedomain.ListCourseRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Category:  strings.TrimSpace(query.Category),
		Level:     strings.TrimSpace(query.Level),
		CreatorID: strings.TrimSpace(query.CreatorID),
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		Search:    strings.TrimSpace(query.Search),
	})
}

func (s *Server) ListCoursesByCreator(c *gin.Context) {
	var query struct {
		PageToken string `form:"page_token"`
		PageSize  int    `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	s.listCourses(c, coursedomain.ListCourseRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		CreatorID: strings.TrimSpace(c.Param("creatorId")),
	})
}

func (s *Server) listCourses(c *gin.Context, req coursedomain.ListCourseRequest) {
	resp, err := s.courseSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	loc := pricing.FromContext(c.Request.Context())
	payload := listCoursesPayload{
		PageInfo: resp.PageInfo,
		Region:   string(loc.Region),
		Courses:  make([]coursePayload, 0, len(resp.Courses)),
	}
	for _, course := range resp.Courses {
		payload.Courses = append(payload.Courses, courseView(c.Request.Context(), course))
	}

	c.JSON(http.StatusOK, gin.H{"data": payload})
}

func (s *Server) GetCourseByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.courseSvc.GetByID(c.Request.Context(), coursedomain.GetCourseRequest{ID: id})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": courseView(c.Request.Context(), resp)})
}

type updateCourseRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	Image         *string  `json:"image"`
	Category      *string  `json:"category"`
	Level         *string  `json:"level"`
	DurationHours *float64 `json:"duration_hours"`
}

func (s *Server) UpdateCourse(c *gin.Context) {
	var req updateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.courseSvc.Update(c.Request.Context(), coursedomain.UpdateCourseRequest{
		ID:            strings.TrimSpace(c.Param("id")),
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		Image:         req.Image,
		Category:      req.Category,
		Level:         req.Level,
		DurationHours: req.DurationHours,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": courseView(c.Request.Context(), resp)})
}

func (s *Server) DeleteCourse(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.courseSvc.Delete(c.Request.Context(), coursedomain.DeleteCourseRequest{ID: id}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isCourseValidationError(err error) bool {
	switch err {
	case coursedomain.ErrInvalidTitle,
		coursedomain.ErrInvalidDescription,
		coursedomain.ErrInvalidPrice,
		coursedomain.ErrInvalidCategory,
		coursedomain.ErrInvalidLevel,
		coursedomain.ErrInvalidDuration,
		coursedomain.ErrInvalidCreator,
		coursedomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
