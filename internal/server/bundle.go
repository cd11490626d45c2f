package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	bundledomain "github.com/smallbiznis/kursus/internal/bundle/domain"
	"github.com/smallbiznis/kursus/internal/pricing"
	"github.com/smallbiznis/kursus/pkg/db/pagination"
)

// bundlePayload is a bundle plus its discounted total localized for the
// caller's region.
type bundlePayload struct {
	bundledomain.Bundle
	Pricing pricing.LocalizedPrice `json:"pricing"`
}

func bundleView(ctx context.Context, bundle bundledomain.Bundle) bundlePayload {
	loc := pricing.FromContext(ctx)
	return bundlePayload{
		Bundle:  bundle,
		Pricing: pricing.Localize(bundle.TotalPrice, loc.Profile),
	}
}

type listBundlesPayload struct {
	pagination.PageInfo
	Region  string          `json:"region"`
	Bundles []bundlePayload `json:"bundles"`
}

type createBundleRequest struct {
	Title     string   `json:"title"`
	CourseIDs []string `json:"course_ids"`
	CreatorID string   `json:"creator_id"`
	Image     string   `json:"image"`
	Discount  float64  `json:"discount"`
}

func (s *Server) CreateBundle(c *gin.Context) {
	var req createBundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bundleSvc.Create(c.Request.Context(), bundledomain.CreateBundleRequest{
		Title:     strings.TrimSpace(req.Title),
		CourseIDs: req.CourseIDs,
		CreatorID: strings.TrimSpace(req.CreatorID),
		Image:     strings.TrimSpace(req.Image),
		Discount:  req.Discount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.BundleCreated("manual")
	c.JSON(http.StatusCreated, gin.H{"data": bundleView(c.Request.Context(), resp)})
}

type autoCreateBundlesRequest struct {
	CreatorID string `json:"creator_id"`
}

func (s *Server) AutoCreateBundles(c *gin.Context) {
	var req autoCreateBundlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	created, err := s.bundleSvc.AutoCreate(c.Request.Context(), bundledomain.AutoCreateRequest{
		CreatorID: strings.TrimSpace(req.CreatorID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	payload := make([]bundlePayload, 0, len(created))
	for _, bundle := range created {
		s.metrics.BundleCreated("auto")
		payload = append(payload, bundleView(c.Request.Context(), bundle))
	}

	c.JSON(http.StatusCreated, gin.H{"data": payload})
}

func (s *Server) ListBundles(c *gin.Context) {
	var query struct {
		PageToken string `form:"page_token"`
		PageSize  int    `form:"page_size"`
		CreatorID string `form:"creator_id"`
		Title     string `form:"title"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	s.listBundles(c, bundledomain.ListBundleRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		CreatorID: strings.TrimSpace(query.CreatorID),
		Title:     strings.TrimSpace(query.Title),
	})
}

func (s *Server) ListBundlesByCreator(c *gin.Context) {
	var query struct {
		PageToken string `form:"page_token"`
		PageSize  int    `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	s.listBundles(c, bundledomain.ListBundleRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		CreatorID: strings.TrimSpace(c.Param("creatorId")),
	})
}

func (s *Server) listBundles(c *gin.Context, req bundledomain.ListBundleRequest) {
	resp, err := s.bundleSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	loc := pricing.FromContext(c.Request.Context())
	payload := listBundlesPayload{
		PageInfo: resp.PageInfo,
		Region:   string(loc.Region),
		Bundles:  make([]bundlePayload, 0, len(resp.Bundles)),
	}
	for _, bundle := range resp.Bundles {
		payload.Bundles = append(payload.Bundles, bundleView(c.Request.Context(), bundle))
	}

	c.JSON(http.StatusOK, gin.H{"data": payload})
}

func (s *Server) GetBundleByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.bundleSvc.GetByID(c.Request.Context(), bundledomain.GetBundleRequest{ID: id})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bundleView(c.Request.Context(), resp)})
}

type updateBundleRequest struct {
	Title     *string  `json:"title"`
	CourseIDs []string `json:"course_ids"`
	Image     *string  `json:"image"`
	Discount  *float64 `json:"discount"`
}

func (s *Server) UpdateBundle(c *gin.Context) {
	var req updateBundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.bundleSvc.Update(c.Request.Context(), bundledomain.UpdateBundleRequest{
		ID:        strings.TrimSpace(c.Param("id")),
		Title:     req.Title,
		CourseIDs: req.CourseIDs,
		Image:     req.Image,
		Discount:  req.Discount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bundleView(c.Request.Context(), resp)})
}

func (s *Server) DeleteBundle(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.bundleSvc.Delete(c.Request.Context(), bundledomain.DeleteBundleRequest{ID: id}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isBundleValidationError(err error) bool {
	switch err {
	case bundledomain.ErrInvalidTitle,
		bundledomain.ErrInvalidCourses,
		bundledomain.ErrInvalidDiscount,
		bundledomain.ErrInvalidCreator,
		bundledomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
