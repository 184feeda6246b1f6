package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"festivo/middleware"
	"festivo/models"
	"festivo/services/review"
)

// ReviewHandler exposes review CRUD; every mutation flows through the rating
// aggregator.
type ReviewHandler struct {
	Svc review.ReviewService
}

func NewReviewHandler(svc review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Svc: svc}
}

type createReviewRequest struct {
	ServiceID string `json:"serviceId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"required"`
}

// Create handles POST /api/review/:type/create.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	rv, svc, err := h.Svc.CreateReview(c.Request.Context(), review.CreateInput{
		ServiceType: models.ServiceType(c.Param("type")),
		ServiceID:   req.ServiceID,
		UserID:      c.GetString(middleware.CtxCustomerID),
		Rating:      req.Rating,
		Comment:     req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": rv, "service": svc})
}

type updateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// Update handles PUT /api/review/:type/:id.
func (h *ReviewHandler) Update(c *gin.Context) {
	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	rv, err := h.Svc.UpdateReview(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxCustomerID), req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}

// Delete handles DELETE /api/review/:type/:id.
func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteReview(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxCustomerID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Review deleted successfully"})
}

// ListByService handles GET /api/review/:type/service/:serviceId.
func (h *ReviewHandler) ListByService(c *gin.Context) {
	reviews, err := h.Svc.ListByService(c.Request.Context(), models.ServiceType(c.Param("type")), c.Param("serviceId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
