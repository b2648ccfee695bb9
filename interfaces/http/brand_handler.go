package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-manager/domain/model"
	"social-manager/usecase"
)

type IBrandHandler interface {
	CreateBrand(ctx *gin.Context)
	GetBrand(ctx *gin.Context)
	DeleteBrand(ctx *gin.Context)
	SetYouTubeCredentials(ctx *gin.Context)
	ClearYouTubeCredentials(ctx *gin.Context)
	GetPublishConfig(ctx *gin.Context)
	SetPublishConfig(ctx *gin.Context)
}

type BrandHandler struct {
	brandUsecase usecase.IBrandUsecase
}

func NewBrandHandler(uc usecase.IBrandUsecase) IBrandHandler {
	return &BrandHandler{brandUsecase: uc}
}

type createBrandRequest struct {
	Name string `json:"name"`
}

func (h *BrandHandler) CreateBrand(ctx *gin.Context) {
	var req createBrandRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	brand, err := h.brandUsecase.CreateBrand(ctx.Request.Context(), ctx.GetString("user_id"), req.Name)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, brand)
}

func (h *BrandHandler) GetBrand(ctx *gin.Context) {
	brand, err := h.brandUsecase.GetBrand(ctx.Request.Context(), ctx.Param("brandId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, brand)
}

func (h *BrandHandler) DeleteBrand(ctx *gin.Context) {
	if err := h.brandUsecase.DeleteBrand(ctx.Request.Context(), ctx.Param("brandId")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": true})
}

type credentialsRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

func (h *BrandHandler) SetYouTubeCredentials(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	err := h.brandUsecase.SetYouTubeCredentials(ctx.Request.Context(), ctx.Param("brandId"), req.ClientID, req.ClientSecret)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"configured": true})
}

func (h *BrandHandler) ClearYouTubeCredentials(ctx *gin.Context) {
	if err := h.brandUsecase.ClearYouTubeCredentials(ctx.Request.Context(), ctx.Param("brandId")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"configured": false})
}

func (h *BrandHandler) GetPublishConfig(ctx *gin.Context) {
	cfg, err := h.brandUsecase.GetPublishConfig(ctx.Request.Context(), ctx.Param("brandId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cfg)
}

type publishConfigRequest struct {
	RequireApproval bool `json:"requireApproval"`
	AutoPublish     bool `json:"autoPublish"`
}

func (h *BrandHandler) SetPublishConfig(ctx *gin.Context) {
	var req publishConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	cfg := &model.PublishConfig{
		BrandID:         ctx.Param("brandId"),
		RequireApproval: req.RequireApproval,
		AutoPublish:     req.AutoPublish,
	}
	if err := h.brandUsecase.SetPublishConfig(ctx.Request.Context(), cfg); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cfg)
}
