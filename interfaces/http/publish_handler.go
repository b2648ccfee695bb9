package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-manager/domain/dto"
	"social-manager/domain/model"
	"social-manager/usecase"
)

type IPublishHandler interface {
	PublishToAllChannels(ctx *gin.Context)
	ApprovePublishes(ctx *gin.Context)
	RetryFailedPublishes(ctx *gin.Context)
	PublishStatus(ctx *gin.Context)
}

type PublishHandler struct {
	publishUsecase usecase.IPublishUsecase
}

func NewPublishHandler(uc usecase.IPublishUsecase) IPublishHandler {
	return &PublishHandler{publishUsecase: uc}
}

func (h *PublishHandler) PublishToAllChannels(ctx *gin.Context) {
	res, err := h.publishUsecase.PublishToAllChannels(ctx.Request.Context(), ctx.Param("scriptId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

func (h *PublishHandler) ApprovePublishes(ctx *gin.Context) {
	var req dto.ApproveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	res, err := h.publishUsecase.ApprovePublishes(ctx.Request.Context(), req.PublishIDs)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

func (h *PublishHandler) RetryFailedPublishes(ctx *gin.Context) {
	var req dto.RetryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	res, err := h.publishUsecase.RetryFailedPublishes(ctx.Request.Context(), req.PublishIDs)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

func (h *PublishHandler) PublishStatus(ctx *gin.Context) {
	list, err := h.publishUsecase.PublishStatus(ctx.Request.Context(), ctx.Param("scriptId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if list == nil {
		list = []*model.Publish{}
	}
	ctx.JSON(http.StatusOK, gin.H{"publishes": list})
}
