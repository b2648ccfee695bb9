package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-manager/domain/dto"
	"social-manager/domain/model"
	"social-manager/usecase"
)

type IChannelHandler interface {
	GetAuthURL(ctx *gin.Context)
	HandleCallback(ctx *gin.Context)
	ListChannels(ctx *gin.Context)
	DisconnectChannel(ctx *gin.Context)
	DisconnectAllForBrand(ctx *gin.Context)
	CheckHealth(ctx *gin.Context)
	GetVideo(ctx *gin.Context)
	UpdateVideo(ctx *gin.Context)
	DeleteVideo(ctx *gin.Context)
}

type ChannelHandler struct {
	channelUsecase usecase.IChannelUsecase
}

func NewChannelHandler(uc usecase.IChannelUsecase) IChannelHandler {
	return &ChannelHandler{channelUsecase: uc}
}

func (h *ChannelHandler) GetAuthURL(ctx *gin.Context) {
	brandID := ctx.Query("brandId")
	if brandID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "brandId is required"})
		return
	}
	url, err := h.channelUsecase.AuthURL(ctx.Request.Context(), brandID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"url": url})
}

// HandleCallback is the OAuth redirect target. state carries the brand id
// set when the auth URL was generated.
func (h *ChannelHandler) HandleCallback(ctx *gin.Context) {
	req := dto.ConnectCallbackRequest{
		Code:    ctx.Query("code"),
		BrandID: ctx.Query("state"),
	}
	if req.Code == "" || req.BrandID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "code and state are required"})
		return
	}
	ch, err := h.channelUsecase.HandleCallback(ctx.Request.Context(), req.Code, req.BrandID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, channelResponse(ch))
}

func (h *ChannelHandler) ListChannels(ctx *gin.Context) {
	channels, err := h.channelUsecase.ListChannels(ctx.Request.Context(), ctx.Param("brandId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	res := make([]dto.ChannelResponse, 0, len(channels))
	for _, ch := range channels {
		res = append(res, channelResponse(ch))
	}
	ctx.JSON(http.StatusOK, gin.H{"channels": res})
}

func (h *ChannelHandler) DisconnectChannel(ctx *gin.Context) {
	if err := h.channelUsecase.DisconnectChannel(ctx.Request.Context(), ctx.Param("channelId")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"disconnected": 1})
}

func (h *ChannelHandler) DisconnectAllForBrand(ctx *gin.Context) {
	n, err := h.channelUsecase.DisconnectAllForBrand(ctx.Request.Context(), ctx.Param("brandId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"disconnected": n})
}

func (h *ChannelHandler) CheckHealth(ctx *gin.Context) {
	health, err := h.channelUsecase.CheckHealth(ctx.Request.Context(), ctx.Param("channelId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, health)
}

func (h *ChannelHandler) GetVideo(ctx *gin.Context) {
	details, err := h.channelUsecase.GetVideo(ctx.Request.Context(), ctx.Param("channelId"), ctx.Param("videoId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, details)
}

type videoUpdateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	CategoryID  string   `json:"categoryId"`
}

func (h *ChannelHandler) UpdateVideo(ctx *gin.Context) {
	var req videoUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	meta := &model.YouTubeMetadata{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		CategoryID:  req.CategoryID,
	}
	err := h.channelUsecase.UpdateVideo(ctx.Request.Context(), ctx.Param("channelId"), ctx.Param("videoId"), meta)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *ChannelHandler) DeleteVideo(ctx *gin.Context) {
	err := h.channelUsecase.DeleteVideo(ctx.Request.Context(), ctx.Param("channelId"), ctx.Param("videoId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": true})
}

func channelResponse(ch *model.Channel) dto.ChannelResponse {
	return dto.ChannelResponse{
		ID:                ch.ID,
		BrandID:           ch.BrandID,
		Platform:          ch.Platform,
		PlatformAccountID: ch.PlatformAccountID,
		Title:             ch.Title,
		TokenExpiresAt:    ch.TokenExpiresAt,
		CreatedAt:         ch.CreatedAt,
	}
}
