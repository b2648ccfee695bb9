package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"social-manager/domain/dto"
	"social-manager/domain/model"
	"social-manager/usecase"
)

type IScriptHandler interface {
	CreateScript(ctx *gin.Context)
	GetScript(ctx *gin.Context)
	ListScripts(ctx *gin.Context)
	ScheduleScript(ctx *gin.Context)
	DeleteScript(ctx *gin.Context)
	SubmitGeneration(ctx *gin.Context)
	RunScheduledScripts(ctx *gin.Context)
	RefreshJobStatus(ctx *gin.Context)
	ListGeneratorJobs(ctx *gin.Context)
	CancelJob(ctx *gin.Context)
}

type ScriptHandler struct {
	scriptUsecase usecase.IScriptUsecase
}

func NewScriptHandler(uc usecase.IScriptUsecase) IScriptHandler {
	return &ScriptHandler{scriptUsecase: uc}
}

type createScriptRequest struct {
	BrandID  string                `json:"brandId"`
	Title    string                `json:"title"`
	Document *model.ScriptDocument `json:"document"`
}

func (h *ScriptHandler) CreateScript(ctx *gin.Context) {
	var req createScriptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	script, err := h.scriptUsecase.CreateScript(ctx.Request.Context(), req.BrandID, req.Title, req.Document)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, script)
}

func (h *ScriptHandler) GetScript(ctx *gin.Context) {
	script, err := h.scriptUsecase.GetScript(ctx.Request.Context(), ctx.Param("scriptId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, script)
}

func (h *ScriptHandler) ListScripts(ctx *gin.Context) {
	scripts, err := h.scriptUsecase.ListScripts(ctx.Request.Context(), ctx.Param("brandId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if scripts == nil {
		scripts = []*model.Script{}
	}
	ctx.JSON(http.StatusOK, gin.H{"scripts": scripts})
}

type scheduleScriptRequest struct {
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
}

func (h *ScriptHandler) ScheduleScript(ctx *gin.Context) {
	var req scheduleScriptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.scriptUsecase.ScheduleScript(ctx.Request.Context(), ctx.Param("scriptId"), req.ScheduledAt); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"scheduled": true, "scheduled_at": req.ScheduledAt})
}

func (h *ScriptHandler) DeleteScript(ctx *gin.Context) {
	if err := h.scriptUsecase.DeleteScript(ctx.Request.Context(), ctx.Param("scriptId")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *ScriptHandler) SubmitGeneration(ctx *gin.Context) {
	job, err := h.scriptUsecase.SubmitGeneration(ctx.Request.Context(), ctx.Param("scriptId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, job)
}

// RunScheduledScripts triggers one sweep over due scheduled scripts. Meant to
// be hit by an external scheduler (cron) at whatever cadence fits.
func (h *ScriptHandler) RunScheduledScripts(ctx *gin.Context) {
	res, err := h.scriptUsecase.RunScheduledScripts(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

func (h *ScriptHandler) RefreshJobStatus(ctx *gin.Context) {
	job, err := h.scriptUsecase.RefreshJobStatus(ctx.Request.Context(), ctx.Param("jobId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, job)
}

func (h *ScriptHandler) ListGeneratorJobs(ctx *gin.Context) {
	opts := &dto.JobListOptions{Status: ctx.Query("status")}
	if limit := ctx.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number"})
			return
		}
		opts.Limit = n
	}
	res, err := h.scriptUsecase.ListGeneratorJobs(ctx.Request.Context(), opts)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

func (h *ScriptHandler) CancelJob(ctx *gin.Context) {
	if err := h.scriptUsecase.CancelJob(ctx.Request.Context(), ctx.Param("jobId")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"cancelled": true})
}
