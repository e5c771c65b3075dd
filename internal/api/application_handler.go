package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"vectorhire/internal/api/middleware"
	"vectorhire/internal/applicant"
	"vectorhire/internal/archive"
	"vectorhire/internal/notify"
	"vectorhire/internal/query"
	"vectorhire/internal/store"
)

// ApplicationHandler 负责后台审阅接口：列表、状态更新与删除。
type ApplicationHandler struct {
	Store   *store.RecordStore
	Archive *archive.Client
	Hub     *notify.Hub
	Logger  *slog.Logger
}

// NewApplicationHandler 构造后台处理器。archiveClient 可以为 nil。
func NewApplicationHandler(recordStore *store.RecordStore, archiveClient *archive.Client, hub *notify.Hub, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Store:   recordStore,
		Archive: archiveClient,
		Hub:     hub,
		Logger:  logger,
	}
}

// List 返回按状态过滤、按指定字段排序的投递视图。
// 过滤与排序均在视图层完成，存储层不保证顺序。
func (h *ApplicationHandler) List(c *gin.Context) {
	filter := query.ParseStatusFilter(c.DefaultQuery("status", "all"))
	field := query.ParseSortField(c.DefaultQuery("sort", "createdAt"))
	dir := query.ParseDirection(c.DefaultQuery("direction", "desc"))

	records := h.Store.List(c.Request.Context())
	view := query.View(records, filter, field, dir)

	c.JSON(http.StatusOK, gin.H{
		"items": view,
		"total": len(view),
	})
}

// ListByJob 返回某个职位下的全部投递。
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	jobID := c.Param("id")
	records := h.Store.ListByJob(c.Request.Context(), jobID)
	c.JSON(http.StatusOK, gin.H{
		"items": records,
		"total": len(records),
	})
}

type updateApplicationRequest struct {
	Status *string `json:"status"`
}

// Update 对投递记录做部分更新，目前开放的字段只有生命周期状态。
func (h *ApplicationHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req updateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.Status == nil {
		BadRequest(c, "no fields to update")
		return
	}
	switch *req.Status {
	case applicant.StatusReceived, applicant.StatusScreened:
	default:
		BadRequest(c, "invalid status")
		return
	}

	ctx := c.Request.Context()
	found := false
	for _, app := range h.Store.List(ctx) {
		if app.ID == id {
			found = true
			break
		}
	}
	if !found {
		NotFound(c, "application not found")
		return
	}

	if err := h.Store.UpdatePartial(ctx, id, applicant.Patch{Status: req.Status}); err != nil {
		h.loggerFromContext(c).Error("update application failed", slog.String("application_id", id), slog.Any("error", err))
		Internal(c, "failed to update application")
		return
	}

	if h.Hub != nil {
		h.Hub.Publish(ctx, notify.EventApplicationsChanged)
	}

	c.Status(http.StatusNoContent)
}

// Delete 删除投递记录；归档对象一并尽力清理。
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if err := h.Store.Remove(ctx, id); err != nil {
		h.loggerFromContext(c).Error("remove application failed", slog.String("application_id", id), slog.Any("error", err))
		Internal(c, "failed to delete application")
		return
	}

	if h.Archive != nil {
		if err := h.Archive.Delete(ctx, id); err != nil {
			h.loggerFromContext(c).Error("delete archived upload failed", slog.String("application_id", id), slog.Any("error", err))
		}
	}

	if h.Hub != nil {
		h.Hub.Publish(ctx, notify.EventApplicationsChanged)
	}

	c.Status(http.StatusNoContent)
}

func (h *ApplicationHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
