package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stockpile/backend/internal/application/projection"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/identity"
	"github.com/stockpile/backend/internal/domain/shared"
	"github.com/stockpile/backend/internal/interfaces/http/dto"
)

// ResourceService is the lifecycle every administered resource exposes.
// crud.Service satisfies it for any record type.
type ResourceService interface {
	Resource() string
	List(ctx context.Context, filter shared.Filter, columns []string) (shared.Paginated[projection.Resource], error)
	Get(ctx context.Context, id int64, columns []string) (projection.Resource, error)
	Create(ctx context.Context, in validation.Fields) (projection.Resource, error)
	Update(ctx context.Context, id int64, in validation.Fields) (projection.Resource, error)
	Delete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) (projection.Resource, error)
	ForceDelete(ctx context.Context, id int64) error
}

// Authorize returns the middleware that demands one permission.
type Authorize func(permission string) gin.HandlerFunc

// ResourceHandler serves the REST routes of one resource.
type ResourceHandler struct {
	BaseHandler
	service ResourceService
}

// NewResourceHandler creates a handler over service.
func NewResourceHandler(service ResourceService) *ResourceHandler {
	return &ResourceHandler{service: service}
}

// Register mounts the resource under group. authorize may be nil.
func (h *ResourceHandler) Register(group *gin.RouterGroup, authorize Authorize) {
	name := h.service.Resource()
	guard := func(action string) []gin.HandlerFunc {
		if authorize == nil {
			return nil
		}
		return []gin.HandlerFunc{authorize(identity.PermissionName(name, action))}
	}
	with := func(action string, handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(guard(action), handler)
	}

	group.GET("", with("read", h.List)...)
	group.GET("/:id", with("read", h.Get)...)
	group.POST("", with("create", h.Create)...)
	group.PUT("/:id", with("update", h.Update)...)
	group.PATCH("/:id", with("update", h.Update)...)
	group.DELETE("/:id", with("delete", h.Delete)...)
	group.POST("/:id/restore", with("update", h.Restore)...)
	group.DELETE("/:id/force", with("delete", h.ForceDelete)...)
}

// List handles GET /R
func (h *ResourceHandler) List(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), listFilter(c), columns(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page))
}

// Get handles GET /R/:id
func (h *ResourceHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	res, err := h.service.Get(c.Request.Context(), id, columns(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, res)
}

// Create handles POST /R
func (h *ResourceHandler) Create(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	res, err := h.service.Create(c.Request.Context(), fields)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, res)
}

// Update handles PUT and PATCH /R/:id. Only sent fields change.
func (h *ResourceHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	fields, err := bindFields(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	res, err := h.service.Update(c.Request.Context(), id, fields)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, res)
}

// Delete handles DELETE /R/:id
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Restore handles POST /R/:id/restore
func (h *ResourceHandler) Restore(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	res, err := h.service.Restore(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, res)
}

// ForceDelete handles DELETE /R/:id/force
func (h *ResourceHandler) ForceDelete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := h.service.ForceDelete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
