package controllers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"boda-backend/services"
	"boda-backend/utils"
)

type ResourceStore[T any, PT services.Resource[T]] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (PT, error)
	Create(ctx context.Context, item PT) error
	Save(ctx context.Context, id uint, item PT) error
	Delete(ctx context.Context, id uint) error
}

type validator interface {
	Validate() error
}

// Uploader stores a base64 file and returns the URL it is served from.
type Uploader interface {
	SaveBase64(b64, subdir string) (string, error)
}

// attachmentHolder is a model that may carry an inline base64 file.
type attachmentHolder interface {
	Attachment() (b64 string, subdir string)
	SetAttachmentURL(url string)
}

// ResourceController serves list/get/create/update/delete for one planner model.
type ResourceController[T any, PT services.Resource[T]] struct {
	Svc     ResourceStore[T, PT]
	Name    string
	Uploads Uploader
}

func NewResourceController[T any, PT services.Resource[T]](svc ResourceStore[T, PT], name string) *ResourceController[T, PT] {
	return &ResourceController[T, PT]{Svc: svc, Name: name}
}

func (rc *ResourceController[T, PT]) WithUploads(u Uploader) *ResourceController[T, PT] {
	rc.Uploads = u
	return rc
}

// saveAttachment swaps an inline file for its stored URL. A file that cannot be saved
// is logged and the record is written without it.
func (rc *ResourceController[T, PT]) saveAttachment(item any) {
	h, ok := item.(attachmentHolder)
	if !ok || rc.Uploads == nil {
		return
	}
	b64, subdir := h.Attachment()
	if b64 == "" {
		return
	}
	url, err := rc.Uploads.SaveBase64(b64, subdir)
	if err != nil {
		log.Printf("⚠️ could not save %s attachment: %v", rc.Name, err)
		return
	}
	log.Printf("✅ saved %s attachment: %s", rc.Name, url)
	h.SetAttachmentURL(url)
}

func validate(item any) error {
	if v, ok := item.(validator); ok {
		return v.Validate()
	}
	return nil
}

func (rc *ResourceController[T, PT]) List(c *gin.Context) {
	items, err := rc.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (rc *ResourceController[T, PT]) Get(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	item, err := rc.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (rc *ResourceController[T, PT]) Create(c *gin.Context) {
	item := PT(new(T))
	if err := c.ShouldBindJSON(item); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate(item); err != nil {
		respondError(c, err)
		return
	}
	rc.saveAttachment(item)
	if err := rc.Svc.Create(c.Request.Context(), item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update merges the body into the stored record and saves it.
func (rc *ResourceController[T, PT]) Update(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	item, err := rc.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := c.ShouldBindJSON(item); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate(item); err != nil {
		respondError(c, err)
		return
	}
	rc.saveAttachment(item)
	if err := rc.Svc.Save(c.Request.Context(), id, item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (rc *ResourceController[T, PT]) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		return
	}
	if err := rc.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, rc.Name+" deleted")
}

// Register mounts the five routes on g.
func (rc *ResourceController[T, PT]) Register(g *gin.RouterGroup) {
	g.GET("", rc.List)
	g.GET("/:id", rc.Get)
	g.POST("", rc.Create)
	g.PUT("/:id", rc.Update)
	g.DELETE("/:id", rc.Delete)
}
