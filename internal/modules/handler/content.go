package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tonelab-collective/booking/internal/modules/serializer"
	"github.com/tonelab-collective/booking/internal/modules/service"
)

type ContentHandler struct {
	svc     service.ContentService
	objects service.ReceiptService
}

func NewContentHandler(s service.ContentService, objects service.ReceiptService) *ContentHandler {
	return &ContentHandler{svc: s, objects: objects}
}

// ListPublicContent godoc
//
//	@Summary		Public site content
//	@Description	Editable page copy and image paths. Seeds the defaults on first read.
//	@Tags			content
//	@Produce		json
//	@Success		200	{array}	model.SiteContent
//	@Router			/content/public [get]
func (h *ContentHandler) ListPublicContent(c *gin.Context) {
	items, err := h.svc.ListPublic(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Failed to fetch content", err))
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListContent godoc
//
//	@Summary	List site content
//	@Tags		content
//	@Produce	json
//	@Security	AdminCookie
//	@Success	200	{array}		model.SiteContent
//	@Failure	401	{object}	serializer.ErrorResponse
//	@Router		/content [get]
func (h *ContentHandler) ListContent(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Failed to fetch content", err))
		return
	}
	c.JSON(http.StatusOK, items)
}

type UpdateContentReq struct {
	Content string `json:"content" binding:"required" example:"Sunday, 14 December 2025"`
}

// UpdateContent godoc
//
//	@Summary		Update site content
//	@Description	Replace the content of one entry.
//	@Tags			content
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Content ID"	format(uuid)
//	@Param			payload	body		handler.UpdateContentReq	true	"New content"
//	@Security		AdminCookie
//	@Success		200	{object}	model.SiteContent
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/content/{id} [put]
func (h *ContentHandler) UpdateContent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, serializer.NotFound("Content not found"))
		return
	}

	var req UpdateContentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Content is required", err))
		return
	}

	item, err := h.svc.Update(c.Request.Context(), id, req.Content)
	switch {
	case errors.Is(err, service.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Content is required", err))
	case errors.Is(err, service.ErrContentNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFound("Content not found"))
	case err != nil:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Failed to update content", err))
	default:
		c.JSON(http.StatusOK, item)
	}
}

// ImageUploadURL godoc
//
//	@Summary		Presign an image upload
//	@Description	Returns a presigned PUT URL for a public site image and the object path to store in content.
//	@Tags			content
//	@Produce		json
//	@Security		AdminCookie
//	@Success		200	{object}	service.UploadTarget
//	@Failure		401	{object}	serializer.ErrorResponse
//	@Router			/content/upload-image [post]
func (h *ContentHandler) ImageUploadURL(c *gin.Context) {
	target, err := h.objects.ImageUploadTarget(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Failed to get upload URL", err))
		return
	}
	c.JSON(http.StatusOK, target)
}

// UploadImage godoc
//
//	@Summary		Upload a site image
//	@Description	Stores a public site image server side and returns the object path to store in content.
//	@Tags			content
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		AdminCookie
//	@Param			file	formData	file	true	"Image file"
//	@Success		201		{object}	service.StoredImage
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Failure		401		{object}	serializer.ErrorResponse
//	@Failure		413		{object}	serializer.ErrorResponse
//	@Router			/content/images [post]
func (h *ContentHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("A file field is required", err))
		return
	}

	out, err := h.objects.UploadImage(c.Request.Context(), fh)
	switch {
	case errors.Is(err, service.ErrUnsupportedImage):
		c.JSON(http.StatusBadRequest, serializer.ParamErr("File must be an image", err))
	case errors.Is(err, service.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, serializer.ParamErr("Image is too large", err))
	case err != nil:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Failed to upload image", err))
	default:
		c.JSON(http.StatusCreated, out)
	}
}
