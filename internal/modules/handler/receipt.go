package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tonelab-collective/booking/internal/modules/serializer"
	"github.com/tonelab-collective/booking/internal/modules/service"
	"github.com/tonelab-collective/booking/internal/pkg/utils/path"
)

type ReceiptHandler struct {
	svc service.ReceiptService
}

func NewReceiptHandler(s service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{svc: s}
}

// ReceiptUploadURL godoc
//
//	@Summary		Presign a receipt upload
//	@Description	Returns a presigned PUT URL. Send objectPath as receiptPath when submitting the booking.
//	@Tags			receipt
//	@Produce		json
//	@Success		200	{object}	service.UploadTarget
//	@Failure		500	{object}	serializer.ErrorResponse
//	@Router			/receipts/upload [post]
func (h *ReceiptHandler) ReceiptUploadURL(c *gin.Context) {
	target, err := h.svc.ReceiptUploadTarget(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Failed to get upload URL", err))
		return
	}
	c.JSON(http.StatusOK, target)
}

// UploadReceipt godoc
//
//	@Summary		Upload a receipt
//	@Description	Stores an image or PDF receipt server side.
//	@Tags			receipt
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Receipt image or PDF"
//	@Success		201		{object}	service.StoredReceipt
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Failure		413		{object}	serializer.ErrorResponse
//	@Router			/receipts [post]
func (h *ReceiptHandler) UploadReceipt(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("A file field is required", err))
		return
	}

	out, err := h.svc.Upload(c.Request.Context(), fh)
	switch {
	case errors.Is(err, service.ErrUnsupportedFile):
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Receipt must be an image or PDF", err))
	case errors.Is(err, service.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, serializer.ParamErr("Receipt is too large", err))
	case err != nil:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Failed to upload receipt", err))
	default:
		c.JSON(http.StatusCreated, out)
	}
}

func (h *ReceiptHandler) redirect(c *gin.Context, objectPath string) {
	u, err := h.svc.ResolveURL(c.Request.Context(), objectPath)
	if err != nil {
		if errors.Is(err, service.ErrInvalidObjectPath) {
			c.JSON(http.StatusNotFound, serializer.NotFound("Object not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Failed to resolve object", err))
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, u)
}

// GetObject godoc
//
//	@Summary		Fetch a stored object
//	@Description	Redirects to a short-lived presigned URL.
//	@Tags			receipt
//	@Param			path	path	string	true	"Object key"
//	@Success		307
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/objects/{path} [get]
func (h *ReceiptHandler) GetObject(c *gin.Context) {
	h.redirect(c, path.ObjectsPrefix+strings.TrimPrefix(c.Param("path"), "/"))
}

// GetPublicObject godoc
//
//	@Summary		Fetch a public site image
//	@Tags			receipt
//	@Param			path	path	string	true	"Image path under public/"
//	@Success		307
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/public-objects/{path} [get]
func (h *ReceiptHandler) GetPublicObject(c *gin.Context) {
	h.redirect(c, path.ObjectsPrefix+service.ImagePrefix+"/"+strings.TrimPrefix(c.Param("path"), "/"))
}
