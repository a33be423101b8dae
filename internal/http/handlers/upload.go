package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/geocoder89/vallas-api/internal/upload"
	"github.com/gin-gonic/gin"
)

type FileAcceptor interface {
	Accept(fh *multipart.FileHeader) (upload.File, error)
	Mode() upload.Mode
}

type UploadHandler struct {
	files FileAcceptor
}

func NewUploadHandler(files FileAcceptor) *UploadHandler {
	return &UploadHandler{files: files}
}

// Upload handles POST /api/upload with a multipart "file" field.
func (h *UploadHandler) Upload(ctx *gin.Context) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			RespondError(ctx, http.StatusRequestEntityTooLarge, "file_too_large", "El archivo supera el tamaño permitido", nil)
			return
		}
		RespondErr(ctx, upload.ErrMissingFile)
		return
	}

	f, err := h.files.Accept(fh)
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	if h.files.Mode() == upload.ModeMemory {
		ctx.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Archivo recibido en MEMORIA",
			"size":     f.Size,
			"mimetype": f.MIMEType,
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Archivo guardado LOCALMENTE",
		"filename": f.Filename,
		"path":     f.Path,
		"size":     f.Size,
		"mimetype": f.MIMEType,
	})
}
