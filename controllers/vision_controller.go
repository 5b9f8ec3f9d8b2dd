package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vonvha/Nutri-Smart/middlewares"
	"github.com/vonvha/Nutri-Smart/services"
)

type VisionController struct {
	Vision   *services.VisionService
	MaxBytes int64
}

func NewVisionController(vs *services.VisionService, maxBytes int64) *VisionController {
	return &VisionController{Vision: vs, MaxBytes: maxBytes}
}

// POST /vision/analyze-food takes either a multipart "file" field or the raw
// image as the request body.
func (vc *VisionController) AnalyzeFood(c *gin.Context) {
	image, contentType, err := vc.readImage(c)
	if err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image too large"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	res, err := vc.Vision.AnalyzeFood(c.Request.Context(), middlewares.UserEmail(c), contentType, image)
	switch {
	case errors.Is(err, services.ErrUnsupportedMedia):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "El archivo debe ser una imagen."})
	case errors.Is(err, services.ErrEmptyImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		internalError(c, err)
	default:
		c.JSON(http.StatusOK, res)
	}
}

func (vc *VisionController) readImage(c *gin.Context) ([]byte, string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, vc.MaxBytes+multipartOverhead)

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, "", err
		}
		if int64(len(data)) > vc.MaxBytes {
			return nil, "", &http.MaxBytesError{Limit: vc.MaxBytes}
		}
		return data, c.GetHeader("Content-Type"), nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return nil, "", err
	}
	if fh.Size > vc.MaxBytes {
		return nil, "", &http.MaxBytesError{Limit: vc.MaxBytes}
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}

// room for multipart boundaries and headers on top of the image itself
const multipartOverhead = 64 << 10
