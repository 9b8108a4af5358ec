package handlers

import (
	"net/http"

	"brand-portal/internal/query"
	"brand-portal/internal/service"
	"brand-portal/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BrandHandler struct {
	svc   *service.BrandService
	files storage.Storage
	log   *zap.SugaredLogger
}

func NewBrandHandler(svc *service.BrandService, files storage.Storage, log *zap.SugaredLogger) *BrandHandler {
	return &BrandHandler{svc: svc, files: files, log: log}
}

func (h *BrandHandler) List(c *gin.Context) {
	filter := service.BrandFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Page:   query.ParsePage(c.Query("page"), c.Query("limit"), 10),
	}

	brands, pagination, err := h.svc.List(filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"brands": brands, "pagination": pagination})
}

func (h *BrandHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	brand, err := h.svc.Get(id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"brand": brand})
}

// storedLogo saves the optional multipart logo and returns nil when the
// form carries none.
func (h *BrandHandler) storedLogo(c *gin.Context) (*service.StoredFile, error) {
	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return nil, nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	key, err := h.files.Save(f, fileHeader.Filename)
	if err != nil {
		return nil, err
	}

	return &service.StoredFile{
		Key:          key,
		OriginalName: fileHeader.Filename,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
	}, nil
}

func (h *BrandHandler) Create(c *gin.Context) {
	logo, err := h.storedLogo(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	input := service.BrandInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Status:      c.PostForm("status"),
	}

	brand, err := h.svc.Create(input, logo)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Brand created successfully.",
		"brand":   brand,
	})
}

func (h *BrandHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	logo, err := h.storedLogo(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	input := service.BrandInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Status:      c.PostForm("status"),
	}

	brand, err := h.svc.Update(id, input, logo)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Brand updated successfully.",
		"brand":   brand,
	})
}

func (h *BrandHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Brand deleted successfully."})
}
