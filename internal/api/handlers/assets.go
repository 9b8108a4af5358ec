package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"

	"brand-portal/internal/api/middleware"
	"brand-portal/internal/config"
	"brand-portal/internal/query"
	"brand-portal/internal/service"
	"brand-portal/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AssetHandler struct {
	svc   *service.AssetService
	files storage.Storage
	cfg   *config.Config
	log   *zap.SugaredLogger
}

func NewAssetHandler(svc *service.AssetService, files storage.Storage, cfg *config.Config, log *zap.SugaredLogger) *AssetHandler {
	return &AssetHandler{svc: svc, files: files, cfg: cfg, log: log}
}

func (h *AssetHandler) List(c *gin.Context) {
	filter := service.AssetFilter{
		Search:   c.Query("search"),
		Type:     c.Query("type"),
		FolderID: c.Query("folder_id"),
		BrandID:  c.Query("brand_id"),
		Page:     query.ParsePage(c.Query("page"), c.Query("limit"), 20),
	}

	assets, pagination, err := h.svc.List(middleware.Identity(c), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assets": assets, "pagination": pagination})
}

func (h *AssetHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	asset, err := h.svc.Get(middleware.Identity(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

func (h *AssetHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded."})
		return
	}
	if fileHeader.Size > h.cfg.Storage.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File too large."})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	defer f.Close()

	key, err := h.files.Save(f, fileHeader.Filename)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	stored := &service.StoredFile{
		Key:          key,
		OriginalName: fileHeader.Filename,
		MimeType:     mimeType,
		Size:         fileHeader.Size,
	}
	input := service.CreateAssetInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		FolderID:    c.PostForm("folder_id"),
		BrandID:     c.PostForm("brand_id"),
		Tags:        c.PostForm("tags"),
	}

	asset, err := h.svc.Create(middleware.Identity(c), stored, input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Asset uploaded successfully.",
		"asset":   asset,
	})
}

func (h *AssetHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input service.UpdateAssetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	asset, err := h.svc.Update(middleware.Identity(c), id, input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Asset updated successfully.",
		"asset":   asset,
	})
}

func (h *AssetHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(middleware.Identity(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully."})
}

func (h *AssetHandler) Share(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input service.ShareInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	share, err := h.svc.Share(middleware.Identity(c), id, input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Asset shared successfully.",
		"share":   share,
	})
}

// Download streams the stored payload with the asset's declared MIME type.
func (h *AssetHandler) Download(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	asset, err := h.svc.Get(middleware.Identity(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	reader, err := h.files.Open(asset.FilePath)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, asset.FileSize, asset.MimeType, reader, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", asset.FileName),
	})
}

func (h *AssetHandler) ExportCSV(c *gin.Context) {
	assets, err := h.svc.ListAll(middleware.Identity(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment;filename=assets_export.csv")

	writer := csv.NewWriter(c.Writer)
	writer.Write([]string{"ID", "Name", "Type", "Mime Type", "Size", "Brand", "Folder", "Uploader", "Tags", "Created At"})
	for _, a := range assets {
		writer.Write([]string{
			fmt.Sprint(a.ID),
			a.Name,
			a.FileType,
			a.MimeType,
			fmt.Sprint(a.FileSize),
			a.BrandName,
			a.FolderName,
			a.UserName,
			strings.Join(a.Tags, ","),
			a.CreatedAt.String(),
		})
	}

	writer.Flush()
	// a write error means the client got a truncated export
	if err := writer.Error(); err != nil {
		h.log.Errorw("csv export aborted mid-stream", "error", err)
	}
}

func (h *AssetHandler) ExportJSON(c *gin.Context) {
	assets, err := h.svc.ListAll(middleware.Identity(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Header("Content-Disposition", "attachment;filename=assets_export.json")
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}
