package handlers

import (
	"net/http"

	"brand-portal/internal/api/middleware"
	"brand-portal/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FolderHandler struct {
	svc *service.FolderService
	log *zap.SugaredLogger
}

func NewFolderHandler(svc *service.FolderService, log *zap.SugaredLogger) *FolderHandler {
	return &FolderHandler{svc: svc, log: log}
}

func (h *FolderHandler) List(c *gin.Context) {
	filter := service.FolderFilter{
		BrandID:  c.Query("brand_id"),
		ParentID: c.Query("parent_id"),
	}

	folders, err := h.svc.List(middleware.Identity(c), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"folders": folders})
}

func (h *FolderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	folder, err := h.svc.Get(middleware.Identity(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"folder": folder})
}

func (h *FolderHandler) Create(c *gin.Context) {
	var input service.FolderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	folder, err := h.svc.Create(middleware.Identity(c), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Folder created successfully.",
		"folder":  folder,
	})
}

func (h *FolderHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input service.FolderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	folder, err := h.svc.Update(middleware.Identity(c), id, input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Folder updated successfully.",
		"folder":  folder,
	})
}

func (h *FolderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(middleware.Identity(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Folder deleted successfully."})
}
