package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/klpbbs/forum/internal/services"
)

type FileHandler struct {
	FileService *services.FileService
}

func NewFileHandler(fileService *services.FileService) *FileHandler {
	return &FileHandler{FileService: fileService}
}

func (h *FileHandler) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少上传文件"})
		return
	}

	file, err := h.FileService.Upload(header, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, file)
}

func (h *FileHandler) Get(c *gin.Context) {
	fileID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	file, err := h.FileService.GetByID(fileID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, file)
}

func (h *FileHandler) ByUser(c *gin.Context) {
	userID, ok := paramUint(c, "userId")
	if !ok {
		return
	}

	files, err := h.FileService.ListByUploader(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, files)
}
