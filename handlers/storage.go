package handlers

import (
	"net/http"

	"taskhive/services/storage"
	"taskhive/utils"

	"github.com/gin-gonic/gin"
)

// allowedFolders are the upload destinations under the configured base folder.
var allowedFolders = map[string]bool{
	"services": true,
	"taskers":  true,
	"general":  true,
}

// StorageHandler uploads images to the media host.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

// UploadImageHandler handles POST /uploads/image with a multipart "file"
// field and an optional ?folder=.
func (h *StorageHandler) UploadImageHandler(c *gin.Context) {
	if h.StorageSvc == nil {
		utils.RespondError(c, utils.ErrServer(errMediaUnconfigured))
		return
	}
	folder := c.DefaultQuery("folder", "general")
	if !allowedFolders[folder] {
		utils.RespondError(c, utils.ErrValidation("folder must be one of services, taskers or general"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, utils.ErrValidation("file not provided"))
		return
	}
	if err := storage.CheckImage(fileHeader.Size, fileHeader.Header.Get("Content-Type")); err != nil {
		utils.RespondError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondError(c, utils.ErrServer(err))
		return
	}
	defer file.Close()

	result, err := h.StorageSvc.UploadImage(c.Request.Context(), file, fileHeader.Filename, folder)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusCreated, "Image uploaded", result)
}
