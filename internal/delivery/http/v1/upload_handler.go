package v1

import (
	"net/http"
	"path/filepath"
	"strings"

	"tiestyle-backend/pkg/logger"
	"tiestyle-backend/pkg/storage"
	"tiestyle-backend/pkg/utils"
)

var (
	allowedMimeTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
	}
	allowedExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
		".gif":  true,
	}
)

// UploadHandler accepts product, category and settings imagery from the
// back office, normalizes it through the image pipeline and stores it on R2.
type UploadHandler struct {
	storage       *storage.R2Storage
	maxUploadSize int64
}

func NewUploadHandler(s *storage.R2Storage, maxUploadSizeMB int64) *UploadHandler {
	return &UploadHandler{
		storage:       s,
		maxUploadSize: maxUploadSizeMB << 20,
	}
}

func (h *UploadHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		logger.Warn().Err(err).Msg("Upload: multipart parse failed")
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid format")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedMimeTypes[contentType] {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file type. Allowed: JPEG, PNG, WebP, GIF")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file extension")
		return
	}

	processedData, newContentType, err := utils.ProcessImage(file, header.Filename)
	if err != nil {
		logger.Error().Err(err).Str("filename", header.Filename).Msg("Image processing failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to process image")
		return
	}

	url, err := h.storage.UploadBuffer(r.Context(), processedData, newContentType)
	if err != nil {
		logger.Error().Err(err).Msg("R2 upload failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"url": url,
	})
}

// DeleteFile removes an uploaded asset by its public URL.
func (h *UploadHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := utils.DecodeJSON(r.Body, &req); err != nil || req.URL == "" {
		utils.WriteError(w, http.StatusBadRequest, "File URL required")
		return
	}

	if err := h.storage.DeleteFile(r.Context(), req.URL); err != nil {
		logger.Error().Err(err).Str("url", req.URL).Msg("R2 delete failed")
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
