package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/voz-urbana/api-go/storage"
	"github.com/voz-urbana/api-go/utils"
)

// Report and event photos only; no video support.
var validImageTypes = []string{
	"image/jpeg", "image/jpg", "image/png", "image/webp", "image/heic",
}

const maxPhotoSize = 10 * 1024 * 1024 // 10MB

type UploadController struct {
	Storage *storage.Client
}

type PresignedURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

type UploadCompleteRequest struct {
	Key string `json:"key" binding:"required"`
}

func NewUploadController(storageClient *storage.Client) *UploadController {
	return &UploadController{Storage: storageClient}
}

// GetPresignedURL hands the client a direct-to-bucket PUT URL. The bytes
// never pass through this server.
func (uc *UploadController) GetPresignedURL(c *gin.Context) {
	user := utils.GetUser(c)

	var req PresignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isValidImageType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are allowed"})
		return
	}

	if req.FileSize > maxPhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds limit"})
		return
	}

	key := generatePhotoKey(user.UserID, req.FileName)

	uploadURL, err := uc.Storage.PresignPut(c.Request.Context(), key, req.ContentType, time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: PresignedURLResponse{
			UploadURL: uploadURL,
			Key:       key,
			ExpiresIn: 3600,
		},
		Message: "Presigned URL generated successfully",
	})
}

// ConfirmUpload verifies the object landed in the bucket and echoes its
// metadata back.
func (uc *UploadController) ConfirmUpload(c *gin.Context) {
	user := utils.GetUser(c)

	var req UploadCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	head, err := uc.Storage.Head(c.Request.Context(), req.Key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found in storage"})
		return
	}

	response := gin.H{
		"key":        req.Key,
		"uploadedBy": user.UserID,
		"uploadedAt": time.Now(),
	}
	if head.ContentLength != nil {
		response["fileSize"] = *head.ContentLength
	}
	if head.ContentType != nil {
		response["mimeType"] = *head.ContentType
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    response,
		Message: "Upload confirmed successfully",
	})
}

// DeleteFile removes an uploaded object the caller owns. Ownership comes from
// the key layout: photos/{userID}/...
func (uc *UploadController) DeleteFile(c *gin.Context) {
	user := utils.GetUser(c)
	key := strings.TrimPrefix(c.Param("key"), "/")

	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File key is required"})
		return
	}

	if !ownsKey(key, user.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := uc.Storage.Delete(c.Request.Context(), key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Message: "File deleted successfully",
	})
}

func isValidImageType(contentType string) bool {
	for _, t := range validImageTypes {
		if contentType == t {
			return true
		}
	}
	return false
}

func generatePhotoKey(userID uint, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("photos/%d/%d_%s%s", userID, time.Now().Unix(), uuid.New().String(), ext)
}

// ownsKey checks the key against the photos/{userID}/ layout.
func ownsKey(key string, userID uint) bool {
	parts := strings.Split(key, "/")
	if len(parts) < 3 || parts[0] != "photos" {
		return false
	}
	return parts[1] == fmt.Sprintf("%d", userID)
}
