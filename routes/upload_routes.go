package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/voz-urbana/api-go/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	upload := protected.Group("/upload")
	{
		// Direct-to-bucket upload URL generation
		upload.POST("/presigned-url", uploadController.GetPresignedURL)

		// Confirm upload completion
		upload.POST("/confirm", uploadController.ConfirmUpload)

		// Delete uploaded file; keys contain slashes, hence the catch-all
		upload.DELETE("/file/*key", uploadController.DeleteFile)
	}
}
