package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/voz-urbana/api-go/controllers"
)

func SetupInteractionRoutes(protected *gin.RouterGroup, interactionController *controllers.InteractionController) {
	reports := protected.Group("/reports")
	{
		reports.POST("/:id/like", interactionController.ToggleLike)
		reports.POST("/:id/comments", interactionController.AddComment)
	}

	comments := protected.Group("/comments")
	{
		comments.DELETE("/:id", interactionController.DeleteComment)
	}
}
