package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/voz-urbana/api-go/controllers"
)

func SetupEventReadRoutes(reads *gin.RouterGroup, eventController *controllers.EventController) {
	events := reads.Group("/events")
	{
		events.GET("", eventController.GetEvents)
		events.GET("/:id/photos", eventController.ListEventPhotos)
	}
}

func SetupEventWriteRoutes(protected *gin.RouterGroup, eventController *controllers.EventController) {
	events := protected.Group("/events")
	{
		events.POST("", eventController.CreateEvent)
		events.POST("/:id/attend", eventController.ToggleAttendance)
		events.POST("/:id/photos", eventController.ConfirmEventPhoto)
	}
}
