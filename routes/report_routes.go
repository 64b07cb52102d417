package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/voz-urbana/api-go/controllers"
)

// SetupReportRoutes wires the public report reads, including the live SSE
// feed. /map is registered in routes.go before /:id matches are attempted,
// gin resolves the static segment first.
func SetupReportRoutes(reads *gin.RouterGroup, reportController *controllers.ReportController, interactionController *controllers.InteractionController) {
	reports := reads.Group("/reports")
	{
		reports.GET("", reportController.GetReports)
		reports.GET("/stream", reportController.StreamFeed)
		reports.GET("/:id", reportController.GetReportDetail)
		reports.GET("/:id/comments", interactionController.GetComments)
	}
}

// SetupReportWriteRoutes wires the authenticated report mutations.
func SetupReportWriteRoutes(protected *gin.RouterGroup, reportController *controllers.ReportController) {
	reports := protected.Group("/reports")
	{
		reports.POST("", reportController.CreateReport)
		reports.PUT("/:id/status", reportController.UpdateReportStatus)
		reports.DELETE("/:id", reportController.DeleteReport)
	}

	protected.GET("/my-reports", reportController.GetMyReports)
}
