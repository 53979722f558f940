package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/studentreg/internal/app/controllers"
	"github.com/yigit/studentreg/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	systemController *controllers.SystemController,
) {
	api := router.Group("/api")

	// System routes; GET variants serve load balancer probes
	api.POST("/hello", systemController.Hello)
	api.GET("/hello", systemController.Hello)
	api.POST("/health", systemController.Health)
	api.GET("/health", systemController.Health)

	// Student routes
	api.POST("/createStudent", studentController.CreateStudent)
	api.POST("/getAllStudents", studentController.GetAllStudents)

	router.NoRoute(middleware.RouteNotFound)
}
