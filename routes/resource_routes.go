package routes

import (
	"github.com/velcric/scheduler_platform/handlers"
	"github.com/velcric/scheduler_platform/middleware"
	"github.com/gofiber/fiber/v2"
)

func ResourceRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/resources", handlers.ListResources)
	api.Get("/resources/:resourceId/slots", handlers.GetResourceSlots)

	owner := api.Group("/owner/resources", middleware.Protected())
	owner.Post("", handlers.CreateResource)
	owner.Get("", handlers.ListMyResources)
	owner.Delete("/:resourceId", handlers.DeactivateResource)

	owner.Post("/:resourceId/rules", handlers.CreateAvailabilityRule)
	owner.Delete("/:resourceId/rules/:ruleId", handlers.DeleteAvailabilityRule)
	owner.Post("/:resourceId/exceptions", handlers.CreateAvailabilityException)
	owner.Delete("/:resourceId/exceptions/:exceptionId", handlers.DeleteAvailabilityException)
}
