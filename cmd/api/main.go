package main

import (
	"log"

	config "github.com/velcric/scheduler_platform/configs"
	"github.com/velcric/scheduler_platform/database"
	"github.com/velcric/scheduler_platform/jobs"
	"github.com/velcric/scheduler_platform/locks"
	"github.com/velcric/scheduler_platform/notifications"
	"github.com/velcric/scheduler_platform/routes"
	"github.com/velcric/scheduler_platform/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()

	loc := config.Location()
	notifications.InitEmailService(loc)
	locks.InitLockService()
	var notifier services.BookingNotifier
	if notifications.EmailClient != nil {
		notifier = notifications.EmailClient
	}
	services.InitScheduler(database.DB, loc, locks.Locker, notifier)

	c := cron.New()
	c.AddFunc("*/5 * * * *", jobs.SendBookingReminders)
	go c.Start()
	log.Println("✅ Cron job for booking reminders scheduled successfully.")

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	routes.AuthRoutes(app)
	routes.ResourceRoutes(app)
	routes.BookingRoutes(app)

	port := config.Config("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(app.Listen(":" + port))
}
