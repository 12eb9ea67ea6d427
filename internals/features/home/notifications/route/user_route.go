package route

import (
	"medaid_backend/internals/features/home/notifications/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func NotificationUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNotificationController(db)

	notification := user.Group("/notifications")
	notification.Get("/", ctrl.GetMyNotifications)
	notification.Patch("/read-all", ctrl.MarkAllAsRead)
	notification.Patch("/:id/read", ctrl.MarkAsRead)
}
