package controller

import (
	"medaid_backend/internals/constants"
	"medaid_backend/internals/features/home/notifications/dto"
	"medaid_backend/internals/features/home/notifications/repository"
	helper "medaid_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type NotificationController struct {
	Repo *repository.NotificationRepository
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{Repo: repository.NewNotificationRepository(db)}
}

// 🟢 GET /api/u/notifications?unread=true&page=1&per_page=20
func (ctrl *NotificationController) GetMyNotifications(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	userModel := constants.UserModelForRole(helper.GetUserRole(c))

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	unreadOnly := c.QueryBool("unread", false)

	rows, total, err := ctrl.Repo.ListForUser(c.Context(), userID, userModel, unreadOnly, p.Offset(), p.Limit())
	if err != nil {
		return helper.FromError(c, err)
	}
	unread, err := ctrl.Repo.CountUnread(c.Context(), userID, userModel)
	if err != nil {
		return helper.FromError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    "Notifications fetched",
		"data":       dto.ToNotificationResponseList(rows),
		"meta":       dto.NotificationListMeta{UnreadCount: unread},
		"pagination": helper.BuildPagination(total, p, len(rows)),
	})
}

// 🟢 PATCH /api/u/notifications/:id/read
func (ctrl *NotificationController) MarkAsRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}

	userModel := constants.UserModelForRole(helper.GetUserRole(c))
	if err := ctrl.Repo.MarkRead(c.Context(), id, userID, userModel); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Notification marked as read", fiber.Map{"notification_id": id})
}

// 🟢 PATCH /api/u/notifications/read-all
func (ctrl *NotificationController) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	userModel := constants.UserModelForRole(helper.GetUserRole(c))
	n, err := ctrl.Repo.MarkAllRead(c.Context(), userID, userModel)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "All notifications marked as read", fiber.Map{"updated": n})
}
