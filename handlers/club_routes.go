// handlers/club_routes.go
package handlers

import (
	"errors"

	"club-rewards-system/middleware"
	"club-rewards-system/models"
	"club-rewards-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupClubRoutes wires the club engine's operation surface. All mutators
// return structured JSON; business-rule failures are 4xx, never 500.
func SetupClubRoutes(app *fiber.App, clubService *services.ClubService, authClient *services.AuthServiceClient) {
	securedGroup := app.Group("/", middleware.UserContextMiddleware())

	securedGroup.Get("/club/state", func(c *fiber.Ctx) error {
		engine := clubService.Engine(userIDFrom(c))
		state := engine.State()
		return c.JSON(fiber.Map{
			"points":         state.Points,
			"xp":             state.XP,
			"level":          state.Level,
			"level_progress": services.LevelProgress(state.XP),
			"daily_bonus":    state.DailyBonus,
			"voucher_count":  len(state.Vouchers),
			"mission_count":  len(state.Missions),
		})
	})

	securedGroup.Get("/club/vouchers", func(c *fiber.Ctx) error {
		engine := clubService.Engine(userIDFrom(c))
		return c.JSON(fiber.Map{
			"active":  engine.VouchersByStatus(models.VoucherStatusActive),
			"used":    engine.VouchersByStatus(models.VoucherStatusUsed),
			"expired": engine.VouchersByStatus(models.VoucherStatusExpired),
		})
	})

	securedGroup.Get("/club/missions", func(c *fiber.Ctx) error {
		engine := clubService.Engine(userIDFrom(c))
		return c.JSON(fiber.Map{
			"pending":   engine.MissionsByStatus(models.MissionStatusPending),
			"completed": engine.MissionsByStatus(models.MissionStatusCompleted),
		})
	})

	securedGroup.Get("/club/history", func(c *fiber.Ctx) error {
		engine := clubService.Engine(userIDFrom(c))
		limit := c.QueryInt("limit", 20)
		return c.JSON(fiber.Map{"history": engine.History(limit)})
	})

	securedGroup.Get("/club/catalog", func(c *fiber.Ctx) error {
		return c.JSON(clubService.Catalog.Current())
	})

	securedGroup.Post("/club/rewards/:id/redeem", func(c *fiber.Ctx) error {
		engine := clubService.Engine(userIDFrom(c))
		voucher, err := engine.RedeemReward(c.Params("id"))
		if err != nil {
			return validationError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "voucher": voucher})
	})

	securedGroup.Post("/club/vouchers/:id/use", func(c *fiber.Ctx) error {
		var req struct {
			OrderID string `json:"order_id"`
		}
		// body is optional; a voucher can be used without an order reference
		_ = c.BodyParser(&req)

		engine := clubService.Engine(userIDFrom(c))
		if err := engine.UseVoucher(c.Params("id"), req.OrderID); err != nil {
			return validationError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	securedGroup.Post("/club/bonus/claim", func(c *fiber.Ctx) error {
		engine := clubService.Engine(userIDFrom(c))
		result, err := engine.ClaimDailyBonus()
		if err != nil {
			return validationError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "claim": result})
	})

	securedGroup.Post("/club/missions/:id/complete", func(c *fiber.Ctx) error {
		engine := clubService.Engine(userIDFrom(c))
		payout, err := engine.CompleteMission(c.Params("id"))
		if err != nil {
			return validationError(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "payout": payout})
	})

	securedGroup.Post("/club/points/spend", func(c *fiber.Ctx) error {
		var req struct {
			Amount int    `json:"amount"`
			Reason string `json:"reason"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Amount <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount must be positive"})
		}

		engine := clubService.Engine(userIDFrom(c))
		if err := engine.SpendPoints(req.Amount, req.Reason); err != nil {
			return validationError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	})

	securedGroup.Post("/club/reset", func(c *fiber.Ctx) error {
		engine := clubService.Engine(userIDFrom(c))
		engine.ResetState()
		return c.JSON(fiber.Map{"success": true, "message": "club state reset"})
	})

	// SSE history stream authenticates via query token (EventSource cannot
	// set headers), only wired when an auth service is configured.
	if authClient != nil {
		app.Get("/club/history/stream", middleware.SSEAuthMiddleware(authClient), clubService.StreamClubHistorySSE)
	}

	// Admin endpoints: point/XP grants forwarded by the gateway
	adminGroup := app.Group("/s/admin", middleware.UserContextMiddleware())

	adminGroup.Post("/points/grant", func(c *fiber.Ctx) error {
		type Req struct {
			UserID string `json:"user_id" validate:"required,uuid"`
			Amount int    `json:"amount" validate:"required,min=1"`
			Reason string `json:"reason" validate:"max=255"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.Amount <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount must be positive"})
		}

		clubService.Engine(req.UserID).AddPoints(req.Amount, req.Reason, models.HistoryTypeBonusClaim)
		return c.JSON(fiber.Map{
			"message": "points granted successfully",
			"user_id": req.UserID,
			"amount":  req.Amount,
		})
	})

	adminGroup.Post("/xp/grant", func(c *fiber.Ctx) error {
		type Req struct {
			UserID string `json:"user_id" validate:"required,uuid"`
			XP     int    `json:"xp" validate:"required,min=1"`
			Reason string `json:"reason" validate:"max=255"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.XP <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "xp must be positive"})
		}

		clubService.Engine(req.UserID).AddXP(req.XP, req.Reason)
		return c.JSON(fiber.Map{
			"message": "XP granted successfully",
			"user_id": req.UserID,
			"xp":      req.XP,
		})
	})
}

func userIDFrom(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// validationError maps engine business-rule failures onto HTTP statuses.
func validationError(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadRequest
	switch {
	case errors.Is(err, services.ErrRewardNotFound),
		errors.Is(err, services.ErrVoucherNotFound),
		errors.Is(err, services.ErrMissionNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrVoucherAlreadyUsed),
		errors.Is(err, services.ErrMissionAlreadyCompleted):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{"success": false, "error": err.Error()})
}
