package controllers

import (
	"returns-app/repositories"
	"returns-app/workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB   *gorm.DB
	repo *repositories.ReturnRepository
}

func NewDashboardController(DB *gorm.DB) *DashboardController {
	return &DashboardController{
		DB:   DB,
		repo: repositories.NewReturnRepository(DB),
	}
}

// Summary returns the record count per status plus rollups per pipeline
// stage, for the landing page tiles.
func (c *DashboardController) Summary(ctx *fiber.Ctx) error {
	counts, err := c.repo.CountsByStatus()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	sum := func(statuses ...string) int64 {
		var total int64
		for _, s := range statuses {
			total += counts[s]
		}
		return total
	}

	return ctx.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"by_status": counts,
		"pending":   sum(workflow.StatusRequested, workflow.StatusPickupScheduled),
		"in_transit": sum(
			workflow.StatusNCRInTransit, workflow.StatusCOLInTransit,
			workflow.StatusInTransitToHub,
		),
		"at_hub": sum(
			workflow.StatusNCRHubReceived, workflow.StatusCOLHubReceived,
			workflow.StatusHubReceived,
		),
		// COL_HubReceived shows in both hub tiles: collection items skip
		// QC, so their hub stock is already awaiting documents.
		"awaiting_documents": sum(workflow.StatusNCRQCCompleted, workflow.StatusCOLHubReceived),
		"completed":          counts[workflow.StatusCompleted],
	}})
}
