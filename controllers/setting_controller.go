package controllers

import (
	"returns-app/models"
	"returns-app/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SettingController struct {
	DB   *gorm.DB
	repo *repositories.SettingRepository
}

func NewSettingController(DB *gorm.DB) *SettingController {
	return &SettingController{
		DB:   DB,
		repo: repositories.NewSettingRepository(DB),
	}
}

func (c *SettingController) GetSettings(ctx *fiber.Ctx) error {
	values, err := c.repo.GetAll()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	return ctx.JSON(fiber.Map{"success": true, "data": values})
}

var editableSettings = map[string]bool{
	models.SettingTelegramEnabled:  true,
	models.SettingTelegramBotToken: true,
	models.SettingTelegramChatId:   true,
}

func (c *SettingController) PutSettings(ctx *fiber.Ctx) error {
	var input map[string]string
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if len(input) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "No settings to update"})
	}

	for key := range input {
		if !editableSettings[key] {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Unknown setting: " + key})
		}
	}

	for key, value := range input {
		if err := c.repo.Put(key, value); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Settings updated"})
}
