package catalog

import (
	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/catalog/items
func ListMasterItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.MasterItem
		if err := database.DB.Order("code ASC").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list master items")
		}
		return c.JSON(items)
	}
}

// GET /api/catalog/customers
func ListCustomerAccountsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accts []models.CustomerAccount
		if err := database.DB.Order("account_id ASC").Find(&accts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list customer accounts")
		}
		return c.JSON(accts)
	}
}

// GET /api/catalog/engineers
func ListEngineersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var engs []models.Engineer
		if err := database.DB.Order("name ASC").Find(&engs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list engineers")
		}
		names := make([]string, 0, len(engs))
		for _, e := range engs {
			names = append(names, e.Name)
		}
		return c.JSON(names)
	}
}
