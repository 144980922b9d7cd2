package handler

import (
	"event_manager/constants"
	"event_manager/database"
	"event_manager/helper"
	"event_manager/model"
	"event_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func Me(c *fiber.Ctx) error {
	claim, ok := helper.GetInfoAccountFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", nil)
	}

	var account model.Account
	if err := database.DB.First(&account, claim.AccountId).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Account not found", err)
	}

	return utils.SuccessResponse(c, 200, account)
}

func CreateAccount(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreateAccountInput)
	if !ok {
		return utils.ErrorResponse(c, 500, "Failed to read input", nil)
	}

	db := database.DB

	existing, err := helper.GetAccountByUsername(input.Username)
	if err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing != nil {
		return utils.ErrorResponse(c, 409, "Username already exists", nil)
	}

	hashed, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	role := input.Role
	if role == "" {
		role = constants.ROLE_ORGANIZER
	}

	account := model.Account{
		Username: input.Username,
		Password: hashed,
		Role:     role,
		Active:   true,
	}
	if err := db.Create(&account).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Failed to create account", err)
	}

	return utils.SuccessResponse(c, 201, account)
}
