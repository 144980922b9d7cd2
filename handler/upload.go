package handler

import (
	"context"
	"event_manager/config"
	"event_manager/constants"
	"event_manager/database"
	"event_manager/helper"
	"event_manager/model"
	"event_manager/utils"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

// GenerateSignature signs upload params so the frontend can upload
// banners straight to Cloudinary.
func GenerateSignature(c *fiber.Ctx) error {
	claim, ok := helper.GetInfoAccountFromToken(c)
	if !ok || (claim.Role != constants.ROLE_ADMIN && claim.Role != constants.ROLE_ORGANIZER) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Permission denied", nil)
	}

	type SigParams struct {
		Folder       string `json:"folder"`
		PublicID     string `json:"public_id"`
		ResourceType string `json:"resource_type"` // parsed but never signed
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid params", err)
	}

	timestamp := time.Now().Unix()

	// Only these keys participate in the signature
	paramMap := make(map[string]string)
	if params.Folder != "" {
		paramMap["folder"] = params.Folder
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID
	}
	paramMap["timestamp"] = fmt.Sprintf("%d", timestamp)

	signature := helper.SignUploadParams(paramMap, config.Config("CLOUDINARY_API_SECRET"))

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    config.Config("CLOUDINARY_API_KEY"),
		"cloudName": config.Config("CLOUDINARY_CLOUD_NAME"),
	})
}

// UploadEventBanner uploads a banner image server-side and stores the
// secure URL on the event.
func UploadEventBanner(c *fiber.Ctx) error {
	claim, ok := helper.GetInfoAccountFromToken(c)
	if !ok || (claim.Role != constants.ROLE_ADMIN && claim.Role != constants.ROLE_ORGANIZER) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Permission denied", nil)
	}

	eventId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, 400, "Invalid event id", nil)
	}

	var event model.Event
	if err := database.DB.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.EVENT_NOT_FOUND, err)
	}

	bannerFile, err := c.FormFile("banner")
	if err != nil {
		return utils.ErrorResponse(c, 400, "Missing banner file", err)
	}

	ext := strings.ToLower(filepath.Ext(bannerFile.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		return utils.ErrorResponse(c, 400, "Only JPG, PNG, WEBP are supported", nil)
	}
	if bannerFile.Size > 5*1024*1024 {
		return utils.ErrorResponse(c, 400, "File exceeds 5MB", nil)
	}

	reader, err := bannerFile.Open()
	if err != nil {
		return utils.ErrorResponse(c, 500, "Failed to read banner file", err)
	}
	defer reader.Close()

	cld := helper.InitCloudinary()
	result, err := cld.Upload.Upload(context.Background(), reader, uploader.UploadParams{
		Folder:       "events/banners",
		PublicID:     fmt.Sprintf("event_%d_banner_%d", event.ID, time.Now().Unix()),
		ResourceType: "image",
	})
	if err != nil {
		return utils.ErrorResponse(c, 500, "Failed to upload banner", err)
	}

	if err := database.DB.Model(&event).Update("banner_url", result.SecureURL).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Failed to save banner url", err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"event":     event,
		"bannerUrl": result.SecureURL,
	})
}
