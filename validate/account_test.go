package validate

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func newAccountApp() *fiber.App {
	app := fiber.New()
	app.Post("/account", CreateAccount(), func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})
	return app
}

func TestCreateAccountValidation_ReportsFailingField(t *testing.T) {
	app := newAccountApp()

	// username below min length
	body := `{"username": "ab", "password": "123456ev", "repeatPassword": "123456ev"}`
	status, raw := postJSON(t, app, "/account", body)

	assert.Equal(t, 400, status)
	assert.Contains(t, raw, `"keyError":"Username"`)
}

func TestCreateAccountValidation_PasswordMismatchKeysRepeatField(t *testing.T) {
	app := newAccountApp()

	body := `{"username": "organizer1", "password": "123456ev", "repeatPassword": "different"}`
	status, raw := postJSON(t, app, "/account", body)

	assert.Equal(t, 400, status)
	assert.Contains(t, raw, `"keyError":"RepeatPassword"`)
}

func TestCreateAccountValidation_ValidInputPasses(t *testing.T) {
	app := newAccountApp()

	body := `{"username": "organizer1", "password": "123456ev", "repeatPassword": "123456ev", "role": "ORGANIZER"}`
	status, _ := postJSON(t, app, "/account", body)
	assert.Equal(t, 200, status)
}
