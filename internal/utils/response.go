package utils

import "github.com/gofiber/fiber/v2"

// Success writes the standard success envelope.
func Success(c *fiber.Ctx, status int, message string, data interface{}) error {
	resp := fiber.Map{"success": true, "message": message}
	if data != nil {
		resp["data"] = data
	}
	return c.Status(status).JSON(resp)
}

// Error writes the standard error envelope.
func Error(c *fiber.Ctx, status int, message string, errs interface{}) error {
	resp := fiber.Map{"success": false, "message": message}
	if errs != nil {
		resp["errors"] = errs
	}
	return c.Status(status).JSON(resp)
}
