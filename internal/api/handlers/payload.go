package handlers

import (
	"Recipe-API/internal/middleware"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
)

var errEmptyBody = errors.New("request body must be a JSON object")

// parsePayload decodes the body into a generic map so presence checks can
// see absent and null fields.
func parsePayload(c *fiber.Ctx) (map[string]any, error) {
	body := c.Body()
	if len(body) == 0 {
		return nil, errEmptyBody
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, errEmptyBody
	}
	return payload, nil
}

func bindPayload(c *fiber.Ctx, out any) error {
	return json.Unmarshal(c.Body(), out)
}

func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(middleware.LocalsUserID).(uint)
	return id
}
