package middleware

import (
	"mobility-profile/internal/domain"
	"mobility-profile/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const validatedBodyKey = "validated_body"

// ValidateBody parses the JSON body into a new T, validates it and stores it for
// the handler. Read it back with ValidatedBody.
func ValidateBody[T any](v *validation.Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(T)
		if len(c.Body()) > 0 {
			if err := c.BodyParser(req); err != nil {
				return domain.NewInvalidInputError("Invalid request body")
			}
		}
		if err := v.Struct(req); err != nil {
			return err // This will be handled by ErrorHandler middleware
		}

		c.Locals(validatedBodyKey, req)
		return c.Next()
	}
}

// ValidatedBody returns the request stored by ValidateBody.
func ValidatedBody[T any](c *fiber.Ctx) (*T, bool) {
	req, ok := c.Locals(validatedBodyKey).(*T)
	return req, ok
}
