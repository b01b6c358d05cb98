package utils

import "github.com/gofiber/fiber/v2"

// RequestBodyLocal key ใน locals ของ DTO ที่ decode แล้ว
const RequestBodyLocal = "request_body"

// DecodedBody คืน DTO ที่ middleware.DecodeBody เก็บไว้ (ok = false เมื่อยังไม่ได้ decode หรือคนละ type)
func DecodedBody[T any](c *fiber.Ctx) (*T, bool) {
	req, ok := c.Locals(RequestBodyLocal).(*T)
	return req, ok
}
