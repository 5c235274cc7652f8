package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(RequestID(zap.NewNop()))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(GetRequestID(c))
	})
	return app
}

func TestRequestID_GeneratesID(t *testing.T) {
	resp, err := newTestApp().Test(httptest.NewRequest("GET", "/ping", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	id := resp.Header.Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected uuid request id, got %q", id)
	}
}

func TestRequestID_KeepsValidClientID(t *testing.T) {
	clientID := uuid.New().String()
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(RequestIDHeader, clientID)

	resp, err := newTestApp().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if got := resp.Header.Get(RequestIDHeader); got != clientID {
		t.Errorf("got %q, want %q", got, clientID)
	}
}

func TestRequestID_ReplacesGarbageID(t *testing.T) {
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")

	resp, err := newTestApp().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if got := resp.Header.Get(RequestIDHeader); got == "not-a-uuid" {
		t.Error("garbage request id should have been replaced")
	}
}
