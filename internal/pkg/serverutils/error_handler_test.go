package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"alkulous-relay/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Message string `json:"message" validate:"required"`
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.NewNopLogger())})
	app.Get("/validation", func(c *fiber.Ctx) error {
		return ValidateRequest(sampleRequest{})
	})
	app.Get("/fiber", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("db exploded")
	})

	tests := []struct {
		path        string
		wantStatus  int
		wantMessage string
	}{
		{path: "/validation", wantStatus: 400, wantMessage: "validation failed: message failed on 'required'"},
		{path: "/fiber", wantStatus: 400, wantMessage: "Invalid id"},
		{path: "/boom", wantStatus: 500, wantMessage: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body ErrorBody
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, tt.wantMessage, body.Error)
			assert.False(t, body.Success)
		})
	}
}
