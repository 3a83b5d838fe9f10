package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-api/internal/middleware"
	"github.com/noah-isme/classroom-api/internal/models"
)

func rbacTestApp(role interface{}, allowed ...string) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", func(c *fiber.Ctx) error {
		if role != nil {
			c.Locals("user_role", role)
		}
		return c.Next()
	}, middleware.RequireRole(allowed...), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	return app
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		role    interface{}
		allowed []string
		status  int
	}{
		{"teacher allowed", models.RoleTeacher, []string{models.RoleTeacher, models.RoleAdmin}, http.StatusOK},
		{"admin allowed", models.RoleAdmin, []string{models.RoleTeacher, models.RoleAdmin}, http.StatusOK},
		{"student denied", models.RoleStudent, []string{models.RoleTeacher, models.RoleAdmin}, http.StatusForbidden},
		{"mixed case role", "Teacher", []string{models.RoleTeacher}, http.StatusOK},
		{"missing role", nil, []string{models.RoleTeacher}, http.StatusForbidden},
		{"empty role", "", []string{models.RoleTeacher}, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := rbacTestApp(tc.role, tc.allowed...)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil), -1)
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
