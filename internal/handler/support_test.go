package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/classroom-api/internal/config"
	"github.com/noah-isme/classroom-api/internal/database"
	"github.com/noah-isme/classroom-api/internal/handler"
	"github.com/noah-isme/classroom-api/internal/middleware"
	"github.com/noah-isme/classroom-api/internal/repository"
	"github.com/noah-isme/classroom-api/internal/router"
	"github.com/noah-isme/classroom-api/internal/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := config.Config{
		AppName:         "Classroom Test",
		AppEnv:          "test",
		JWTSecret:       "test-secret",
		TokenTTL:        time.Hour,
		LoginRateMax:    100,
		LoginRateWindow: time.Minute,
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	userRepo := repository.NewUserRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	access := service.NewAccessPolicy(classroomRepo, enrollmentRepo)

	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	classroomService := service.NewClassroomService(classroomRepo, enrollmentRepo, access, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, access, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, access, validate, logger)

	app := fiber.New()
	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, router.Dependencies{
		Config:     cfg,
		Auth:       handler.NewAuthHandler(authService, logger),
		Classroom:  handler.NewClassroomHandler(classroomService, logger),
		Assignment: handler.NewAssignmentHandler(assignmentService, logger),
		Submission: handler.NewSubmissionHandler(submissionService, logger),
	})

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var env envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env))
	}

	return resp, env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

// registerAndLogin creates an account through the public endpoints and
// returns a usable bearer token.
func registerAndLogin(t *testing.T, app *fiber.App, email, role string) string {
	t.Helper()

	resp, _ := doRequest(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":     email,
		"password":  "secret123",
		"full_name": "Test " + role,
		"role":      role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := doRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	decodeData(t, env, &login)
	require.NotEmpty(t, login.Token)

	return login.Token
}
