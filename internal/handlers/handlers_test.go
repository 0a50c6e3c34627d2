package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fathima-sithara/onboarding-service/internal/handlers"
	"github.com/fathima-sithara/onboarding-service/internal/models"
	"github.com/fathima-sithara/onboarding-service/internal/repository"
	"github.com/fathima-sithara/onboarding-service/internal/routes"
	"github.com/fathima-sithara/onboarding-service/internal/services"
	"github.com/fathima-sithara/onboarding-service/internal/token"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memUserRepo struct {
	users map[primitive.ObjectID]models.User
}

func (r *memUserRepo) Create(_ context.Context, u *models.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	found := u
	return &found, nil
}

func (r *memUserRepo) Update(_ context.Context, u *models.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrUserNotFound
	}
	u.UpdatedAt = time.Now().UTC()
	r.users[u.ID] = *u
	return nil
}

type memCardRepo struct {
	cards []models.Card
}

func (r *memCardRepo) Create(_ context.Context, c *models.Card) error {
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now().UTC().Add(time.Duration(len(r.cards)) * time.Millisecond)
	c.UpdatedAt = c.CreatedAt
	r.cards = append(r.cards, *c)
	return nil
}

func (r *memCardRepo) FindByUserID(_ context.Context, userID primitive.ObjectID) ([]models.Card, error) {
	out := make([]models.Card, 0)
	for i := len(r.cards) - 1; i >= 0; i-- {
		if r.cards[i].UserID == userID {
			out = append(out, r.cards[i])
		}
	}
	return out, nil
}

func newTestApp() *fiber.App {
	users := &memUserRepo{users: make(map[primitive.ObjectID]models.User)}
	cards := &memCardRepo{}
	tokens := token.NewManager("test-secret")
	logger := zap.NewNop()
	validate := validator.New()

	authSvc := services.NewAuthService(users, tokens, logger)
	userSvc := services.NewUserService(users, cards, services.NewFixedOTPVerifier("123456"), logger)

	app := fiber.New()
	routes.Setup(app,
		handlers.NewAuthHandler(authSvc, validate, logger),
		handlers.NewUserHandler(userSvc, validate, logger),
		tokens, users)
	return app
}

type envelope struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
	Errors  json.RawMessage            `json:"errors"`
}

func doReq(t *testing.T, app *fiber.App, method, path, bearer string, body interface{}) (int, envelope, string) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw bytes.Buffer
	_, err = raw.ReadFrom(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw.Bytes(), &env), "body: %s", raw.String())
	return resp.StatusCode, env, raw.String()
}

func decodeUser(t *testing.T, env envelope) models.User {
	t.Helper()
	var u models.User
	require.NoError(t, json.Unmarshal(env.Data["user"], &u))
	return u
}

func TestOnboardingFlow(t *testing.T) {
	app := newTestApp()
	nextYear := fmt.Sprintf("%d", time.Now().Year()+1)

	// signup
	status, env, raw := doReq(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"name": "Ana", "email": "a@x.com", "password": "Secret1!",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)
	assert.NotContains(t, raw, "password", "signup response must not leak the hash")

	var tok string
	require.NoError(t, json.Unmarshal(env.Data["token"], &tok))
	require.NotEmpty(t, tok)
	assert.Equal(t, "a@x.com", decodeUser(t, env).Email)

	// login with the wrong password
	status, env, _ = doReq(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"email": "a@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", env.Message)

	// basic info without an auth header
	status, _, _ = doReq(t, app, http.MethodPost, "/user/basic", "", fiber.Map{
		"dob": "1990-01-01", "address": "12 Main St",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	// basic info with the token
	status, env, _ = doReq(t, app, http.MethodPost, "/user/basic", tok, fiber.Map{
		"dob": "1990-01-01", "address": "12 Main St",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1990-01-01", decodeUser(t, env).DOB)

	// card before verification
	status, env, _ = doReq(t, app, http.MethodPost, "/user/cards", tok, fiber.Map{
		"cardNumber": "4111111111111111", "expiryMonth": "12", "expiryYear": nextYear,
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Please verify your account first", env.Message)

	// wrong OTP
	status, env, _ = doReq(t, app, http.MethodPost, "/user/verify", tok, fiber.Map{"otp": "000000"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid OTP. Please try again.", env.Message)

	// correct OTP
	status, env, _ = doReq(t, app, http.MethodPost, "/user/verify", tok, fiber.Map{"otp": "123456"})
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decodeUser(t, env).IsVerified)

	// verifying again still succeeds
	status, env, _ = doReq(t, app, http.MethodPost, "/user/verify", tok, fiber.Map{"otp": "123456"})
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decodeUser(t, env).IsVerified)

	// card after verification
	status, env, _ = doReq(t, app, http.MethodPost, "/user/cards", tok, fiber.Map{
		"cardNumber": "4111111111111111", "expiryMonth": "12", "expiryYear": nextYear,
	})
	require.Equal(t, http.StatusCreated, status)
	var card models.Card
	require.NoError(t, json.Unmarshal(env.Data["card"], &card))
	assert.Equal(t, "4111111111111111", card.CardNumber)

	// a second card, then list newest first
	status, _, _ = doReq(t, app, http.MethodPost, "/user/cards", tok, fiber.Map{
		"cardNumber": "5500 0055 5555 5559", "expiryMonth": "6", "expiryYear": nextYear,
	})
	require.Equal(t, http.StatusCreated, status)

	status, env, raw = doReq(t, app, http.MethodGet, "/user/cards", tok, nil)
	require.Equal(t, http.StatusOK, status)
	var count int
	require.NoError(t, json.Unmarshal(env.Data["count"], &count))
	assert.Equal(t, 2, count)
	var cards []models.Card
	require.NoError(t, json.Unmarshal(env.Data["cards"], &cards))
	require.Len(t, cards, 2)
	assert.Equal(t, "5500005555555559", cards[0].CardNumber)
	assert.Equal(t, "4111111111111111", cards[1].CardNumber)
	assert.NotContains(t, raw, "password")

	// profile
	status, env, raw = doReq(t, app, http.MethodGet, "/user/profile", tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "a@x.com", decodeUser(t, env).Email)
	assert.NotContains(t, raw, "password")
}

func TestSignupValidation(t *testing.T) {
	app := newTestApp()

	t.Run("missing fields", func(t *testing.T) {
		status, env, _ := doReq(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{"email": "a@x.com"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "All fields are required: name, email, password", env.Message)
		assert.NotNil(t, env.Errors)
	})

	t.Run("short password", func(t *testing.T) {
		status, env, _ := doReq(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
			"name": "Ana", "email": "a@x.com", "password": "abc",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Password must be at least 6 characters", env.Message)
	})

	t.Run("duplicate email any case", func(t *testing.T) {
		status, _, _ := doReq(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
			"name": "Ana", "email": "dup@x.com", "password": "Secret1!",
		})
		require.Equal(t, http.StatusCreated, status)

		status, env, _ := doReq(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
			"name": "Ana", "email": "DUP@X.com", "password": "Secret1!",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "User with this email already exists", env.Message)
	})
}

func TestAuthMiddleware(t *testing.T) {
	app := newTestApp()

	status, env, _ := doReq(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"name": "Ana", "email": "mw@x.com", "password": "Secret1!",
	})
	require.Equal(t, http.StatusCreated, status)
	var tok string
	require.NoError(t, json.Unmarshal(env.Data["token"], &tok))

	t.Run("missing header", func(t *testing.T) {
		status, env, _ := doReq(t, app, http.MethodGet, "/user/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "No token provided. Authorization header required.", env.Message)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
		req.Header.Set("Authorization", "Basic abc123")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("tampered token", func(t *testing.T) {
		b := []byte(tok)
		i := len(b) / 2
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
		status, env, _ := doReq(t, app, http.MethodGet, "/user/profile", string(b), nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid or expired token", env.Message)
	})

	t.Run("valid token", func(t *testing.T) {
		status, _, _ := doReq(t, app, http.MethodGet, "/user/profile", tok, nil)
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestHealth(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
