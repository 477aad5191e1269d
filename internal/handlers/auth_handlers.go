package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"feastly/internal/caching"
	"feastly/internal/common"
	"feastly/internal/models"
	"feastly/internal/repositories"
	"feastly/internal/services"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	loginRateLimit  = 5
	loginRateWindow = 15 * time.Minute
)

// AuthHandlers handles registration, login, and the current-user lookup.
type AuthHandlers struct {
	userRepo repositories.UserRepository
	authSvc  services.AuthService
	cacheSvc caching.CacheService
}

func NewAuthHandlers(userRepo repositories.UserRepository, authSvc services.AuthService, cacheSvc caching.CacheService) *AuthHandlers {
	return &AuthHandlers{
		userRepo: userRepo,
		authSvc:  authSvc,
		cacheSvc: cacheSvc,
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /auth/register
func (h *AuthHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" {
		return common.SendValidationError(c, "name", "name is required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return common.SendValidationError(c, "email", "a valid email is required")
	}
	if len(req.Password) < 8 {
		return common.SendValidationError(c, "password", "password must be at least 8 characters")
	}
	if req.Role != "" && req.Role != models.RoleCustomer && req.Role != models.RoleRestaurantOwner {
		return common.SendValidationError(c, "role", "role must be customer or restaurant_owner")
	}

	existing, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return common.SendServerError(c, "Registration failed")
	}
	if existing != nil {
		return common.SendClientError(c, "Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return common.SendServerError(c, "Registration failed")
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := h.userRepo.Create(ctx, user); err != nil {
		if common.IsClientError(err) {
			return common.SendClientError(c, "Email already registered")
		}
		return common.SendServerError(c, "Registration failed")
	}

	token, err := h.authSvc.GenerateToken(user)
	if err != nil {
		return common.SendServerError(c, "Registration failed")
	}

	return c.JSON(http.StatusCreated, token)
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return common.SendClientError(c, "Email and password are required")
	}

	rateKey := "login:" + req.Email
	limited, err := h.cacheSvc.IsRateLimited(ctx, rateKey, loginRateLimit)
	if err != nil {
		log.Printf("login rate limit check failed for %s: %v", req.Email, err)
	}
	if limited {
		return c.JSON(http.StatusTooManyRequests,
			common.CreateErrorResponse("RATE_LIMITED", "Too many login attempts, try again later", nil))
	}

	user, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return common.SendServerError(c, "Login failed")
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		if err := h.cacheSvc.IncrementRateLimit(ctx, rateKey, loginRateWindow); err != nil {
			log.Printf("login rate limit increment failed for %s: %v", req.Email, err)
		}
		return common.SendUnauthorizedError(c)
	}

	token, err := h.authSvc.GenerateToken(user)
	if err != nil {
		return common.SendServerError(c, "Login failed")
	}

	return c.JSON(http.StatusOK, token)
}

// Me handles GET /auth/me
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.SendNotFoundError(c, "User")
		}
		return common.SendServerError(c, "Failed to load user")
	}

	return c.JSON(http.StatusOK, user)
}
