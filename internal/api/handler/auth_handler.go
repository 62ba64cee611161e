package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/canvasnotes/notes-api/internal/api/metrics"
	"github.com/canvasnotes/notes-api/internal/core/domain"
	"github.com/canvasnotes/notes-api/internal/core/ports"
)

// AuthHandler handles HTTP requests for signup, login, logout and
// token-holder introspection.
type AuthHandler struct {
	authService ports.AuthService
	tokens      ports.TokenStore
}

func NewAuthHandler(authService ports.AuthService, tokens ports.TokenStore) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens}
}

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
}

// Signup handles POST /api/signup.
//
// @Summary      Create a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No data provided")
	}
	if err := c.Validate(&req); err != nil {
		return domain.ErrMissingFields
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "User created successfully"})
}

// Login handles POST /api/login.
//
// @Summary      Authenticate and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No data provided")
	}
	if err := c.Validate(&req); err != nil {
		return domain.ErrMissingCredentials
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.AuthFailuresTotal.WithLabelValues("invalid_credentials").Inc()
		}
		return err
	}

	metrics.TokensIssuedTotal.Inc()
	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: token,
		User:        toUserResponse(user),
	})
}

// Me handles GET /api/user/me.
//
// @Summary      Return the authenticated account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /user/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Logout handles POST /api/logout. The presented token's jti goes on the
// denylist until the token would have expired anyway.
//
// @Summary      Revoke the presented bearer token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	jti, expires := ctxToken(c)
	if jti == "" {
		return domain.ErrTokenInvalid
	}

	if err := h.tokens.Revoke(c.Request().Context(), jti, time.Until(expires)); err != nil {
		return err
	}

	metrics.TokensRevokedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Successfully logged out"})
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}
