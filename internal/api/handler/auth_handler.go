package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freelancehub/marketplace/internal/api/metrics"
	"github.com/freelancehub/marketplace/internal/core/domain"
	"github.com/freelancehub/marketplace/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Handle dispatches POST /auth by the action discriminator.
//
// @Summary      Authenticate (login, register, logout)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authRequest  true  "Action envelope"
// @Success      200   {object}  authResponse
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth [post]
func (h *AuthHandler) Handle(c echo.Context) error {
	var req authRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	switch req.Action {
	case "login":
		return h.login(c, req)
	case "register":
		return h.register(c, req)
	case "logout":
		return h.logout(c)
	default:
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid action"})
	}
}

func (h *AuthHandler) login(c echo.Context, req authRequest) error {
	body := loginRequest{Email: req.Email, Password: req.Password}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, token, err := h.authService.Login(c.Request().Context(), body.Email, body.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, authResponse{
		Message:      "login successful",
		SessionToken: token,
		User:         user,
	})
}

func (h *AuthHandler) register(c echo.Context, req authRequest) error {
	userType := req.UserType
	if userType == "" {
		userType = "unknown"
	}

	body := registerRequest{
		Email:     req.Email,
		Password:  req.Password,
		UserType:  req.UserType,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Title:     req.Title,
	}
	if err := c.Validate(&body); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(userType, "error").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, token, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:     body.Email,
		Password:  body.Password,
		UserType:  body.UserType,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Title:     body.Title,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(userType, "error").Inc()
		switch {
		case domain.IsMissingField(err),
			errors.Is(err, domain.ErrInvalidUserType),
			errors.Is(err, domain.ErrPasswordTooShort),
			errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(user.UserType, "ok").Inc()
	return c.JSON(http.StatusCreated, authResponse{
		Message:      "user registered successfully",
		SessionToken: token,
		User:         user,
	})
}

func (h *AuthHandler) logout(c echo.Context) error {
	token := c.Request().Header.Get("X-Session-Token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "session token required"})
	}

	metrics.LogoutsTotal.Inc()
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "logout successful"})
}

// Session answers GET /auth. The session middleware has already verified the
// token and injected the user; this handler only shapes the response.
//
// @Summary      Verify the current session
// @Tags         auth
// @Produce      json
// @Param        X-Session-Token  header    string  true  "Session token"
// @Success      200  {object}  verifyResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth [get]
func (h *AuthHandler) Session(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, verifyResponse{Valid: true, User: user})
}
