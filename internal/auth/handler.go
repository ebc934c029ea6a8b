package auth

import (
	"net/http"
	"os"

	"CollegeHub/internal/apperr"

	"github.com/labstack/echo/v4"
)

// PrincipalContextKey is where the authentication middleware stores the
// request's principal.
const PrincipalContextKey = "principal"

func PrincipalFrom(c echo.Context) *Principal {
	p, _ := c.Get(PrincipalContextKey).(*Principal)
	return p
}

type Handler struct {
	service *Service
	policy  *AccessPolicy
}

func NewHandler(service *Service, policy *AccessPolicy) *Handler {
	return &Handler{service: service, policy: policy}
}

func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	message, err := h.service.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) VerifyRegister(c echo.Context) error {
	var req VerifyRegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	user, err := h.service.VerifyRegister(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	message, err := h.service.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) VerifyLogin(c echo.Context) error {
	var req VerifyLoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	resp, err := h.service.VerifyLogin(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) RequestPasswordReset(c echo.Context) error {
	var req ResetRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	message, err := h.service.RequestPasswordReset(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) VerifyPasswordReset(c echo.Context) error {
	var req VerifyResetRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	message, err := h.service.VerifyPasswordReset(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) ResendOtp(c echo.Context) error {
	var req ResendOtpRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	message, err := h.service.ResendOtp(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

func (h *Handler) Me(c echo.Context) error {
	principal := PrincipalFrom(c)
	if principal == nil {
		return apperr.Unauthorized("Not authenticated")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"user": principal})
}

// DebugStatus reports which auth toggles are configured. Booleans only, and
// the route is registered outside production.
func (h *Handler) DebugStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok": true,
		"env": map[string]interface{}{
			"APP_ENV":            os.Getenv("APP_ENV"),
			"RESEND_API_KEY":     os.Getenv("RESEND_API_KEY") != "",
			"ALLOWED_OTP_EMAILS": os.Getenv("ALLOWED_OTP_EMAILS") != "",
			"ALLOWED_OTP_DOMAIN": os.Getenv("ALLOWED_OTP_DOMAIN") != "",
			"restricted":         h.policy.Restricted(),
		},
	})
}
