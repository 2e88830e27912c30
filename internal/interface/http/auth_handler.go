package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jobboardhq/jobboard-api/internal/application"
	"github.com/jobboardhq/jobboard-api/internal/domain/entity"
	"github.com/jobboardhq/jobboard-api/internal/interface/middleware"
	"github.com/jobboardhq/jobboard-api/pkg/response"
	"github.com/jobboardhq/jobboard-api/pkg/validation"
)

// AuthHandler serves registration, login, logout, and email verification.
type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,role"`

	// Employer fields; the service enforces which are mandatory.
	OrganizationName string `json:"organizationName"`
	IndustryType     string `json:"industryType"`
	TotalEmployee    *int   `json:"totalEmployee"`
	Description      string `json:"description"`
	Address          string `json:"address"`
	Province         string `json:"province"`
	City             string `json:"city"`
	District         string `json:"district"`
	PostalCode       string `json:"postalCode"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	a, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		Role:             entity.Role(req.Role),
		OrganizationName: req.OrganizationName,
		IndustryType:     req.IndustryType,
		TotalEmployee:    req.TotalEmployee,
		Description:      req.Description,
		Address:          req.Address,
		Province:         req.Province,
		City:             req.City,
		District:         req.District,
		PostalCode:       req.PostalCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.Error[any](c, http.StatusBadRequest, "Email already exists", nil)
		case errors.Is(err, application.ErrInvalidRole):
			response.Error[any](c, http.StatusBadRequest, "Invalid role", nil)
		case errors.Is(err, application.ErrEmployerDetails):
			response.Error[any](c, http.StatusBadRequest, "Missing organization details for employer", nil)
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).Error("registration failed")
			}
			response.Error[any](c, http.StatusInternalServerError, "Internal Server Error", nil)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": accountJSON(a)}, "account created", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	a, token, exp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrAccountNotFound):
			response.Error[any](c, http.StatusNotFound, "User Not Found", nil)
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error[any](c, http.StatusUnauthorized, "Invalid Credentials", nil)
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).Error("login failed")
			}
			response.Error[any](c, http.StatusInternalServerError, "Internal Server Error", nil)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"user":  accountJSON(a),
	}, "login successful", map[string]any{"expires_at": exp})
}

// Logout POST /api/auth/logout
// Runs behind Auth middleware; the token here is already verified.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.CtxAuthTokenKey)
	if err := h.Svc.Logout(c.Request.Context(), token); err != nil {
		response.Error[any](c, http.StatusUnauthorized, "token verification failed, authorization denied", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "Logged out successfully", nil)
}

type verifyConfirmRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyConfirm POST /api/auth/verify/confirm
func (h *AuthHandler) VerifyConfirm(c *gin.Context) {
	var req verifyConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ConfirmVerification(c.Request.Context(), req.Token); err != nil {
		if errors.Is(err, application.ErrInvalidVerifyToken) {
			response.Error[any](c, http.StatusBadRequest, "invalid or expired token", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("verification failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"verified": true}, "email verified", nil)
}

// VerifyResend POST /api/auth/verify/resend (auth required)
func (h *AuthHandler) VerifyResend(c *gin.Context) {
	uid := c.GetString(middleware.CtxAccountIDKey)
	already, err := h.Svc.ResendVerification(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrAccountNotFound) {
			response.Error[any](c, http.StatusNotFound, "User not found", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("verification resend failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}
	if already {
		response.Success[any](c, http.StatusOK, gin.H{"already_verified": true}, "already verified", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "verification email sent", nil)
}
