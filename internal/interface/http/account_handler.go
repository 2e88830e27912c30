package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jobboardhq/jobboard-api/internal/application"
	"github.com/jobboardhq/jobboard-api/internal/interface/middleware"
	"github.com/jobboardhq/jobboard-api/pkg/response"
	"github.com/jobboardhq/jobboard-api/pkg/validation"
)

// AccountHandler serves the authenticated profile endpoints.
type AccountHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAccountHandler(svc *application.Service, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type updateAccountRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password"`

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

// Get GET /api/auth/user
func (h *AccountHandler) Get(c *gin.Context) {
	uid := c.GetString(middleware.CtxAccountIDKey)
	a, err := h.Svc.GetProfile(uid)
	if err != nil {
		if errors.Is(err, application.ErrAccountNotFound) {
			response.Error[any](c, http.StatusNotFound, "User Not Found", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("profile fetch failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": accountJSON(a)}, "profile", nil)
}

// Update PUT /api/auth/user
func (h *AccountHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.CtxAccountIDKey)
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
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
		case errors.Is(err, application.ErrAccountNotFound):
			response.Error[any](c, http.StatusNotFound, "User not found", nil)
		case errors.Is(err, application.ErrEmailTaken):
			response.Error[any](c, http.StatusBadRequest, "Email already exists", nil)
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).Error("profile update failed")
			}
			response.Error[any](c, http.StatusInternalServerError, "Internal Server Error", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": accountJSON(a)}, "profile updated", nil)
}

// Delete DELETE /api/auth/user
func (h *AccountHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxAccountIDKey)
	if err := h.Svc.DeleteAccount(c.Request.Context(), uid); err != nil {
		if errors.Is(err, application.ErrAccountNotFound) {
			response.Error[any](c, http.StatusNotFound, "User not found", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("account deletion failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "User deleted successfully", nil)
}

// UploadAvatar POST /api/profile/avatar (multipart form, field "file")
func (h *AccountHandler) UploadAvatar(c *gin.Context) {
	uid := c.GetString(middleware.CtxAccountIDKey)
	file, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "file is required", nil)
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read file", nil)
		return
	}
	defer func() { _ = src.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), uid, src, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, application.ErrAccountNotFound) {
			response.Error[any](c, http.StatusNotFound, "User not found", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("avatar upload failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "upload failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar uploaded", nil)
}

// Search GET /api/accounts/search?q=&size=
func (h *AccountHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	res, err := h.Svc.SearchAccounts(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("account search failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": res}, "search results", map[string]any{"count": len(res)})
}
