// internal/handlers/account/account_handler.go
package account

import (
	"net/http"

	"backoffice-service/internal/middleware"
	"backoffice-service/internal/pkg/response"
	accountUsecase "backoffice-service/internal/service/account"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AccountHandler struct {
	accountService *accountUsecase.Service
	logger         *zap.Logger
}

func NewAccountHandler(accountService *accountUsecase.Service, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// ========== Login ==========

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// Login handles user login
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.accountService.Login(c.Request.Context(), c.ClientIP(), req.Email, req.Password, req.Remember)
	if err != nil {
		h.logger.Warn("login failed",
			zap.String("email", req.Email),
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		response.FromError(c, err)
		return
	}

	h.logger.Info("user logged in",
		zap.Int64("user_id", result.User.ID),
		zap.String("email", result.User.Email),
	)

	response.Success(c, http.StatusOK, "login successful", result)
}

// ========== Registration ==========

// Register handles self-service registration (public endpoint)
func (h *AccountHandler) Register(c *gin.Context) {
	var req accountUsecase.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	created, err := h.accountService.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "registration successful", created)
}

// ========== Password Recovery ==========

type forgotPasswordRequest struct {
	Email string `json:"email"`
	// URL is the frontend reset page; {code} and {email} are
	// substituted before mailing.
	URL string `json:"url"`
}

// ForgotPassword mails a reset link. The reply never reveals whether
// the email exists.
func (h *AccountHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.accountService.ForgotPassword(c.Request.Context(), req.Email, req.URL); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "if the email exists, a reset link has been sent", nil)
}

type resetPasswordRequest struct {
	Email                string `json:"email"`
	Code                 string `json:"code"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// ResetPassword consumes a reset code
func (h *AccountHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.accountService.ResetPassword(c.Request.Context(), req.Email, req.Code, req.Password, req.PasswordConfirmation); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "password reset successful", nil)
}

// ========== Profile ==========

// Me returns the caller's own record (requires auth)
func (h *AccountHandler) Me(c *gin.Context) {
	u, err := middleware.GateFrom(c).CurrentUser(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "profile retrieved", u)
}

// UpdateProfile edits the caller's own record (requires auth)
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	u, err := middleware.GateFrom(c).CurrentUser(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req accountUsecase.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	updated, err := h.accountService.UpdateProfile(c.Request.Context(), u, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "profile updated", updated)
}

// UploadPhoto replaces the caller's profile photo (requires auth)
func (h *AccountHandler) UploadPhoto(c *gin.Context) {
	u, err := middleware.GateFrom(c).CurrentUser(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required", err)
		return
	}

	url, err := h.accountService.UploadPhoto(c.Request.Context(), u, header)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "photo uploaded", gin.H{"photo": url})
}
