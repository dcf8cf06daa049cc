package handler

import (
	"net/http"

	"auction-backend/internal/auth"
	"auction-backend/internal/models"
	user "auction-backend/internal/userService"
	auctionhelpers "auction-backend/services/auction/helpers"
	"auction-backend/services/auth/helpers"
	"auction-backend/utils"

	"github.com/gin-gonic/gin"
)

type UserServiceInterface interface {
	Register(in user.RegisterInput) (*models.User, error)
	Login(username, password string) (*auth.TokenPair, *models.User, error)
	Refresh(refreshToken string) (string, error)
	Logout(refreshToken string) error
	Profile(userID uint) (*models.User, error)
	UpdateProfile(userID uint, in user.ProfileUpdateInput) (*models.User, error)
	ChangePassword(userID uint, oldPassword, newPassword, newPasswordConfirm string) error
}

type UserHandler struct {
	service UserServiceInterface
}

func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterHandler handles POST /api/v1/auth/register/
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		auctionhelpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	account, err := h.service.Register(user.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
	})
	if err != nil {
		auctionhelpers.RespondError(c, "RegisterHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, auctionhelpers.NewUserResponse(account), "user registered successfully")
	auctionhelpers.LogSuccess("RegisterHandler", "user registered successfully", map[string]any{
		"user_id":  account.ID,
		"username": account.Username,
	})
}

// LoginHandler handles POST /api/v1/auth/login/
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		auctionhelpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	pair, account, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		auctionhelpers.RespondError(c, "LoginHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, pair, "login successful")
	auctionhelpers.LogSuccess("LoginHandler", "login successful", map[string]any{
		"user_id":  account.ID,
		"username": account.Username,
	})
}

// RefreshHandler handles POST /api/v1/auth/token/refresh/
func (h *UserHandler) RefreshHandler(c *gin.Context) {
	var req helpers.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		auctionhelpers.HandleBindError(c, "RefreshHandler", err)
		return
	}

	access, err := h.service.Refresh(req.Refresh)
	if err != nil {
		auctionhelpers.RespondError(c, "RefreshHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, helpers.AccessTokenResponse{Access: access}, "token refreshed successfully")
}

// LogoutHandler handles POST /api/v1/auth/logout/
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	callerID, ok := auctionhelpers.CurrentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required", "authentication required")
		return
	}

	var req helpers.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		auctionhelpers.HandleBindError(c, "LogoutHandler", err)
		return
	}

	if err := h.service.Logout(req.Refresh); err != nil {
		auctionhelpers.RespondError(c, "LogoutHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, nil, "logged out successfully")
	auctionhelpers.LogSuccess("LogoutHandler", "logged out successfully", map[string]any{
		"user_id": callerID,
	})
}

// ProfileHandler handles GET /api/v1/auth/profile/
func (h *UserHandler) ProfileHandler(c *gin.Context) {
	callerID, ok := auctionhelpers.CurrentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required", "authentication required")
		return
	}

	account, err := h.service.Profile(callerID)
	if err != nil {
		auctionhelpers.RespondError(c, "ProfileHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, auctionhelpers.NewUserResponse(account), "profile fetched successfully")
}

// UpdateProfileHandler handles PUT /api/v1/auth/profile/
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	callerID, ok := auctionhelpers.CurrentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required", "authentication required")
		return
	}

	var req helpers.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		auctionhelpers.HandleBindError(c, "UpdateProfileHandler", err)
		return
	}

	account, err := h.service.UpdateProfile(callerID, user.ProfileUpdateInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Bio:       req.Bio,
	})
	if err != nil {
		auctionhelpers.RespondError(c, "UpdateProfileHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, auctionhelpers.NewUserResponse(account), "profile updated successfully")
	auctionhelpers.LogSuccess("UpdateProfileHandler", "profile updated successfully", map[string]any{
		"user_id": callerID,
	})
}

// ChangePasswordHandler handles POST /api/v1/auth/change-password/
func (h *UserHandler) ChangePasswordHandler(c *gin.Context) {
	callerID, ok := auctionhelpers.CurrentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "authentication required", "authentication required")
		return
	}

	var req helpers.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		auctionhelpers.HandleBindError(c, "ChangePasswordHandler", err)
		return
	}

	if err := h.service.ChangePassword(callerID, req.OldPassword, req.NewPassword, req.NewPasswordConfirm); err != nil {
		auctionhelpers.RespondError(c, "ChangePasswordHandler", err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, nil, "password changed successfully")
	auctionhelpers.LogSuccess("ChangePasswordHandler", "password changed successfully", map[string]any{
		"user_id": callerID,
	})
}
