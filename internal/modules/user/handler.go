package user

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"

	"taskhub/internal/domain"
	"taskhub/internal/middleware"
	"taskhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const maxProfileImageBytes = 5 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts all user routes under an authenticated group.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	userGroup := protected.Group("/users")
	{
		userGroup.GET("/profile", h.GetProfile)
		userGroup.PUT("/profile", h.UpdateProfile)
		userGroup.PUT("/password", h.UpdatePassword)
		userGroup.POST("/profile/image", h.UploadProfileImage)
	}
}

// GetProfile returns the current user's profile.
// @Summary		Get profile
// @Tags		Users
// @Security	BearerAuth
// @Produce		json
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/users/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": toProfileResponse(user),
	})
}

// UpdateProfile partially updates profile fields.
// @Summary		Update profile
// @Tags		Users
// @Security	BearerAuth
// @Accept		json
// @Produce		json
// @Param		body	body	UpdateProfileRequest	true	"fields to update"
// @Success		200	{object}	map[string]interface{}
// @Router		/users/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrEmailTaken):
			response.Error(c, http.StatusBadRequest, "Email is already registered")
		default:
			response.Error(c, http.StatusInternalServerError, "An error occurred while updating user info")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    toProfileResponse(user),
	})
}

// UpdatePassword changes the password and invalidates all sessions.
// @Summary		Change password
// @Tags		Users
// @Security	BearerAuth
// @Accept		json
// @Produce		json
// @Param		body	body	UpdatePasswordRequest	true	"old and new password"
// @Success		200	{object}	map[string]interface{}
// @Router		/users/password [put]
func (h *Handler) UpdatePassword(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.service.UpdatePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrWrongOldPassword):
			response.Error(c, http.StatusBadRequest, "Old password is incorrect")
		default:
			response.Error(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	response.Message(c, http.StatusOK, "Password updated successfully")
}

// UploadProfileImage stores a multipart image on the user row.
// @Summary		Upload profile image
// @Tags		Users
// @Security	BearerAuth
// @Accept		multipart/form-data
// @Produce		json
// @Param		image	formData	file	true	"image file"
// @Success		200	{object}	map[string]interface{}
// @Router		/users/profile/image [post]
func (h *Handler) UploadProfileImage(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	if fileHeader.Size > maxProfileImageBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, "Image exceeds the 5MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "An error occurred while uploading the image")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	if err := h.service.UploadProfileImage(c.Request.Context(), userID, data, contentType); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "An error occurred while uploading the image")
		return
	}

	response.Message(c, http.StatusOK, "Profile image uploaded successfully")
}

func toProfileResponse(u *domain.User) ProfileResponse {
	resp := ProfileResponse{
		UserID:           u.ID,
		Username:         u.Username,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Phone:            u.Phone,
		Gender:           string(u.Gender),
		RegistrationDate: u.RegistrationDate.Format("2006-01-02"),
	}
	if len(u.ProfileImage) > 0 {
		resp.ProfileImage = fmt.Sprintf("data:%s;base64,%s",
			u.ProfileImageType, base64.StdEncoding.EncodeToString(u.ProfileImage))
	}
	return resp
}
