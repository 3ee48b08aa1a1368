package user

type UpdateProfileRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Gender    string `json:"gender,omitempty" binding:"omitempty,oneof=male female other"`
	Email     string `json:"email,omitempty" binding:"omitempty,email"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// ProfileResponse embeds the profile image as a base64 data URI, the way the
// frontend consumes it.
type ProfileResponse struct {
	UserID           int64  `json:"user_id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Phone            string `json:"phone,omitempty"`
	Gender           string `json:"gender,omitempty"`
	RegistrationDate string `json:"registration_date"`
	ProfileImage     string `json:"profile_image,omitempty"`
}
