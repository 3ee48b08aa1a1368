package task

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Type        string `json:"type"`
	IsCompleted bool   `json:"is_completed"`
	// TaskImage is an optional base64-encoded image payload.
	TaskImage     string `json:"task_image,omitempty"`
	TaskImageType string `json:"task_image_type,omitempty"`
}

type UpdateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
	// Image fields are optional; when omitted the stored image is kept.
	TaskImage     string `json:"task_image,omitempty"`
	TaskImageType string `json:"task_image_type,omitempty"`
}

type TaskResponse struct {
	TaskID      int64  `json:"task_id"`
	UserID      int64  `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type,omitempty"`
	IsCompleted bool   `json:"is_completed"`
	TaskImage   string `json:"task_image,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
