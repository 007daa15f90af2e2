package dto

type TaskItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Completed   bool    `json:"completed"`
	Priority    string  `json:"priority"`
	Category    string  `json:"category"`
	DueDate     *string `json:"dueDate,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=high medium low"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
	DueDate     *string `json:"dueDate"`
}

// UpdateTaskRequest is read together with the raw JSON object so that an
// explicit null can be told apart from an absent field.
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=high medium low"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
	DueDate     *string `json:"dueDate"`
}
