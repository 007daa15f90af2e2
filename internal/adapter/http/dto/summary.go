package dto

type CompletedTaskItem struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Category    string  `json:"category"`
	Priority    string  `json:"priority"`
	CompletedAt *string `json:"completedAt,omitempty"`
}

type SummaryItem struct {
	ID             string              `json:"id"`
	Date           string              `json:"date"`
	Summary        string              `json:"summary"`
	TaskCount      int                 `json:"taskCount"`
	Categories     []string            `json:"categories"`
	CompletedTasks []CompletedTaskItem `json:"completedTasks"`
	CreatedAt      string              `json:"createdAt"`
	UpdatedAt      string              `json:"updatedAt"`
}

type GeneratedSummaryItem struct {
	Date           string              `json:"date"`
	Summary        string              `json:"summary"`
	TaskCount      int                 `json:"taskCount"`
	Categories     []string            `json:"categories"`
	CompletedTasks []CompletedTaskItem `json:"completedTasks"`
}

type UpsertSummaryRequest struct {
	Date           string              `json:"date" binding:"required"`
	Summary        string              `json:"summary" binding:"required"`
	TaskCount      *int                `json:"taskCount" binding:"required,gte=0"`
	Categories     []string            `json:"categories"`
	CompletedTasks []CompletedTaskItem `json:"completedTasks"`
}

type GenerateSummaryRequest struct {
	Date string `json:"date" binding:"required"`
}

type WeeklySummaryRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

type WeeklySummaryItem struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Summary   string `json:"summary"`
}
