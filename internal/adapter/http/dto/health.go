package dto

type HealthStatus struct {
	Status string `json:"status"`
}

type HealthServices struct {
	Store         string `json:"store"`
	StoreDriver   string `json:"store_driver"`
	SummaryEngine string `json:"summary_engine"`
}

type HealthReport struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	Status            HealthServices `json:"status"`
}
