package dto

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status   string            `json:"status"`
	App      string            `json:"app"`
	Services map[string]string `json:"services"`
}
