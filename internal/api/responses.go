package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type InsufficientFundsResponse struct {
	Error          string `json:"error" example:"insufficient funds"`
	RequiredCents  int64  `json:"required_cents" example:"1000"`
	AvailableCents int64  `json:"available_cents" example:"500"`
}
