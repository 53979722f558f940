package dto

// APIResponse is the envelope every endpoint answers with. Exactly one of
// Data and Error is meaningful, selected by Success.
type APIResponse struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty" example:"Route not found"`
}

// Success wraps data in a successful envelope.
func Success(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// Failure wraps an error message in a failed envelope.
func Failure(message string) APIResponse {
	return APIResponse{Success: false, Error: message}
}

// HelloResponse is returned by the hello endpoint
type HelloResponse struct {
	Message string `json:"message" example:"Hello World"`
}

// Health states
const (
	HealthOK    = "ok"
	HealthError = "error"

	MongoConnected    = "connected"
	MongoDisconnected = "disconnected"
)

// HealthResponse describes server liveness and database connectivity
type HealthResponse struct {
	Status    string  `json:"status" example:"ok"`
	Timestamp string  `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
	Uptime    float64 `json:"uptime" example:"42.5"` // Seconds since process start
	MongoDB   string  `json:"mongodb" example:"connected"`
}

// ListStudentsRequest is the optional body of getAllStudents. Zero values
// return every student.
type ListStudentsRequest struct {
	Page     int `json:"page,omitempty" example:"1"`
	PageSize int `json:"pageSize,omitempty" example:"20"`
}
