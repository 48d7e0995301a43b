package dto

// Result values carried by every response body
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Result  string `json:"result"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse builds an error body
func NewErrorResponse(code int, message string) ErrorResponse {
	return ErrorResponse{Result: ResultError, Code: code, Message: message}
}

// SuccessResponse is returned by endpoints with nothing else to report
type SuccessResponse struct {
	Result string `json:"result"`
}
