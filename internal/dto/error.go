package dto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code       string `json:"code"`
	MessageKey string `json:"messageKey"`
	Message    string `json:"message"`
}
