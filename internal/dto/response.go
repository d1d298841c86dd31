package dto

// Response is the uniform success envelope shared by every endpoint.
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// OK wraps a payload in the success envelope.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}
