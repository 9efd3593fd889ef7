package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta con un mensaje legible.
type MessageResponse struct {
	Mensaje string `json:"mensaje"`
}
