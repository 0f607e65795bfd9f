package dto

type MessageDTO struct {
	Message string `json:"message"`
}

type ErrorDTO struct {
	Error string `json:"error"`
}
