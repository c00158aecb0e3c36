package dto

import "net/http"

// BaseResponse is the envelope for every API reply.
type BaseResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(message string, data interface{}) *BaseResponse {
	return &BaseResponse{Code: http.StatusOK, Message: message, Data: data}
}

func NewBadRequestResponse(message string) *BaseResponse {
	return &BaseResponse{Code: http.StatusBadRequest, Message: message}
}

func NewInternalErrorResponse(message string) *BaseResponse {
	return &BaseResponse{Code: http.StatusInternalServerError, Message: message}
}
