package serverutils

// BaseResponse is the envelope used by endpoints that are not bound to a
// fixed wire shape.
type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

// ErrorBody carries both "error" and "message" so that clients reading either
// field get the reason.
type ErrorBody struct {
	Success bool         `json:"success"`
	Code    int          `json:"code"`
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) ErrorBody {
	return ErrorBody{
		Success: false,
		Code:    code,
		Error:   message,
		Message: message,
	}
}
