package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
	Data    interface{} `json:"data"`
}

func SuccessResponse(data interface{}, message string) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(err string) Response {
	return Response{
		Success: false,
		Error:   err,
	}
}

// KindErrorResponse carries the failure kind next to the message.
func KindErrorResponse(kind, err string) Response {
	return Response{
		Success: false,
		Error:   err,
		Kind:    kind,
	}
}
