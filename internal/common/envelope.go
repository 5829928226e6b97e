package common

import "errors"

// Envelope is the uniform RPC response body.
type Envelope struct {
	Success         bool      `json:"success"`
	Data            any       `json:"data,omitempty"`
	Message         string    `json:"message,omitempty"`
	Error           string    `json:"error,omitempty"`
	Code            ErrorKind `json:"code,omitempty"`
	IsUninitialized bool      `json:"isUninitialized,omitempty"`
}

// MigrateResult is the body of the migration endpoints.
type MigrateResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKWithMessage is OK plus a user-facing confirmation.
func OKWithMessage(data any, msg string) Envelope {
	return Envelope{Success: true, Data: data, Message: msg}
}

// Fail renders a classified error. Unclassified errors become a generic internal message.
func Fail(err error) Envelope {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return Envelope{Success: false, Error: "Internal Server Error", Code: KindInternal}
	}
	return Envelope{
		Success:         false,
		Error:           appErr.Message,
		Code:            appErr.Kind,
		IsUninitialized: appErr.Kind == KindUninitialized,
	}
}
