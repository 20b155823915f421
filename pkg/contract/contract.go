// Package contract is the single definition of the contact API shared by the
// server handlers and the Go client: the route, the input schema and the
// response bodies for each status.
package contract

import "net/http"

// Route describes one API operation.
type Route struct {
	Method string
	Path   string
}

// Pattern returns the route in net/http ServeMux pattern form ("POST /api/contact").
func (r Route) Pattern() string {
	return r.Method + " " + r.Path
}

// SubmitContact is the contact form submission operation.
var SubmitContact = Route{Method: http.MethodPost, Path: "/api/contact"}

const (
	// SuccessMessage is returned with every accepted submission.
	SuccessMessage = "Message sent successfully"
	// InternalErrorMessage is the only detail a caller sees for a 500.
	InternalErrorMessage = "Failed to process message"
)

// SuccessResponse is the 200 body.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ValidationErrorResponse is the 400 body. Field is the dotted JSON path of the
// offending input field and is omitted when no field can be attributed.
type ValidationErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// InternalErrorResponse is the 500 body.
type InternalErrorResponse struct {
	Message string `json:"message"`
}
