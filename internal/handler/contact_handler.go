package handler

import (
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/pkg/contract"
)

// maxBodyBytes caps the contact request body; the contract allows far less.
const maxBodyBytes = 64 << 10

// ContactHandler handles contact form submission.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles POST /api/contact.
//
//	200 {"success":true,"message":"Message sent successfully"}
//	400 {"message":"...","field":"email"}
//	500 {"message":"Failed to process message"}
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	input, ferr := contract.ParseContactInput(r.Body)
	if ferr != nil {
		writeJSON(w, http.StatusBadRequest, ferr.Response())
		return
	}

	msg, out, err := h.contactService.Submit(r.Context(), input)
	if err != nil {
		slog.ErrorContext(r.Context(), "contact form error", "error", err)
		writeJSON(w, http.StatusInternalServerError, contract.InternalErrorResponse{
			Message: contract.InternalErrorMessage,
		})
		return
	}

	slog.DebugContext(r.Context(), "contact message stored",
		"contact_id", msg.ID,
		"relay_status", out.Status.String(),
	)
	writeJSON(w, http.StatusOK, contract.SuccessResponse{
		Success: true,
		Message: contract.SuccessMessage,
	})
}
