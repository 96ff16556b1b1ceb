package httpd

import (
	"net/http"
)

const msgWorksRetrieved = "Works retrieved successfully"

// GetWorks takes worker_id as a form field.
func (h *Handler) GetWorks(w http.ResponseWriter, r *http.Request) {
	values, err := decodeForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	works, err := h.workService.ListWorks(r.Context(), formID(values, "worker_id"))
	if err != nil {
		h.handleServiceError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeSuccess(w, http.StatusOK, msgWorksRetrieved, envelope{
		"works": works,
	})
}
