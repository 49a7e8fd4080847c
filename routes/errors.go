package routes

import (
	"errors"
	"net/http"

	"github.com/arjunr/formbuilder/forms"
	"github.com/arjunr/formbuilder/httpx"
	"github.com/arjunr/formbuilder/log"
)

// respondFormsError maps the forms error taxonomy onto HTTP statuses:
// validation and malformed ids are 400, absent records 404, storage
// faults 500.
func respondFormsError(w http.ResponseWriter, code string, id any, err error) {
	var validation forms.ValidationError
	switch {
	case errors.As(err, &validation):
		httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, code, "%s", validation.Msg)
	case errors.Is(err, forms.ErrInvalidID):
		httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, code, "invalid form ID format")
	case errors.Is(err, forms.ErrNotFound):
		httpx.LogNotFound(w, code, id)
	default:
		httpx.LogInternalError(w, code, err)
	}
}
