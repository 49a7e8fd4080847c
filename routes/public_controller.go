package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/arjunr/formbuilder/app"
	"github.com/arjunr/formbuilder/httpx"
	"github.com/arjunr/formbuilder/log"
	"github.com/arjunr/formbuilder/model"
)

func PublicGetFormById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		form, err := app.GetByID(r.Context(), formId)
		if err != nil {
			respondFormsError(w, "get_form", formId, err)
			return
		}

		render.JSON(w, r, form)
	}
}

type submitRequest struct {
	Responses []model.FieldAnswer `json:"responses"`
}

func PublicSubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		req := submitRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		response, err := app.Record(r.Context(), formId, req.Responses)
		if err != nil {
			respondFormsError(w, "submit_response", formId, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, response)
	}
}
