package routes

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/arjunr/formbuilder/app"
	"github.com/arjunr/formbuilder/forms"
	"github.com/arjunr/formbuilder/httpx"
	"github.com/arjunr/formbuilder/log"
	"github.com/arjunr/formbuilder/media"
	"github.com/arjunr/formbuilder/model"
)

const maxUploadBytes = 32 << 20

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := model.Form{}
		err := render.DecodeJSON(r.Body, &form)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		form, err = forms.Validate(form)
		if err != nil {
			respondFormsError(w, "create_form.validate", nil, err)
			return
		}

		form, err = app.Create(r.Context(), form)
		if err != nil {
			respondFormsError(w, "create_form", nil, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, form)
	}
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms, err := app.List(r.Context())
		if err != nil {
			respondFormsError(w, "get_forms", nil, err)
			return
		}

		render.JSON(w, r, map[string]any{
			"forms": forms,
		})
	}
}

func GetFormById(app app.App) http.HandlerFunc {
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

// UploadMedia stores the uploaded file with the media collaborator, then
// links the resulting URL to the form's media fields. A failed link never
// hides the URL: the upload already happened and cannot be retried or
// undone, so the caller gets it back with success=false and may attach it
// again later.
func UploadMedia(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		err := r.ParseMultipartForm(maxUploadBytes)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "upload_media.parse_form")
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "upload_media.file", "no file uploaded")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			httpx.LogInternalError(w, "upload_media.read", err)
			return
		}

		name := media.ObjectName(header.Filename)
		err = app.Media.Save(r.Context(), data, name, media.ContentType(header.Filename))
		if err != nil {
			httpx.LogInternalError(w, "upload_media.save", err)
			return
		}
		url := app.Media.URL(name)

		res := app.AttachMedia(r.Context(), formId, url)
		if res.Status == forms.UploadedButUnlinked {
			log.Warnf("upload_media.attach: form update failed but media was uploaded: %s", res.Err)
			render.JSON(w, r, map[string]any{
				"success": false,
				"url":     res.URL,
				"error":   "form update failed but media was uploaded",
			})
			return
		}

		render.JSON(w, r, map[string]any{
			"success": true,
			"url":     res.URL,
			"form":    res.Form,
		})
	}
}

func GetFormResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		view, err := app.Aggregate(r.Context(), formId)
		if err != nil {
			respondFormsError(w, "get_responses", formId, err)
			return
		}

		render.JSON(w, r, view)
	}
}
