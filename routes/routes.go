package routes

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/arjunr/formbuilder/app"
	"github.com/arjunr/formbuilder/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	if !app.UseMinio() {
		root.Mount("/media", http.StripPrefix("/media", http.FileServer(http.Dir(app.MediaDir))))
	}

	root.
		With(middlewares.CookieAuth(app.BearerServer), middlewares.Admin(app.TokenSecret)).
		Mount("/admin", servePrivateFiles("/admin"))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get("/", health)

	api.Get("/forms/{id}", PublicGetFormById(app))
	api.Post("/forms/{id}/submit", PublicSubmitResponse(app))

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Admin(app.TokenSecret))

		r.Post("/forms", CreateForm(app))
		r.Get("/forms", ListForms(app))
		r.Get("/forms/{id}", GetFormById(app))
		r.Post("/forms/{id}/media", UploadMedia(app))
		r.Get("/forms/{id}/responses", GetFormResponses(app))
		r.Get("/forms/{id}/responses/export", ExportFormResponses(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}

func health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"success": true,
		"message": "Your server is up and running ...",
	})
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}

func servePrivateFiles(path string) http.Handler {
	return http.StripPrefix(path, http.FileServer(http.Dir("private")))
}
