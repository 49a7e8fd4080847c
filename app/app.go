package app

import (
	"github.com/go-chi/oauth"

	"github.com/arjunr/formbuilder/config"
	"github.com/arjunr/formbuilder/forms"
	"github.com/arjunr/formbuilder/media"
)

type App struct {
	*forms.Store
	*oauth.BearerServer
	Media media.Storage
	config.Config
}
