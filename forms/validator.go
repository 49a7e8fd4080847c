package forms

import (
	"strings"
	"time"

	"github.com/arjunr/formbuilder/model"
	"github.com/gofrs/uuid"
)

func newID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// Validate checks a candidate form definition and returns the normalized
// record: generated identifiers for the form and every field, creation
// timestamp, trimmed title. It does not persist anything.
func Validate(form model.Form) (model.Form, error) {
	form.Title = strings.TrimSpace(form.Title)
	if form.Title == "" {
		return model.Form{}, validationErrorf("form title is required")
	}
	if form.Fields == nil {
		return model.Form{}, validationErrorf("form fields must be an array")
	}

	for i, f := range form.Fields {
		if f.Type == "" || strings.TrimSpace(f.Label) == "" {
			return model.Form{}, validationErrorf("each field must have a type and label")
		}
		if !f.Type.Known() {
			return model.Form{}, validationErrorf("unknown field type %q", f.Type)
		}

		f.Label = strings.TrimSpace(f.Label)
		f.ID = newID()
		// options may legitimately be empty at creation, they get
		// populated from comma-separated input on the builder side
		if f.Options == nil && f.Type.HasOptions() {
			f.Options = []string{}
		}
		form.Fields[i] = f
	}

	form.ID = newID()
	form.CreatedAt = time.Now().UTC()
	return form, nil
}
