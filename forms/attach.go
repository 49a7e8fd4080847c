package forms

import (
	"context"
	"errors"

	"github.com/arjunr/formbuilder/model"
)

type AttachStatus int

const (
	// Attached means the uploaded URL was linked to the form's media fields.
	Attached AttachStatus = iota
	// UploadedButUnlinked means the upload succeeded but the form record
	// could not be patched; the URL is still the durable source of truth
	// and the caller may retry the link step.
	UploadedButUnlinked
)

// AttachResult always carries the media URL, whatever happened to the
// form record.
type AttachResult struct {
	Status AttachStatus
	URL    string
	Form   *model.Form
	// Err holds the swallowed store fault when Status is UploadedButUnlinked.
	Err error
}

// AttachMedia links an already-uploaded media URL to a form by setting
// media_url on every field of type media. Forms are expected to carry at
// most one media field; with several, every one of them receives the same
// URL. The operation is idempotent.
//
// Store faults never fail the call: the upload is an external,
// already-completed side effect, so the URL is reported back regardless
// and the result is marked UploadedButUnlinked instead.
func (s *Store) AttachMedia(ctx context.Context, formID, url string) AttachResult {
	res := AttachResult{Status: Attached, URL: url}

	_, err := s.db.ExecContext(ctx, `
		UPDATE form_field
		SET media_url = ?
		WHERE form_id = ?
			AND type = ?`,
		url,
		formID,
		model.FieldMedia,
	)
	if err != nil {
		res.Status = UploadedButUnlinked
		res.Err = persistence("db.attach_media", err)
		return res
	}

	form, err := s.GetByID(ctx, formID)
	switch {
	case err == nil:
		res.Form = &form
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidID):
		// nothing matched the update, report the URL with no form
	default:
		res.Status = UploadedButUnlinked
		res.Err = err
	}
	return res
}
