package forms

import (
	"context"
	"encoding/json"
	"time"

	"github.com/arjunr/formbuilder/model"
)

// Record validates that the form exists, resolves each raw answer against
// the form's field metadata and persists the submission.
//
// Media answers get their value copied into the media_url slot so readers
// never need the field definition to render them. Labels come from the
// form's fields; answers with an unknown fieldId are stored as submitted.
// Required-ness is advisory and not enforced here.
func (s *Store) Record(ctx context.Context, formID string, answers []model.FieldAnswer) (model.FormResponse, error) {
	form, err := s.GetByID(ctx, formID)
	if err != nil {
		return model.FormResponse{}, err
	}

	fieldsById := make(map[string]model.Field, len(form.Fields))
	for _, f := range form.Fields {
		fieldsById[f.ID] = f
	}

	response := model.FormResponse{
		ID:          newID(),
		FormID:      form.ID,
		Responses:   make([]model.FieldAnswer, len(answers)),
		SubmittedAt: time.Now().UTC(),
	}
	for i, a := range answers {
		if field, ok := fieldsById[a.FieldID]; ok {
			a.Label = field.Label
			if field.Type == model.FieldMedia && a.Value != nil {
				if url, ok := a.Value.(string); ok {
					a.MediaURL = url
				}
			}
		}
		response.Responses[i] = a
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.FormResponse{}, persistence("db.begin_tx", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO form_response (id, form_id, submitted_at) VALUES (?, ?, ?)`,
		response.ID,
		response.FormID,
		response.SubmittedAt,
	)
	if err != nil {
		return model.FormResponse{}, persistence("db.insert_response", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO response_field (response_id, field_id, position, label, value, media_url)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return model.FormResponse{}, persistence("db.insert_response.fields.prepare", err)
	}
	defer stmt.Close()

	for i, a := range response.Responses {
		var valueJson []byte
		if a.Value != nil {
			valueJson, err = json.Marshal(a.Value)
			if err != nil {
				return model.FormResponse{}, persistence("db.insert_response.fields.value", err)
			}
		}
		_, err = stmt.ExecContext(ctx, response.ID, a.FieldID, i, a.Label, string(valueJson), a.MediaURL)
		if err != nil {
			return model.FormResponse{}, persistence("db.insert_response.fields.insert", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return model.FormResponse{}, persistence("db.insert_response.commit", err)
	}
	return response, nil
}
