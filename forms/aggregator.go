package forms

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/arjunr/formbuilder/model"
)

// Aggregate joins a form's field metadata with every stored submission
// for admin review, newest submission first. For each answer the emitted
// value is the media URL when one was recorded, the raw value otherwise.
//
// The form fetch and the response-list fetch are independent reads and
// run concurrently.
func (s *Store) Aggregate(ctx context.Context, formID string) (model.FormResponses, error) {
	type formFetch struct {
		form model.Form
		err  error
	}
	formc := make(chan formFetch, 1)
	go func() {
		form, err := s.GetByID(ctx, formID)
		formc <- formFetch{form, err}
	}()

	responses, responsesErr := s.listResponses(ctx, formID)

	fetched := <-formc
	if fetched.err != nil {
		return model.FormResponses{}, fetched.err
	}
	if responsesErr != nil {
		return model.FormResponses{}, responsesErr
	}

	view := model.FormResponses{
		FormTitle:      fetched.form.Title,
		TotalResponses: len(responses),
		Responses:      make([]model.ResponseEntry, len(responses)),
	}
	for i, r := range responses {
		entry := model.ResponseEntry{
			ID:          r.ID,
			SubmittedAt: r.SubmittedAt,
			Responses:   make([]model.AnswerView, len(r.Responses)),
		}
		for j, a := range r.Responses {
			value := a.Value
			if a.MediaURL != "" {
				value = a.MediaURL
			}
			entry.Responses[j] = model.AnswerView{
				FieldID: a.FieldID,
				Label:   a.Label,
				Value:   value,
			}
		}
		view.Responses[i] = entry
	}
	return view, nil
}

// listResponses loads every submission for a form, newest first, answers
// in submission order.
func (s *Store) listResponses(ctx context.Context, formID string) ([]model.FormResponse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			r.id, r.form_id, r.submitted_at,
			a.field_id, a.label, a.value, a.media_url
		FROM form_response r
		LEFT OUTER JOIN response_field a ON (r.id = a.response_id)
		WHERE r.form_id = ?
		ORDER BY r.submitted_at DESC, r.id, a.position`,
		formID,
	)
	if err != nil {
		return nil, persistence("db.get_responses", err)
	}
	defer rows.Close()

	responses := []model.FormResponse{}
	for rows.Next() {
		var r model.FormResponse
		var fieldId, label, value, mediaUrl sql.NullString

		err = rows.Scan(&r.ID, &r.FormID, &r.SubmittedAt, &fieldId, &label, &value, &mediaUrl)
		if err != nil {
			return nil, persistence("db.get_responses.scan", err)
		}

		lastIdx := len(responses) - 1
		if lastIdx < 0 || responses[lastIdx].ID != r.ID {
			responses = append(responses, r)
			lastIdx++
		}
		if !fieldId.Valid {
			continue
		}

		a := model.FieldAnswer{
			FieldID:  fieldId.String,
			Label:    label.String,
			MediaURL: mediaUrl.String,
		}
		if value.String != "" {
			if err = json.Unmarshal([]byte(value.String), &a.Value); err != nil {
				return nil, persistence("db.get_responses.parse_value", err)
			}
		}
		responses[lastIdx].Responses = append(responses[lastIdx].Responses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("db.get_responses.rows", err)
	}
	return responses, nil
}
