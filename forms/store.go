package forms

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/arjunr/formbuilder/model"
	"github.com/gofrs/uuid"
)

// Store implements form and response persistence over the service
// database. All identifiers are UUID strings.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db}
}

// Create persists a normalized form definition as produced by Validate.
func (s *Store) Create(ctx context.Context, form model.Form) (model.Form, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Form{}, persistence("db.begin_tx", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO form (id, title, created_at) VALUES (?, ?, ?)`,
		form.ID,
		form.Title,
		form.CreatedAt,
	)
	if err != nil {
		return model.Form{}, persistence("db.insert_form", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO form_field (id, form_id, position, type, label, placeholder, options, media_url, required)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return model.Form{}, persistence("db.insert_form.fields.prepare", err)
	}
	defer stmt.Close()

	for i, f := range form.Fields {
		var optionsJson []byte
		if f.Options != nil {
			optionsJson, err = json.Marshal(f.Options)
			if err != nil {
				return model.Form{}, persistence("db.insert_form.fields.options", err)
			}
		}
		_, err = stmt.ExecContext(ctx,
			f.ID, form.ID, i, f.Type, f.Label, f.Placeholder, string(optionsJson), f.MediaURL, f.Required)
		if err != nil {
			return model.Form{}, persistence("db.insert_form.fields.insert", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return model.Form{}, persistence("db.insert_form.commit", err)
	}
	return form, nil
}

// List returns every form, newest first.
func (s *Store) List(ctx context.Context) ([]model.Form, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			fm.id, fm.title, fm.created_at,
			fl.id, fl.type, fl.label, fl.placeholder, fl.options, fl.media_url, fl.required
		FROM form fm
		LEFT OUTER JOIN form_field fl ON (fm.id = fl.form_id)
		ORDER BY fm.created_at DESC, fm.id, fl.position`)
	if err != nil {
		return nil, persistence("db.get_forms", err)
	}
	defer rows.Close()

	forms := []model.Form{}
	for rows.Next() {
		form, field, hasField, err := scanFormRow(rows)
		if err != nil {
			return nil, persistence("db.get_forms.scan", err)
		}

		lastIdx := len(forms) - 1
		if lastIdx < 0 || forms[lastIdx].ID != form.ID {
			forms = append(forms, form)
			lastIdx++
		}
		if hasField {
			forms[lastIdx].Fields = append(forms[lastIdx].Fields, field)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, persistence("db.get_forms.rows", err)
	}
	return forms, nil
}

// GetByID fetches one form with its fields in definition order.
// Fails with ErrInvalidID on a malformed identifier and ErrNotFound when
// no form matches.
func (s *Store) GetByID(ctx context.Context, id string) (model.Form, error) {
	if _, err := uuid.FromString(id); err != nil {
		return model.Form{}, ErrInvalidID
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT
			fm.id, fm.title, fm.created_at,
			fl.id, fl.type, fl.label, fl.placeholder, fl.options, fl.media_url, fl.required
		FROM form fm
		LEFT OUTER JOIN form_field fl ON (fm.id = fl.form_id)
		WHERE fm.id = ?
		ORDER BY fl.position`,
		id,
	)
	if err != nil {
		return model.Form{}, persistence("db.get_form", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.Form{}, persistence("db.get_form.rows", err)
		}
		return model.Form{}, ErrNotFound
	}

	var form model.Form
	for {
		f, field, hasField, err := scanFormRow(rows)
		if err != nil {
			return model.Form{}, persistence("db.get_form.scan", err)
		}
		form.ID, form.Title, form.CreatedAt = f.ID, f.Title, f.CreatedAt
		if hasField {
			form.Fields = append(form.Fields, field)
		}

		if !rows.Next() {
			break
		}
	}
	return form, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFormRow(rows rowScanner) (form model.Form, field model.Field, hasField bool, err error) {
	var fieldId, fieldType, label, placeholder, options, mediaUrl sql.NullString
	var required sql.NullBool

	err = rows.Scan(
		&form.ID, &form.Title, &form.CreatedAt,
		&fieldId, &fieldType, &label, &placeholder, &options, &mediaUrl, &required,
	)
	if err != nil {
		return
	}
	if !fieldId.Valid {
		// form with no fields, left join produced NULLs
		return
	}

	field = model.Field{
		ID:          fieldId.String,
		Type:        model.FieldType(fieldType.String),
		Label:       label.String,
		Placeholder: placeholder.String,
		MediaURL:    mediaUrl.String,
		Required:    required.Bool,
	}
	if options.String != "" {
		if err = json.Unmarshal([]byte(options.String), &field.Options); err != nil {
			return
		}
	}
	hasField = true
	return
}
