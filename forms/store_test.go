package forms

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunr/formbuilder/config"
	"github.com/arjunr/formbuilder/database"
	"github.com/arjunr/formbuilder/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	cfg := config.Config{DBUrl: filepath.Join(t.TempDir(), "forms.sqlite")}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStore(db)
}

func mustValidate(t *testing.T, form model.Form) model.Form {
	t.Helper()

	form, err := Validate(form)
	require.NoError(t, err)
	return form
}

func TestCreateGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	form := mustValidate(t, model.Form{
		Title: "Survey",
		Fields: []model.Field{
			{Type: model.FieldText, Label: "Name", Placeholder: "Your name", Required: true},
			{Type: model.FieldCheckbox, Label: "Interests", Options: []string{"A", "B"}},
			{Type: model.FieldMedia, Label: "Attachment"},
		},
	})

	created, err := store.Create(ctx, form)
	require.NoError(t, err)
	require.Equal(t, form.ID, created.ID)

	got, err := store.GetByID(ctx, form.ID)
	require.NoError(t, err)

	assert.Equal(t, form.ID, got.ID)
	assert.Equal(t, form.Title, got.Title)
	assert.WithinDuration(t, form.CreatedAt, got.CreatedAt, time.Second)
	require.Len(t, got.Fields, 3)
	for i, field := range got.Fields {
		assert.Equal(t, form.Fields[i].ID, field.ID)
		assert.Equal(t, form.Fields[i].Type, field.Type)
		assert.Equal(t, form.Fields[i].Label, field.Label)
		assert.Equal(t, form.Fields[i].Placeholder, field.Placeholder)
		assert.Equal(t, form.Fields[i].Required, field.Required)
	}
	assert.Equal(t, []string{"A", "B"}, got.Fields[1].Options)
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := mustValidate(t, model.Form{Title: "Older", Fields: []model.Field{}})
	older.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := mustValidate(t, model.Form{Title: "Newer", Fields: []model.Field{
		{Type: model.FieldText, Label: "Name"},
	}})
	newer.CreatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := store.Create(ctx, older)
	require.NoError(t, err)
	_, err = store.Create(ctx, newer)
	require.NoError(t, err)

	forms, err := store.List(ctx)
	require.NoError(t, err)

	require.Len(t, forms, 2)
	assert.Equal(t, "Newer", forms[0].Title)
	assert.Len(t, forms[0].Fields, 1)
	assert.Equal(t, "Older", forms[1].Title)
	assert.Empty(t, forms[1].Fields)
}

func TestGetByIdMalformed(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestGetByIdAbsent(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetByID(context.Background(), newID())
	assert.ErrorIs(t, err, ErrNotFound)
}
