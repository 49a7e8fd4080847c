package forms

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunr/formbuilder/config"
	"github.com/arjunr/formbuilder/database"
	"github.com/arjunr/formbuilder/model"
)

const mediaUrl = "https://media.example.com/formbuilder/logo.png"

func createMediaForm(t *testing.T, store *Store) model.Form {
	t.Helper()

	form := mustValidate(t, model.Form{
		Title: "With media",
		Fields: []model.Field{
			{Type: model.FieldText, Label: "Name"},
			{Type: model.FieldMedia, Label: "Attachment"},
		},
	})
	form, err := store.Create(context.Background(), form)
	require.NoError(t, err)
	return form
}

func TestAttachMediaSetsMediaFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	form := createMediaForm(t, store)

	res := store.AttachMedia(ctx, form.ID, mediaUrl)

	assert.Equal(t, Attached, res.Status)
	assert.Equal(t, mediaUrl, res.URL)
	require.NotNil(t, res.Form)
	assert.Empty(t, res.Form.Fields[0].MediaURL)
	assert.Equal(t, mediaUrl, res.Form.Fields[1].MediaURL)
}

func TestAttachMediaIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	form := createMediaForm(t, store)

	first := store.AttachMedia(ctx, form.ID, mediaUrl)
	require.Equal(t, Attached, first.Status)
	second := store.AttachMedia(ctx, form.ID, mediaUrl)
	require.Equal(t, Attached, second.Status)

	got, err := store.GetByID(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, mediaUrl, got.Fields[1].MediaURL)
}

// Every media field of the form receives the same URL; the attach
// operation has no field targeting and only behaves sensibly for forms
// with a single media field.
func TestAttachMediaPatchesEveryMediaField(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	form := mustValidate(t, model.Form{
		Title: "Two media slots",
		Fields: []model.Field{
			{Type: model.FieldMedia, Label: "First"},
			{Type: model.FieldMedia, Label: "Second"},
		},
	})
	form, err := store.Create(ctx, form)
	require.NoError(t, err)

	res := store.AttachMedia(ctx, form.ID, mediaUrl)
	require.Equal(t, Attached, res.Status)

	got, err := store.GetByID(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, mediaUrl, got.Fields[0].MediaURL)
	assert.Equal(t, mediaUrl, got.Fields[1].MediaURL)
}

func TestAttachMediaAbsentFormStillReportsUrl(t *testing.T) {
	store := newTestStore(t)

	res := store.AttachMedia(context.Background(), newID(), mediaUrl)

	assert.Equal(t, Attached, res.Status)
	assert.Equal(t, mediaUrl, res.URL)
	assert.Nil(t, res.Form)
}

func TestAttachMediaStoreFaultKeepsUrl(t *testing.T) {
	cfg := config.Config{DBUrl: filepath.Join(t.TempDir(), "forms.sqlite")}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	store := NewStore(db)

	form := createMediaForm(t, store)

	// simulate a storage fault
	require.NoError(t, db.Close())

	res := store.AttachMedia(context.Background(), form.ID, mediaUrl)

	assert.Equal(t, UploadedButUnlinked, res.Status)
	assert.Equal(t, mediaUrl, res.URL)
	assert.Error(t, res.Err)
}
