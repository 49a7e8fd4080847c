package forms

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunr/formbuilder/model"
)

func TestRecordUnknownForm(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Record(context.Background(), newID(), []model.FieldAnswer{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordDenormalizesLabelsAndMediaUrl(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	form := createMediaForm(t, store)

	response, err := store.Record(ctx, form.ID, []model.FieldAnswer{
		{FieldID: form.Fields[0].ID, Value: "Jo"},
		{FieldID: form.Fields[1].ID, Value: mediaUrl},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, response.ID)
	assert.Equal(t, form.ID, response.FormID)
	require.Len(t, response.Responses, 2)
	assert.Equal(t, "Name", response.Responses[0].Label)
	assert.Empty(t, response.Responses[0].MediaURL)
	assert.Equal(t, "Attachment", response.Responses[1].Label)
	assert.Equal(t, mediaUrl, response.Responses[1].Value)
	assert.Equal(t, mediaUrl, response.Responses[1].MediaURL)
}

func TestRecordKeepsUnknownFieldAnswers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	form := createMediaForm(t, store)

	stray := newID()
	response, err := store.Record(ctx, form.ID, []model.FieldAnswer{
		{FieldID: stray, Label: "Stale label", Value: "kept"},
	})
	require.NoError(t, err)

	require.Len(t, response.Responses, 1)
	assert.Equal(t, stray, response.Responses[0].FieldID)
	assert.Equal(t, "Stale label", response.Responses[0].Label)
	assert.Empty(t, response.Responses[0].MediaURL)
}

func TestMediaAnswerRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	form := createMediaForm(t, store)

	_, err := store.Record(ctx, form.ID, []model.FieldAnswer{
		{FieldID: form.Fields[1].ID, Value: mediaUrl},
	})
	require.NoError(t, err)

	view, err := store.Aggregate(ctx, form.ID)
	require.NoError(t, err)

	require.Equal(t, 1, view.TotalResponses)
	require.Len(t, view.Responses, 1)
	require.Len(t, view.Responses[0].Responses, 1)
	assert.Equal(t, mediaUrl, view.Responses[0].Responses[0].Value)
}

func TestAggregateSurveyScenario(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	form := mustValidate(t, model.Form{
		Title: "Survey",
		Fields: []model.Field{
			{Type: model.FieldText, Label: "Name"},
			{Type: model.FieldCheckbox, Label: "Interests", Options: []string{"A", "B"}},
		},
	})
	form, err := store.Create(ctx, form)
	require.NoError(t, err)

	_, err = store.Record(ctx, form.ID, []model.FieldAnswer{
		{FieldID: form.Fields[0].ID, Value: "Jo"},
		{FieldID: form.Fields[1].ID, Value: []string{"A"}},
	})
	require.NoError(t, err)

	view, err := store.Aggregate(ctx, form.ID)
	require.NoError(t, err)

	assert.Equal(t, "Survey", view.FormTitle)
	assert.Equal(t, 1, view.TotalResponses)
	require.Len(t, view.Responses, 1)

	answers := view.Responses[0].Responses
	require.Len(t, answers, 2)
	assert.Equal(t, "Name", answers[0].Label)
	assert.Equal(t, "Jo", answers[0].Value)
	assert.Equal(t, "Interests", answers[1].Label)
	assert.Equal(t, []any{"A"}, answers[1].Value)
}

func TestAggregateNewestSubmissionFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	form := createMediaForm(t, store)

	first, err := store.Record(ctx, form.ID, []model.FieldAnswer{
		{FieldID: form.Fields[0].ID, Value: "first"},
	})
	require.NoError(t, err)
	// keep submission timestamps strictly ordered
	time.Sleep(10 * time.Millisecond)
	second, err := store.Record(ctx, form.ID, []model.FieldAnswer{
		{FieldID: form.Fields[0].ID, Value: "second"},
	})
	require.NoError(t, err)

	view, err := store.Aggregate(ctx, form.ID)
	require.NoError(t, err)

	require.Len(t, view.Responses, 2)
	assert.Equal(t, second.ID, view.Responses[0].ID)
	assert.Equal(t, first.ID, view.Responses[1].ID)
}

func TestAggregateMalformedId(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Aggregate(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestAggregateAbsentForm(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Aggregate(context.Background(), newID())
	assert.ErrorIs(t, err, ErrNotFound)
}
