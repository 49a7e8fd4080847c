package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunr/formbuilder/model"
)

func TestValidateRejectsMissingTitle(t *testing.T) {
	_, err := Validate(model.Form{
		Title:  "   ",
		Fields: []model.Field{},
	})

	var validation ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Msg, "title")
}

func TestValidateRejectsNilFields(t *testing.T) {
	_, err := Validate(model.Form{Title: "Survey"})

	var validation ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Msg, "fields")
}

func TestValidateRejectsFieldWithoutTypeOrLabel(t *testing.T) {
	for name, field := range map[string]model.Field{
		"no type":  {Label: "Name"},
		"no label": {Type: model.FieldText},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Validate(model.Form{
				Title:  "Survey",
				Fields: []model.Field{field},
			})

			var validation ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Contains(t, validation.Msg, "type and label")
		})
	}
}

func TestValidateRejectsUnknownFieldType(t *testing.T) {
	_, err := Validate(model.Form{
		Title:  "Survey",
		Fields: []model.Field{{Type: "signature", Label: "Sign here"}},
	})

	var validation ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Msg, "signature")
}

func TestValidateNormalizes(t *testing.T) {
	form, err := Validate(model.Form{
		Title: "  Survey  ",
		Fields: []model.Field{
			{Type: model.FieldText, Label: "Name"},
			{Type: model.FieldCheckbox, Label: "Interests"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Survey", form.Title)
	assert.NotEmpty(t, form.ID)
	assert.False(t, form.CreatedAt.IsZero())

	require.Len(t, form.Fields, 2)
	assert.NotEmpty(t, form.Fields[0].ID)
	assert.NotEmpty(t, form.Fields[1].ID)
	assert.NotEqual(t, form.Fields[0].ID, form.Fields[1].ID)
	// option-carrying fields may start out with an empty list, never nil
	assert.NotNil(t, form.Fields[1].Options)
	assert.Nil(t, form.Fields[0].Options)
}
