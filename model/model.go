package model

import "time"

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldPhone    FieldType = "phone"
	FieldSelect   FieldType = "select"
	FieldRadio    FieldType = "radio"
	FieldCheckbox FieldType = "checkbox"
	FieldMedia    FieldType = "media"
)

func (t FieldType) Known() bool {
	switch t {
	case FieldText, FieldEmail, FieldNumber, FieldDate, FieldPhone,
		FieldSelect, FieldRadio, FieldCheckbox, FieldMedia:
		return true
	}
	return false
}

// HasOptions reports whether fields of this type carry an options list.
func (t FieldType) HasOptions() bool {
	switch t {
	case FieldSelect, FieldRadio, FieldCheckbox:
		return true
	}
	return false
}

type Form struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title"`
	Fields    []Field   `json:"fields"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type Field struct {
	ID          string    `json:"id,omitempty"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"`
	MediaURL    string    `json:"mediaUrl,omitempty"`
	Required    bool      `json:"required"`
}

type FormResponse struct {
	ID          string        `json:"id"`
	FormID      string        `json:"formId"`
	Responses   []FieldAnswer `json:"responses"`
	SubmittedAt time.Time     `json:"submittedAt"`
}

// FieldAnswer carries the label denormalized from the form's field at
// submission time. Value is a scalar string, a list of selected options
// (checkbox) or nil.
type FieldAnswer struct {
	FieldID  string `json:"fieldId"`
	Label    string `json:"label"`
	Value    any    `json:"value"`
	MediaURL string `json:"mediaUrl,omitempty"`
}

// FormResponses is the admin review view of a form and everything
// submitted to it.
type FormResponses struct {
	FormTitle      string          `json:"formTitle"`
	TotalResponses int             `json:"totalResponses"`
	Responses      []ResponseEntry `json:"responses"`
}

type ResponseEntry struct {
	ID          string       `json:"id"`
	SubmittedAt time.Time    `json:"submittedAt"`
	Responses   []AnswerView `json:"responses"`
}

// AnswerView collapses a stored answer for display: Value holds the media
// URL when one was recorded, the raw value otherwise.
type AnswerView struct {
	FieldID string `json:"fieldId"`
	Label   string `json:"label"`
	Value   any    `json:"value"`
}
