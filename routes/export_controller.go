package routes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"github.com/arjunr/formbuilder/app"
	"github.com/arjunr/formbuilder/httpx"
	"github.com/arjunr/formbuilder/model"
)

// ExportFormResponses renders a form's responses as an xlsx download:
// one row per submission, one column per field, in definition order.
func ExportFormResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		form, err := app.GetByID(r.Context(), formId)
		if err != nil {
			respondFormsError(w, "export_responses.get_form", formId, err)
			return
		}
		view, err := app.Aggregate(r.Context(), formId)
		if err != nil {
			respondFormsError(w, "export_responses", formId, err)
			return
		}

		f := excelize.NewFile()
		defer f.Close()
		const sheet = "Sheet1"

		if err := writeHeaderRow(f, sheet, form); err != nil {
			httpx.LogInternalError(w, "export_responses.header", err)
			return
		}
		for i, entry := range view.Responses {
			if err := writeResponseRow(f, sheet, form, entry, i+2); err != nil {
				httpx.LogInternalError(w, "export_responses.row", err)
				return
			}
		}

		filename := strings.ReplaceAll(form.Title, `"`, "") + ".xlsx"
		w.Header().Set("content-type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("content-disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		if err := f.Write(w); err != nil {
			httpx.LogInternalError(w, "export_responses.write", err)
		}
	}
}

func writeHeaderRow(f *excelize.File, sheet string, form model.Form) error {
	if err := setCell(f, sheet, 1, 1, "Submitted At"); err != nil {
		return err
	}
	for i, field := range form.Fields {
		if err := setCell(f, sheet, i+2, 1, field.Label); err != nil {
			return err
		}
	}
	return nil
}

func writeResponseRow(f *excelize.File, sheet string, form model.Form, entry model.ResponseEntry, row int) error {
	if err := setCell(f, sheet, 1, row, entry.SubmittedAt); err != nil {
		return err
	}

	byFieldId := make(map[string]any, len(entry.Responses))
	for _, a := range entry.Responses {
		byFieldId[a.FieldID] = a.Value
	}
	for i, field := range form.Fields {
		if err := setCell(f, sheet, i+2, row, cellValue(byFieldId[field.ID])); err != nil {
			return err
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

// cellValue flattens a stored answer into a single cell: checkbox answers
// become a comma-separated list.
func cellValue(value any) any {
	list, ok := value.([]any)
	if !ok {
		return value
	}

	parts := make([]string, len(list))
	for i, v := range list {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
