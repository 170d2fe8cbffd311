package render

import (
	"context"
	"fmt"
)

// uiText holds every fixed, human-readable string of the page.
type uiText struct {
	HeaderTitle       string
	ListSubtitle      string
	SearchPlaceholder string
	AddNew            string
	EditTooltip       string
	DeleteTooltip     string
	EditTitle         string
	EditDescription   string
	CreateTitle       string
	CreateDescription string
	Cancel            string
	Save              string
	Create            string
	DeleteTitle       string
	DeleteConfirm     string
	No                string
	Yes               string
	Created           string
	Updated           string
	Deleted           string
}

// uiText builds the fixed strings for model and translates them one by one.
func (r *Renderer) uiText(ctx context.Context, model, pluralTitle string) (uiText, error) {
	t := uiText{
		HeaderTitle:       pluralTitle,
		ListSubtitle:      fmt.Sprintf("%s List", model),
		SearchPlaceholder: "Search...",
		AddNew:            fmt.Sprintf("Add New %s", model),
		EditTooltip:       "Edit",
		DeleteTooltip:     "Delete",
		EditTitle:         fmt.Sprintf("Edit %s", model),
		EditDescription:   fmt.Sprintf("Edit the details of the %s.", model),
		CreateTitle:       fmt.Sprintf("Create New %s", model),
		CreateDescription: fmt.Sprintf("Enter the details for the new %s.", model),
		Cancel:            "Cancel",
		Save:              "Save",
		Create:            "Create",
		DeleteTitle:       "Delete",
		DeleteConfirm:     "Are you sure you want to delete this record?",
		No:                "No",
		Yes:               "Yes",
		Created:           "Record created successfully.",
		Updated:           "Record updated successfully.",
		Deleted:           "Record deleted successfully.",
	}

	for _, s := range []*string{
		&t.HeaderTitle, &t.ListSubtitle, &t.SearchPlaceholder, &t.AddNew,
		&t.EditTooltip, &t.DeleteTooltip, &t.EditTitle, &t.EditDescription,
		&t.CreateTitle, &t.CreateDescription, &t.Cancel, &t.Save, &t.Create,
		&t.DeleteTitle, &t.DeleteConfirm, &t.No, &t.Yes,
		&t.Created, &t.Updated, &t.Deleted,
	} {
		out, err := r.translate(ctx, *s)
		if err != nil {
			return uiText{}, err
		}
		*s = out
	}
	return t, nil
}
