package importcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	importPagesMessageType = "notion2wp.import.pages"
	listPagesMessageType   = "notion2wp.import.list_pages"
)

// ImportPagesCommand imports the listed source pages as posts.
type ImportPagesCommand struct {
	// PageIDs selects the source pages; order is kept in the result.
	PageIDs []string `json:"page_ids"`
	// FailOnError makes the command fail when any page failed.
	FailOnError bool `json:"fail_on_error,omitempty"`
}

// Type implements command.Message.
func (ImportPagesCommand) Type() string { return importPagesMessageType }

// Validate requires at least one non-blank page id.
func (cmd ImportPagesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.PageIDs,
			validation.Required.Error("at least one page id is required"),
			validation.Each(validation.By(func(value any) error {
				id, _ := value.(string)
				if strings.TrimSpace(id) == "" {
					return validation.NewError("notion2wp.import.page_id_blank", "page id must not be blank")
				}
				return nil
			})),
		),
	)
}

// ListPagesCommand enumerates the pages a source can import.
type ListPagesCommand struct{}

// Type implements command.Message.
func (ListPagesCommand) Type() string { return listPagesMessageType }
