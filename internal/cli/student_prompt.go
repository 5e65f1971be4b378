package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/incubator/internal/contract"
	"github.com/charmbracelet/huh"
)

var errStudentRequired = errors.New("--student is required when stdin is not a terminal")

// resolveStudentID returns the flag value, or asks for an id when running in
// a terminal.
func resolveStudentID(app *App, flag string) (string, error) {
	if id := strings.TrimSpace(flag); id != "" {
		return id, nil
	}
	if !app.interactive() {
		return "", errStudentRequired
	}

	var id string
	if err := studentIDForm(&id).Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(id), nil
}

func studentIDForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Student ID").
				Description("Your progress is kept under this id while the session lives.").
				Placeholder("e.g. s-1024").
				Value(value).
				Validate(func(s string) error {
					return contract.ValidateStudentID(strings.TrimSpace(s))
				}),
		),
	)
}
