package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"campusview/internal/filter"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// colleges a new club can be filed under
	Validate.RegisterValidation("college", inCatalog(filter.ClubColleges))
	// colleges offered as filters on the clubs screen
	Validate.RegisterValidation("collegefilter", inCatalog(filter.Colleges))
	Validate.RegisterValidation("dininghall", inCatalog(filter.DiningHalls))
}

func inCatalog(catalog []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(catalog, fl.Field().String())
	}
}

// validationMessage turns validator errors into one line per field.
func validationMessage(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "college", "collegefilter", "dininghall":
			msgs = append(msgs, fmt.Sprintf("%s: unknown option %q", fe.Field(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
