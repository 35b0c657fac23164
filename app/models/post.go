package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name so errors line up with the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes one rejected input value.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationErrors is returned when a payload fails validation.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(fe.Loc, "."), fe.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks the create payload.
func (r *CreatePostRequest) Validate() error {
	return validateBody(r)
}

// Validate checks the update payload.
func (r *UpdatePostRequest) Validate() error {
	return validateBody(r)
}

// NewPost builds an unsaved post from a create payload.
func (r *CreatePostRequest) NewPost() *Post {
	return &Post{
		Title:   r.Title,
		Content: r.Content,
		Author:  r.Author,
	}
}

func validateBody(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldError("body", fe))
	}
	return out
}

func fieldError(section string, fe validator.FieldError) FieldError {
	switch fe.Tag() {
	case "required":
		return FieldError{
			Loc:  []string{section, fe.Field()},
			Msg:  "Field required",
			Type: "missing",
		}
	default:
		return FieldError{
			Loc:  []string{section, fe.Field()},
			Msg:  fmt.Sprintf("Failed on the %q rule", fe.Tag()),
			Type: fe.Tag(),
		}
	}
}
