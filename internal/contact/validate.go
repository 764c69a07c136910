package contact

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Message is a contact form submission
type Message struct {
	Name    string `json:"name" form:"name" validate:"min=2"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Subject string `json:"subject,omitempty" form:"subject" validate:"max=200"`
	Message string `json:"message" form:"message" validate:"min=10,max=5000"`
}

var validate = validator.New()

var fieldMessages = map[string]string{
	"Name":    "Please enter a valid name (minimum 2 characters).",
	"Email":   "Please enter a valid email address.",
	"Subject": "Please keep the subject under 200 characters.",
	"Message": "Please enter a message (minimum 10 characters).",
}

// Normalize trims surrounding whitespace from every field
func (m Message) Normalize() Message {
	return Message{
		Name:    strings.TrimSpace(m.Name),
		Email:   strings.TrimSpace(m.Email),
		Subject: strings.TrimSpace(m.Subject),
		Message: strings.TrimSpace(m.Message),
	}
}

// Validate checks fields in form order and reports the first failure
func Validate(m Message) error {
	err := validate.Struct(m.Normalize())
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}
	field := validationErrors[0].Field()
	msg := fieldMessages[field]
	if field == "Message" && validationErrors[0].Tag() == "max" {
		msg = "Please keep your message under 5000 characters."
	}
	return &ValidationError{Field: field, Message: msg}
}
