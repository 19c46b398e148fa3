package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/dwitter/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Field order in these structs is the order validation failures are reported.

type signupRequest struct {
	Username string `json:"username" validate:"required,min=5"`
	Password string `json:"password" validate:"required,min=5"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	URL      string `json:"url" validate:"omitempty,url"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required,min=5"`
	Password string `json:"password" validate:"required,min=5"`
}

type tweetRequest struct {
	Text string `json:"text" validate:"required,min=3"`
}

var fieldMessages = map[string]string{
	"Username": "username should be at least 5 characters",
	"Password": "password should be at least 5 characters",
	"Name":     "name is missing",
	"Email":    "invalid email",
	"URL":      "invalid URL",
	"Text":     "text should be at least 3 characters",
}

// requestError is a client mistake whose message is safe to return as is.
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }
func (e *requestError) Unwrap() error { return common.ErrorValidation }

// decodeAndValidate reads a JSON body into dst, trims the fields listed by
// trim and reports the first failing field.
func decodeAndValidate(r *http.Request, dst any, trim func()) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &requestError{msg: "invalid request body"}
	}
	if trim != nil {
		trim()
	}

	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate: %w", err)
	}
	first := verrs[0]
	if msg, ok := fieldMessages[first.StructField()]; ok {
		return &requestError{msg: msg}
	}
	return &requestError{msg: strings.ToLower(first.Field()) + " is invalid"}
}

func (s *signupRequest) trim() {
	s.Username = strings.TrimSpace(s.Username)
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.URL = strings.TrimSpace(s.URL)
}

func (l *loginRequest) trim() {
	l.Username = strings.TrimSpace(l.Username)
}

func (t *tweetRequest) trim() {
	t.Text = strings.TrimSpace(t.Text)
}

// writeRequestError answers a decodeAndValidate failure.
func writeRequestError(w http.ResponseWriter, err error) bool {
	var re *requestError
	if errors.As(err, &re) {
		writeMessage(w, http.StatusBadRequest, re.msg)
		return true
	}
	return false
}
