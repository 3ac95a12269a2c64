package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a non-2xx answer from the bracket backend.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: API error: %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: API error: %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// UserMessage is the text shown to the operator for a failed request.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

var (
	bracketWords = []string{"bagan", "bracket"}
	existsWords  = []string{"sudah dibuat", "sudah ada", "already exist"}
)

// IsAlreadyExists matches the backend's "bracket already generated" rejection
// ("Bagan sudah dibuat", "Bracket already exists"). The message must name the
// bracket, other "sudah" rejections such as started matches do not count.
func IsAlreadyExists(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Status != http.StatusBadRequest && apiErr.Status != http.StatusConflict {
		return false
	}
	msg := strings.ToLower(apiErr.Message)
	return containsAny(msg, bracketWords) && containsAny(msg, existsWords)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
