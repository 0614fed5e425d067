package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Class string `json:"className,omitempty" validate:"required"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	v := New()

	fields := v.Struct(sample{})
	assert.Equal(t, "name is a required field", fields["name"])
	assert.Equal(t, "className is a required field", fields["className"])

	assert.Nil(t, v.Struct(sample{Name: "A", Class: "5"}))
}

func TestTranslatePlainError(t *testing.T) {
	fields := New().Translate(errors.New("bad input"))
	assert.Equal(t, map[string]string{"detail": "bad input"}, fields)
}
