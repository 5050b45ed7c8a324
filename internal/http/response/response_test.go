package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"id": "abc"})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something failed")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something failed", resp.Error)
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Name  string  `validate:"required"`
		Cycle string  `validate:"oneof=weekly monthly quarterly yearly"`
		Cost  float64 `validate:"gte=0"`
	}

	v := validator.New()
	err := v.Struct(payload{Cycle: "daily", Cost: -1})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Name is a required field")
	assert.Contains(t, resp.Error, "field Cycle must be one of")
	assert.Contains(t, resp.Error, "field Cost must be greater than or equal to 0")
}
