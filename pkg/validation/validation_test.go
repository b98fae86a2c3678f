package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type componentSpec struct {
	Name string `json:"name" validate:"required,component_name"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("ValidNames", func(t *testing.T) {
		for _, name := range []string{"a", "halver", "node-1", "stage.two", "Queue_3"} {
			assert.NoError(t, ValidateStruct(componentSpec{Name: name}), name)
		}
	})

	t.Run("InvalidNames", func(t *testing.T) {
		for _, name := range []string{"9lives", "-dash", "has space", "ümlaut"} {
			assert.Error(t, ValidateStruct(componentSpec{Name: name}), name)
		}
	})

	t.Run("RequiredField", func(t *testing.T) {
		err := ValidateStruct(componentSpec{})
		require.Error(t, err)

		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		require.Len(t, verrs, 1)
		assert.Equal(t, "name", verrs[0].Field, "field names come from json tags")
		assert.Contains(t, verrs[0].Message, "required")
	})

	t.Run("ErrorMessageIsReadable", func(t *testing.T) {
		err := ValidateStruct(componentSpec{Name: "-bad"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must start with a letter")
	})
}
