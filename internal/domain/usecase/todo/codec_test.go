package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todo/internal/domain/entity"
)

func TestEncode(t *testing.T) {
	value, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", value)

	value, err = Encode([]entity.Todo{
		{ID: "b", Title: "Walk dog", CreatedAt: 2, UpdatedAt: 2},
		{ID: "a", Title: "Buy milk", Description: "2 litres", Completed: true, CreatedAt: 1, UpdatedAt: 3},
	})
	require.NoError(t, err)
	assert.Equal(t,
		`[{"id":"b","title":"Walk dog","completed":false,"createdAt":2,"updatedAt":2},`+
			`{"id":"a","title":"Buy milk","description":"2 litres","completed":true,"createdAt":1,"updatedAt":3}]`,
		value)
}

func TestDecode(t *testing.T) {
	todos, err := Decode(`[{"id":"a","title":"Buy milk","completed":true,"createdAt":1,"updatedAt":3}]`)
	require.NoError(t, err)
	assert.Equal(t, []entity.Todo{{ID: "a", Title: "Buy milk", Completed: true, CreatedAt: 1, UpdatedAt: 3}}, todos)

	todos, err = Decode("null")
	require.NoError(t, err)
	assert.Empty(t, todos)
	assert.NotNil(t, todos)

	invalid := map[string]string{
		"malformed":              `[{"id":`,
		"not an array":           `{"id":"a"}`,
		"empty id":               `[{"id":"","title":"t"}]`,
		"duplicate id":           `[{"id":"a","title":"t"},{"id":"a","title":"u"}]`,
		"blank title":            `[{"id":"a","title":"  "}]`,
		"updated before created": `[{"id":"a","title":"x","createdAt":100,"updatedAt":5}]`,
	}
	for name, value := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(value)
			assert.Error(t, err)
		})
	}
}
