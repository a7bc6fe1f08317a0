package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidate(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"short lesson", shortLesson, false},
		{"demo lesson", demoLessons[0], false},
		{"missing translation", `{"words":["a"],"sentences":[{"english":"A."}]}`, true},
		{"extra sentence field", `{"words":["a"],"sentences":[{"english":"A.","arabic":"أ.","french":"A."}]}`, true},
		{"words not strings", `{"words":[1,2],"sentences":[]}`, true},
		{"missing sentences", `{"words":["a"]}`, true},
		{"malformed", `{"words":`, true},
		{"empty", ``, true},
	}

	schema := lessonSchema()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := schema.validate(raw(tc.content))
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, tc.content, string(inv.Content))
		})
	}
}

func TestSchemaCompile(t *testing.T) {
	assert.NoError(t, lessonSchema().Compile())

	broken := &Schema{
		Name:       "broken",
		Definition: map[string]any{"type": "no-such-type"},
	}
	assert.Error(t, broken.Compile())

	// compile errors surface as invalid responses
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, broken.validate(raw(`{}`)), &inv)
}
