package iteminput

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hubctl/internal/formatting"
	pt "hubctl/internal/prompt/prompttest"
)

type channel struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func channelDef(validate func(channel, Ancestors) error) *ObjectDef[channel] {
	return Object("Channel", []Property[channel]{
		Field("name", String("Channel name", StringOptions{}),
			func(c channel) string { return c.Name }, func(c *channel, v string) { c.Name = v }),
		Field("description", OptionalString("Channel description", StringOptions{}),
			func(c channel) string { return c.Description }, func(c *channel, v string) { c.Description = v }),
	}, ObjectOptions[channel]{ValidateFinal: validate})
}

func TestCreateFromUserInput_Finish(t *testing.T) {
	s, script, _ := newSession(pt.Type("main"), pt.Type(""), pt.Default())

	got, err := CreateFromUserInput(s, Definition[channel](channelDef(nil)), ReviewOptions{})
	require.NoError(t, err)
	assert.Equal(t, channel{Name: "main"}, got)

	assert.Equal(t, []string{
		"Edit Channel.",
		"Preview JSON.",
		"Preview YAML.",
		"Finish and create Channel.",
		"Cancel creation of Channel.",
	}, script.Menus()[0])
	assert.Equal(t, "Finish and create Channel.", script.Last().Default)
	assert.Equal(t, "Choose an action.", script.Last().Message)
}

func TestCreateFromUserInput_CanceledBuildSkipsReview(t *testing.T) {
	def := Object("Pick", []Property[string]{
		Field("color", colorDef(), func(s string) string { return s }, func(s *string, v string) { *s = v }),
	}, ObjectOptions[string]{})

	canceled := false
	s, script, _ := newSession(pt.Choose("Cancel"))
	_, err := CreateFromUserInput(s, Definition[string](def), ReviewOptions{OnCancel: func() { canceled = true }})

	assert.ErrorIs(t, err, ErrCanceled)
	assert.True(t, canceled)
	assert.Len(t, script.Asked, 1)
}

func TestUpdateFromUserInput_MenuVariants(t *testing.T) {
	tests := []struct {
		name     string
		opts     ReviewOptions
		expected []string
	}{
		{
			name:     "update",
			opts:     ReviewOptions{},
			expected: []string{"Edit Channel.", "Preview JSON.", "Preview YAML.", "Finish and update Channel.", "Cancel update of Channel."},
		},
		{
			name:     "dry run outputs",
			opts:     ReviewOptions{DryRun: true, FinishVerb: "create"},
			expected: []string{"Edit Channel.", "Preview JSON.", "Preview YAML.", "Finish and output Channel.", "Cancel creation of Channel."},
		},
		{
			name:     "help entry",
			opts:     ReviewOptions{HelpText: "Channels group drivers."},
			expected: []string{"Edit Channel.", "Preview JSON.", "Preview YAML.", "Finish and update Channel.", "Cancel update of Channel.", "Help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, script, _ := newSession(pt.Default())
			_, err := UpdateFromUserInput(s, Definition[channel](channelDef(nil)), channel{Name: "main"}, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, script.Menus()[0])
		})
	}
}

func TestUpdateFromUserInput_Cancel(t *testing.T) {
	canceled := 0
	s, _, _ := newSession(pt.Choose("Cancel update of Channel."))

	_, err := UpdateFromUserInput(s, Definition[channel](channelDef(nil)), channel{Name: "main"}, ReviewOptions{OnCancel: func() { canceled++ }})
	assert.ErrorIs(t, err, ErrCanceled)
	assert.Equal(t, 1, canceled)
}

func TestUpdateFromUserInput_CanceledEditKeepsValue(t *testing.T) {
	s, _, _ := newSession(
		pt.Choose("Edit Channel."), pt.Choose("Edit Channel name: main"), pt.Type("other"), pt.Choose("Cancel"),
		pt.Choose("Finish and update Channel."),
	)

	got, err := UpdateFromUserInput(s, Definition[channel](channelDef(nil)), channel{Name: "main"}, ReviewOptions{})
	require.NoError(t, err)
	assert.Equal(t, channel{Name: "main"}, got)
}

func TestUpdateFromUserInput_FinishGating(t *testing.T) {
	validate := func(c channel, _ Ancestors) error {
		if c.Description == "" {
			return errors.New("a description is required before finishing")
		}
		return nil
	}

	s, script, out := newSession(
		pt.Choose("Finish and update Channel."),
		// forced edit
		pt.Choose("Edit Channel description: (none)"), pt.Type("primary"), pt.Choose("Finish editing Channel."),
		pt.Choose("Finish and update Channel."),
	)

	got, err := UpdateFromUserInput(s, Definition[channel](channelDef(validate)), channel{Name: "main"}, ReviewOptions{})
	require.NoError(t, err)
	assert.Equal(t, channel{Name: "main", Description: "primary"}, got)
	assert.Contains(t, out.String(), "a description is required before finishing")
	assert.Equal(t, 0, script.Remaining())
}

func TestUpdateFromUserInput_Preview(t *testing.T) {
	tests := []struct {
		name          string
		choice        string
		flagIndent    *int
		profileIndent *int
		format        formatting.OutputFormat
		indent        int
	}{
		{name: "json default", choice: "Preview JSON.", format: formatting.FormatJSON, indent: 4},
		{name: "yaml default", choice: "Preview YAML.", format: formatting.FormatYAML, indent: 2},
		{name: "profile indent", choice: "Preview YAML.", profileIndent: intPtr(6), format: formatting.FormatYAML, indent: 6},
		{name: "flag beats profile", choice: "Preview JSON.", flagIndent: intPtr(3), profileIndent: intPtr(6), format: formatting.FormatJSON, indent: 3},
		{name: "zero flag is compact", choice: "Preview JSON.", flagIndent: intPtr(0), profileIndent: intPtr(6), format: formatting.FormatJSON, indent: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotFormat formatting.OutputFormat
			var gotIndent int
			render := func(value any, format formatting.OutputFormat, indent int) (string, error) {
				gotFormat, gotIndent = format, indent
				return "rendered", nil
			}

			s, script, out := newSession(pt.Choose(tt.choice), pt.Default(), pt.Default())
			_, err := UpdateFromUserInput(s, Definition[channel](channelDef(nil)), channel{Name: "main"}, ReviewOptions{
				Indent:        tt.flagIndent,
				ProfileIndent: tt.profileIndent,
				Render:        render,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.format, gotFormat)
			assert.Equal(t, tt.indent, gotIndent)
			assert.Contains(t, out.String(), "rendered")
			assert.Equal(t, "Would you like to edit further?", script.Asked[1].Message)
			assert.Equal(t, "false", script.Asked[1].Default)
		})
	}
}

func TestUpdateFromUserInput_PreviewThenEdit(t *testing.T) {
	s, _, out := newSession(
		pt.Choose("Preview JSON."), pt.Yes(),
		pt.Choose("Edit Channel name: main"), pt.Type("renamed"), pt.Choose("Finish editing Channel."),
		pt.Choose("Finish and update Channel."),
	)

	got, err := UpdateFromUserInput(s, Definition[channel](channelDef(nil)), channel{Name: "main"}, ReviewOptions{})
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.Contains(t, out.String(), `"name": "main"`)
}
