package iteminput

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hubctl/internal/prompt"
	pt "hubctl/internal/prompt/prompttest"
)

func tagsDef(opts ArrayOptions[string]) *ArrayDef[string] {
	return Array("Tags", String("Tag", StringOptions{}), opts)
}

func TestArray_BuildScenario(t *testing.T) {
	s, script, _ := newSession(
		pt.Choose("Add Tag."), pt.Type("a"),
		pt.Choose("Finish editing Tags."),
	)

	res, err := tagsDef(ArrayOptions[string]{}).BuildFromUserInput(s)
	require.NoError(t, err)
	require.False(t, res.Canceled)
	assert.Equal(t, []string{"a"}, res.Value)

	menus := script.Menus()
	require.Len(t, menus, 2)
	assert.Equal(t, []string{"Add Tag.", "Cancel"}, menus[0])
	assert.Equal(t, []string{"Edit a.", "Add Tag.", "Finish editing Tags.", "Cancel"}, menus[1])
	assert.Equal(t, 0, script.Remaining())
}

func TestArray_DefaultHighlight(t *testing.T) {
	s, script, _ := newSession(pt.Default(), pt.Type("a"), pt.Default())

	res, err := tagsDef(ArrayOptions[string]{}).BuildFromUserInput(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, res.Value)
	assert.Equal(t, "Add Tag.", script.Asked[0].Default)
	assert.Equal(t, "Finish editing Tags.", script.Asked[2].Default)
}

func TestArray_DuplicateSuppression(t *testing.T) {
	tests := []struct {
		name            string
		allowDuplicates bool
		expected        []string
	}{
		{name: "duplicates discarded", allowDuplicates: false, expected: []string{"a"}},
		{name: "duplicates allowed", allowDuplicates: true, expected: []string{"a", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, out := newSession(
				pt.Choose("Add Tag."), pt.Type("a"),
				pt.Choose("Add Tag."), pt.Type("a"),
				pt.Choose("Finish editing Tags."),
			)

			res, err := tagsDef(ArrayOptions[string]{AllowDuplicates: tt.allowDuplicates}).BuildFromUserInput(s)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res.Value)
			if tt.allowDuplicates {
				assert.NotContains(t, out.String(), "Duplicate values are not allowed.")
			} else {
				assert.Contains(t, out.String(), "Duplicate values are not allowed.")
			}
		})
	}
}

func TestArray_MinimumEnforcement(t *testing.T) {
	t.Run("no delete at minimum", func(t *testing.T) {
		s, script, _ := newSession(
			pt.Choose("Edit a."), pt.Choose("Cancel"),
			pt.Choose("Finish editing Tags."),
		)
		res, err := tagsDef(ArrayOptions[string]{}).UpdateFromUserInput([]string{"a"}, s)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, res.Value)
		assert.Equal(t, []string{"Edit a.", "Cancel"}, script.Menus()[1])
		assert.Equal(t, "What do you want to do with a?", script.Asked[1].Message)
	})

	t.Run("delete above minimum", func(t *testing.T) {
		s, script, _ := newSession(
			pt.Choose("Edit b."), pt.Choose("Delete b."),
			pt.Choose("Finish editing Tags."),
		)
		res, err := tagsDef(ArrayOptions[string]{}).UpdateFromUserInput([]string{"a", "b"}, s)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, res.Value)
		assert.Equal(t, []string{"Edit b.", "Delete b.", "Cancel"}, script.Menus()[1])
	})

	t.Run("no finish below minimum", func(t *testing.T) {
		s, script, _ := newSession(pt.Choose("Cancel"))
		res, err := tagsDef(ArrayOptions[string]{MinItems: Items(2)}).UpdateFromUserInput([]string{"a"}, s)
		require.NoError(t, err)
		assert.True(t, res.Canceled)
		assert.NotContains(t, script.Menus()[0], "Finish editing Tags.")
	})

	t.Run("zero minimum finishes empty", func(t *testing.T) {
		s, _, _ := newSession(pt.Choose("Finish editing Tags."))
		res, err := tagsDef(ArrayOptions[string]{MinItems: Items(0)}).BuildFromUserInput(s)
		require.NoError(t, err)
		assert.Empty(t, res.Value)
	})
}

func TestArray_MaxItemsHidesAdd(t *testing.T) {
	s, script, _ := newSession(pt.Choose("Finish editing Tags."))
	res, err := tagsDef(ArrayOptions[string]{MaxItems: 1}).UpdateFromUserInput([]string{"a"}, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, res.Value)
	assert.NotContains(t, script.Menus()[0], "Add Tag.")
}

func TestArray_CancelledItemEditKeepsItem(t *testing.T) {
	def := Array("Colors", colorDef(), ArrayOptions[string]{})
	s, _, _ := newSession(
		pt.Choose("Edit red."), pt.Choose("Edit red."), pt.Choose("Cancel"),
		pt.Choose("Finish editing Colors."),
	)

	original := []string{"red"}
	res, err := def.UpdateFromUserInput(original, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"red"}, res.Value)
}

func TestArray_CancelledAddLeavesList(t *testing.T) {
	def := Array("Colors", colorDef(), ArrayOptions[string]{})
	s, _, _ := newSession(
		pt.Choose("Add Color."), pt.Choose("Cancel"),
		pt.Choose("Finish editing Colors."),
	)

	res, err := def.UpdateFromUserInput([]string{"red"}, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"red"}, res.Value)
}

func TestArray_EditDuplicateRules(t *testing.T) {
	def := Array("Colors", colorDef(), ArrayOptions[string]{})

	t.Run("duplicate of another item is rejected", func(t *testing.T) {
		s, _, out := newSession(
			pt.Choose("Edit green."), pt.Choose("Edit green."), pt.Choose("red"),
			pt.Choose("Finish editing Colors."),
		)
		res, err := def.UpdateFromUserInput([]string{"red", "green"}, s)
		require.NoError(t, err)
		assert.Equal(t, []string{"red", "green"}, res.Value)
		assert.Contains(t, out.String(), "Duplicate values are not allowed.")
	})

	t.Run("re-entering the same value is allowed", func(t *testing.T) {
		s, _, out := newSession(
			pt.Choose("Edit green."), pt.Choose("Edit green."), pt.Choose("green"),
			pt.Choose("Finish editing Colors."),
		)
		res, err := def.UpdateFromUserInput([]string{"red", "green"}, s)
		require.NoError(t, err)
		assert.Equal(t, []string{"red", "green"}, res.Value)
		assert.NotContains(t, out.String(), "Duplicate")
	})
}

func TestArray_UpdateDoesNotModifyOriginal(t *testing.T) {
	s, _, _ := newSession(
		pt.Choose("Edit a."), pt.Choose("Edit a."), pt.Type("z"),
		pt.Choose("Finish editing Tags."),
	)
	original := []string{"a"}
	res, err := tagsDef(ArrayOptions[string]{}).UpdateFromUserInput(original, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, res.Value)
	assert.Equal(t, []string{"a"}, original)
}

func TestArray_UneditableItemIsContractError(t *testing.T) {
	def := Array("Fixed", Static("x"), ArrayOptions[string]{})
	s, _, _ := newSession()

	_, err := def.UpdateFromUserInput([]string{"x"}, s)
	require.Error(t, err)
	assert.True(t, IsContractError(err))
}

func TestArray_UneditableItemFailsBeforeFirstMenu(t *testing.T) {
	def := Array("Fixed", Static("x"), ArrayOptions[string]{})
	s, script, _ := newSession()

	_, err := def.BuildFromUserInput(s)
	require.Error(t, err)
	assert.True(t, IsContractError(err))
	assert.Empty(t, script.Asked)
}

type labeled struct {
	Label string
	note  string
}

type labeledDef struct{}

func (labeledDef) Name() string { return "Label" }

func (labeledDef) BuildFromUserInput(s Session) (Result[labeled], error) {
	label, err := s.Prompter.Input(prompt.InputQuestion{Message: "Label"})
	if err != nil {
		return Result[labeled]{}, err
	}
	return Done(labeled{Label: label, note: "typed"}), nil
}

func (d labeledDef) UpdateFromUserInput(_ labeled, s Session) (Result[labeled], error) {
	return d.BuildFromUserInput(s)
}

func (labeledDef) SummarizeForEdit(v labeled, _ Ancestors) (string, bool) { return v.Label, true }

func TestArray_DuplicatesWithUnexportedFields(t *testing.T) {
	def := Array[labeled]("Labels", labeledDef{}, ArrayOptions[labeled]{})
	s, script, out := newSession(
		pt.Choose("Add Label."), pt.Type("a"),
		pt.Choose("Add Label."), pt.Type("a"),
		pt.Choose("Add Label."), pt.Type("b"),
		pt.Choose("Finish editing Labels."),
	)

	res, err := def.BuildFromUserInput(s)
	require.NoError(t, err)
	assert.Equal(t, []labeled{{Label: "a", note: "typed"}, {Label: "b", note: "typed"}}, res.Value)
	assert.Contains(t, out.String(), "Duplicate values are not allowed.")
	assert.Equal(t, 0, script.Remaining())
}

func TestArray_AncestorsIncludeListSoFar(t *testing.T) {
	item := String("Tag", StringOptions{
		DefaultFunc: func(a Ancestors) string {
			list, _ := ParentAs[[]string](a)
			return fmt.Sprintf("tag-%d", len(list)+1)
		},
	})
	def := Array("Tags", item, ArrayOptions[string]{})
	s, _, _ := newSession(
		pt.Choose("Add Tag."), pt.Type(""),
		pt.Choose("Add Tag."), pt.Type(""),
		pt.Choose("Finish editing Tags."),
	)

	res, err := def.BuildFromUserInput(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"tag-1", "tag-2"}, res.Value)
}

func TestArray_HelpEntry(t *testing.T) {
	s, script, out := newSession(pt.Choose("Help"), pt.Choose("Cancel"))
	res, err := tagsDef(ArrayOptions[string]{HelpText: "Tags label things."}).BuildFromUserInput(s)
	require.NoError(t, err)
	assert.True(t, res.Canceled)
	assert.Contains(t, out.String(), "Tags label things.")
	assert.Equal(t, []string{"Help", "Add Tag.", "Cancel"}, script.Menus()[0])
}

func TestArray_SummarizeForEdit(t *testing.T) {
	def := tagsDef(ArrayOptions[string]{})

	summary, ok := def.SummarizeForEdit([]string{"a", "b"}, nil)
	assert.True(t, ok)
	assert.Equal(t, "a, b", summary)

	long := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		long = append(long, fmt.Sprintf("item%d", i))
	}
	summary, _ = def.SummarizeForEdit(long, nil)
	assert.Len(t, []rune(summary), MaxItemValueLength)
	assert.True(t, len(summary) > 3 && summary[len(summary)-3:] == "...")
}
