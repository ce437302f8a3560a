package iteminput

import (
	"fmt"

	"hubctl/internal/prompt"
)

// Action identifies what a menu entry does.
type Action int

const (
	ActionAdd Action = iota + 1
	ActionEdit
	ActionDelete
	ActionCancel
	ActionFinish
	ActionHelp
	ActionPreviewJSON
	ActionPreviewYAML
)

// String makes Action satisfy the fmt.Stringer interface.
func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	case ActionCancel:
		return "cancel"
	case ActionFinish:
		return "finish"
	case ActionHelp:
		return "help"
	case ActionPreviewJSON:
		return "previewJSON"
	case ActionPreviewYAML:
		return "previewYAML"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// menuEntry is what a menu choice resolves to. Entries for list items carry
// the item index, entries for object properties carry the property path.
type menuEntry struct {
	action Action
	index  int
	path   string
}

type menu struct {
	choices []prompt.Choice
	entries []menuEntry
}

func (m *menu) add(name string, entry menuEntry) {
	m.choices = append(m.choices, prompt.Choice{Name: name})
	m.entries = append(m.entries, entry)
}

func (m *menu) addAction(name string, action Action) {
	m.add(name, menuEntry{action: action})
}

func (m *menu) separator() {
	m.choices = append(m.choices, prompt.Separator())
	m.entries = append(m.entries, menuEntry{})
}

func (m *menu) addHelp(helpText string) {
	if helpText != "" {
		m.addAction("Help", ActionHelp)
	}
}

func (m *menu) addCancel() {
	m.addAction("Cancel", ActionCancel)
}

// ask shows the menu with the first entry for def highlighted.
func (m *menu) ask(p prompt.Prompter, message string, def Action) (menuEntry, error) {
	defIdx := prompt.FirstSelectable(m.choices)
	for i, e := range m.entries {
		if !m.choices[i].Separator && e.action == def {
			defIdx = i
			break
		}
	}
	return m.askAt(p, message, defIdx)
}

// askAt shows the menu with the entry at defIdx highlighted.
func (m *menu) askAt(p prompt.Prompter, message string, defIdx int) (menuEntry, error) {
	idx, err := p.Select(prompt.SelectQuestion{
		Message:  message,
		Choices:  m.choices,
		Default:  defIdx,
		PageSize: PageSize,
	})
	if err != nil {
		return menuEntry{}, err
	}
	if idx < 0 || idx >= len(m.entries) || m.choices[idx].Separator {
		return menuEntry{}, fmt.Errorf("menu %q: invalid selection %d", message, idx)
	}
	return m.entries[idx], nil
}

func editOption(name string) string   { return fmt.Sprintf("Edit %s.", name) }
func addOption(name string) string    { return fmt.Sprintf("Add %s.", name) }
func deleteOption(name string) string { return fmt.Sprintf("Delete %s.", name) }
func finishOption(name string) string { return fmt.Sprintf("Finish editing %s.", name) }
