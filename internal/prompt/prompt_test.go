package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251019-go-pkg-cfgtpl/internal/source"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAskModel_TypeAndSubmit(t *testing.T) {
	var m tea.Model = newAskModel(source.Question{Label: "Enter the auth domain"})

	m, _ = m.Update(runes("example.com"))
	assert.Contains(t, m.View(), "Enter the auth domain")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	final := m.(askModel)
	assert.True(t, final.done)
	assert.False(t, final.cancelled)
	assert.Equal(t, "example.com", final.input.Value())
	assert.Empty(t, final.View())
}

func TestAskModel_Cancel(t *testing.T) {
	var m tea.Model = newAskModel(source.Question{Label: "x"})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.(askModel).cancelled)
}

func TestAskModel_OptionalAndSecret(t *testing.T) {
	m := newAskModel(source.Question{Label: "Enter the key", Secret: true, Optional: true})

	assert.Contains(t, m.View(), "optional")

	var model tea.Model = m
	model, _ = model.Update(runes("s3cr3t"))
	assert.NotContains(t, model.View(), "s3cr3t")
	assert.Equal(t, "s3cr3t", model.(askModel).input.Value())
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		name      string
		keys      []tea.KeyMsg
		answer    bool
		done      bool
		cancelled bool
	}{
		{name: "yes", keys: []tea.KeyMsg{runes("y")}, answer: true, done: true},
		{name: "no", keys: []tea.KeyMsg{runes("N")}, done: true},
		{name: "other keys are ignored", keys: []tea.KeyMsg{runes("x"), runes("q")}},
		{name: "invalid then yes", keys: []tea.KeyMsg{runes("maybe"), runes("y")}, answer: true, done: true},
		{name: "ctrl+c cancels", keys: []tea.KeyMsg{{Type: tea.KeyCtrlC}}, cancelled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = confirmModel{text: "Would you like to add another service?"}
			for _, key := range tt.keys {
				m, _ = m.Update(key)
			}

			got := m.(confirmModel)
			assert.Equal(t, tt.answer, got.answer)
			assert.Equal(t, tt.done, got.done)
			assert.Equal(t, tt.cancelled, got.cancelled)
		})
	}
}

func TestConfirmModel_View(t *testing.T) {
	m := confirmModel{text: "Add another?"}
	assert.Contains(t, m.View(), "Add another?")
	assert.Contains(t, m.View(), "(y/n)")
}
