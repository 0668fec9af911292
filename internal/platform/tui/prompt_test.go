package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLines(t *testing.T) {
	tests := []struct {
		in   string
		want int
		err  bool
	}{
		{"40", 40, false},
		{" 7 ", 7, false},
		{"1", 1, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"ten", 0, true},
		{"", 0, true},
		{"4.5", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseLines(tc.in)
		if tc.err {
			assert.ErrorIs(t, err, ErrInvalidLines, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func typeText(m PromptModel, s string) PromptModel {
	for _, r := range s {
		m, _ = m.Update(keyMsg(string(r)))
	}
	return m
}

func TestPromptRejectsInvalidInput(t *testing.T) {
	m := NewPromptModel(DefaultKeyMap(), 40)
	m = typeText(m, "abc")
	m, _ = m.Update(keyMsg("enter"))

	_, ok := m.Lines()
	assert.False(t, ok)
	assert.Contains(t, m.View(), ErrInvalidLines.Error())
	assert.Empty(t, m.input.Value(), "invalid input is cleared")

	m = typeText(m, "12")
	m, _ = m.Update(keyMsg("enter"))

	lines, ok := m.Lines()
	assert.True(t, ok)
	assert.Equal(t, 12, lines)
}

func TestPromptCancel(t *testing.T) {
	m := NewPromptModel(DefaultKeyMap(), 40)
	m, _ = m.Update(keyMsg("esc"))
	assert.True(t, m.IsQuitting())
}

func TestPromptView(t *testing.T) {
	m := NewPromptModel(DefaultKeyMap(), 40)
	out := m.View()

	assert.Contains(t, out, "Set lines! >")
	assert.Contains(t, out, "hard drop")
	assert.Contains(t, out, "space")
}

func TestPromptEmptyEnterUsesDefault(t *testing.T) {
	m := NewPromptModel(DefaultKeyMap(), 15)
	assert.Equal(t, "15", m.input.Placeholder)

	m, _ = m.Update(keyMsg("enter"))

	lines, ok := m.Lines()
	assert.True(t, ok)
	assert.Equal(t, 15, lines)
}

func TestPromptEmptyEnterWithoutDefault(t *testing.T) {
	m := NewPromptModel(DefaultKeyMap(), 0)
	assert.Empty(t, m.input.Placeholder)

	m, _ = m.Update(keyMsg("enter"))

	_, ok := m.Lines()
	assert.False(t, ok)
	assert.Contains(t, m.View(), ErrInvalidLines.Error())
}
