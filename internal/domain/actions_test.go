package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected ActionType
	}{
		{"MOVE", ActionMove},
		{"move", ActionMove},
		{"Blink", ActionBlink},
		{"SPARK", ActionSpark},
		{"WAIT", ActionWait},
		{"ATTACK", ActionUnknown},
		{"", ActionUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseAction(tt.input), "ParseAction(%q)", tt.input)
	}
}

func TestActionType_String(t *testing.T) {
	tests := []struct {
		action   ActionType
		expected string
	}{
		{ActionMove, "MOVE"},
		{ActionBump, "BUMP"},
		{ActionUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.action.String())
	}
}

func TestActionType_NeedsDirection(t *testing.T) {
	assert.True(t, ActionMove.NeedsDirection())
	assert.True(t, ActionSpark.NeedsDirection())
	assert.False(t, ActionBlink.NeedsDirection())
	assert.False(t, ActionWait.NeedsDirection())
}

func TestCancelAction_Error(t *testing.T) {
	var err error = CancelDestinationNotVisible
	assert.Equal(t, "action cancelled: destination not visible", err.Error())

	c, ok := AsCancel(err)
	assert.True(t, ok)
	assert.Equal(t, CancelDestinationNotVisible, c)

	_, ok = AsCancel(ErrRemovePlayer)
	assert.False(t, ok)
}
