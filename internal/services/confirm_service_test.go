package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmcshell/internal/context"
)

func TestConfirmPrompt(t *testing.T) {
	setupServices(t)
	confirm, err := GetGlobalConfirmService()
	require.NoError(t, err)

	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		{"yes", "y\n", true},
		{"yes word", "yes\n", true},
		{"no", "n\n", false},
		{"anything else", "maybe\n", false},
		{"closed input", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			confirm.SetStreams(strings.NewReader(tt.answer), &out)
			got := confirm.Confirm("Delete /tmp/x")
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Delete /tmp/x")
		})
	}
}

func TestConfirmBatchAutoProceeds(t *testing.T) {
	setupServices(t)
	confirm, err := GetGlobalConfirmService()
	require.NoError(t, err)

	context.GetGlobalContext().Flags().SetBatch(true)

	var out bytes.Buffer
	// No input scripted: the gate must not read at all.
	confirm.SetStreams(strings.NewReader(""), &out)
	assert.True(t, confirm.Confirm("Delete /tmp/x"))
	assert.Contains(t, out.String(), "(auto)")
}

func TestConfirmDryRunSkipsPrompt(t *testing.T) {
	setupServices(t)
	confirm, err := GetGlobalConfirmService()
	require.NoError(t, err)

	context.GetGlobalContext().Flags().SetDryRun(true)

	var out bytes.Buffer
	confirm.SetStreams(strings.NewReader(""), &out)
	assert.True(t, confirm.Confirm("Delete /tmp/x"))
	assert.Empty(t, out.String(), "simulate-only previews never block on a prompt")
}

func TestConfirmForcedBypass(t *testing.T) {
	setupServices(t)
	confirm, err := GetGlobalConfirmService()
	require.NoError(t, err)

	assert.False(t, confirm.BypassActive())

	confirm.PushForce()
	assert.True(t, confirm.BypassActive())

	var out bytes.Buffer
	confirm.SetStreams(strings.NewReader(""), &out)
	assert.True(t, confirm.Confirm("Delete /tmp/x"))

	confirm.PopForce()
	assert.False(t, confirm.BypassActive())

	// PopForce below zero must not wedge the gate open.
	confirm.PopForce()
	assert.False(t, confirm.BypassActive())
}
