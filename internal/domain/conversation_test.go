package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForColumnName(t *testing.T) {
	tests := []struct {
		name     string
		column   string
		expected ConversationStatus
	}{
		{"english in progress", "In Progress", StatusInProgress},
		{"portuguese in progress", "Em andamento", StatusInProgress},
		{"english waiting", "Waiting on customer", StatusWaiting},
		{"portuguese waiting", "Aguardando resposta", StatusWaiting},
		{"english resolved", "Resolved", StatusResolved},
		{"portuguese resolved", "Resolvida", StatusResolved},
		{"uppercase match", "RESOLVED TICKETS", StatusResolved},
		{"substring inside word", "progressing", StatusInProgress},
		{"no keyword defaults to open", "Backlog", StatusOpen},
		{"empty name defaults to open", "", StatusOpen},
		{"first match wins", "progress aguardando", StatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusForColumnName(tt.column))
		})
	}
}

func TestConversationStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusOpen.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.False(t, StatusWaiting.IsTerminal())
	assert.True(t, StatusResolved.IsTerminal())
	assert.True(t, StatusClosed.IsTerminal())
}
