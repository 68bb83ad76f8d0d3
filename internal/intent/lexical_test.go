package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntents(t *testing.T) {
	c := NewLexical()

	tests := []struct {
		text string
		want Intent
	}{
		{"oi, tudo bem?", IntentGreeting},
		{"bom dia", IntentGreeting},
		{"quero agendar um corte", IntentBookService},
		{"gostaria de marcar um horário amanhã", IntentBookService},
		{"quais horários estão disponíveis?", IntentCheckAvailability},
		{"quanto custa a progressiva?", IntentPriceQuery},
		{"preciso cancelar meu agendamento", IntentCancelBooking},
		{"quero remarcar para sexta", IntentReschedule},
		{"tchau, obrigada!", IntentGoodbye},
		{"xyzzy", IntentUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := c.Classify(tt.text)
			assert.Equal(t, tt.want, got.Intent)
		})
	}
}

func TestClassifyUnknownHasZeroConfidence(t *testing.T) {
	c := NewLexical()
	got := c.Classify("qwerty asdf")
	assert.Equal(t, IntentUnknown, got.Intent)
	assert.Zero(t, got.Confidence)
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewLexical()
	a := c.Classify("quero agendar um corte amanhã às 14h")
	b := c.Classify("quero agendar um corte amanhã às 14h")
	assert.Equal(t, a, b)
}

func TestClassifyTieBreaksByDeclarationOrder(t *testing.T) {
	c := NewLexical()
	// "cancelar" and "remarcar" each match one keyword of a three-keyword
	// group; CANCELAR_AGENDAMENTO is declared first and must win.
	got := c.Classify("cancelar ou remarcar")
	assert.Equal(t, IntentCancelBooking, got.Intent)
}

func TestExtractServiceEntities(t *testing.T) {
	c := NewLexical()

	got := c.Classify("quero agendar um corte e uma manicure")
	assert.Equal(t, []string{"corte", "manicure"}, got.Entities.Services)

	got = c.Classify("fazer as unhas em gel")
	assert.Contains(t, got.Entities.Services, "unhas_gel")
}

func TestExtractDateEntities(t *testing.T) {
	c := NewLexical()

	got := c.Classify("pode ser na segunda ou amanhã")
	assert.Contains(t, got.Entities.Dates, "segunda")
	assert.Contains(t, got.Entities.Dates, "amanhã")

	got = c.Classify("dia 2025-10-06 está bom")
	assert.Contains(t, got.Entities.Dates, "2025-10-06")
}

func TestExtractTimeEntities(t *testing.T) {
	c := NewLexical()

	got := c.Classify("às 14:30 ou de manhã")
	assert.Contains(t, got.Entities.Times, "14:30")
	assert.Contains(t, got.Entities.Times, "manhã")

	got = c.Classify("pode ser 9h")
	assert.Contains(t, got.Entities.Times, "9h")
}

func TestConfidenceGrowsWithKeywordOverlap(t *testing.T) {
	c := NewLexical()
	one := c.Classify("quero agendar")
	two := c.Classify("quero agendar, preciso marcar")
	assert.Greater(t, two.Confidence, one.Confidence)
}
