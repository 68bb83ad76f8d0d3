package reminder

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleJob(kind Kind) *Job {
	return &Job{
		Kind:        kind,
		ClientName:  "Maria",
		ClientPhone: "+5511999990000",
		ServiceName: "Corte Feminino",
		StartAt:     time.Date(2025, 10, 6, 14, 0, 0, 0, time.UTC),
	}
}

func TestRenderMessagePerKind(t *testing.T) {
	tests := []struct {
		kind Kind
		want []string
	}{
		{KindConfirmation, []string{"Agendamento confirmado", "Corte Feminino", "06/10/2025", "14:00"}},
		{KindReminder24h, []string{"Amanhã", "Maria", "SIM", "CANCELAR"}},
		{KindReminder2h, []string{"HOJE às 14:00", "Chegue 10 min antes"}},
		{KindNoShowFollowup, []string{"sentimos sua falta", "não compareceu", "AGENDAR"}},
		{KindReviewRequest, []string{"Como foi seu Corte Feminino", "1 a 5 estrelas"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			msg := RenderMessage(sampleJob(tt.kind))
			for _, want := range tt.want {
				assert.Contains(t, msg, want)
			}
		})
	}
}

func TestRenderMessageFallbackName(t *testing.T) {
	j := sampleJob(KindReminder24h)
	j.ClientName = ""
	msg := RenderMessage(j)
	assert.True(t, strings.Contains(msg, "Oi cliente"))
}
