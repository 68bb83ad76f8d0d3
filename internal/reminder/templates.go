package reminder

import (
	"fmt"
)

const salonName = "Salão Beleza Total"

// RenderMessage produces the WhatsApp text for a job. Rendering is
// pure so tests can assert exact output; delivery is the dispatcher's
// problem.
func RenderMessage(j *Job) string {
	name := j.ClientName
	if name == "" {
		name = "cliente"
	}
	date := j.StartAt.Format("02/01/2006")
	hour := j.StartAt.Format("15:04")

	switch j.Kind {
	case KindConfirmation:
		return fmt.Sprintf(
			"✅ Agendamento confirmado!\n\n🎯 %s\n👤 %s\n📅 %s às %s\n\n📍 %s\nChegue 10 min antes. Para desmarcar, avise com 2h de antecedência.",
			j.ServiceName, name, date, hour, salonName,
		)
	case KindReminder24h:
		return fmt.Sprintf(
			"⏰ Oi %s! Amanhã você tem %s conosco, %s às %s.\n\nResponda SIM para confirmar ou CANCELAR para desmarcar.\n\n%s",
			name, j.ServiceName, date, hour, salonName,
		)
	case KindReminder2h:
		return fmt.Sprintf(
			"🚨 Oi %s! Seu horário de %s é daqui a pouco, HOJE às %s.\n\nEstamos te esperando no %s. Chegue 10 min antes!",
			name, j.ServiceName, hour, salonName,
		)
	case KindNoShowFollowup:
		return fmt.Sprintf(
			"😔 Oi %s, sentimos sua falta! Você tinha %s hoje às %s e não compareceu.\n\nAconteceu algum imprevisto? Digite AGENDAR para escolher um novo horário.",
			name, j.ServiceName, hour,
		)
	case KindReviewRequest:
		return fmt.Sprintf(
			"🌟 Oi %s! Como foi seu %s?\n\nAvalie de 1 a 5 estrelas respondendo esta mensagem. Obrigada pela confiança! 💕",
			name, j.ServiceName,
		)
	}
	return fmt.Sprintf("Oi %s! Você tem %s em %s às %s no %s.", name, j.ServiceName, date, hour, salonName)
}
