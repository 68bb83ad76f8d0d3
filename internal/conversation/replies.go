package conversation

import (
	"fmt"
	"strings"

	"github.com/agendasalao/salon-ai-platform/internal/availability"
	"github.com/agendasalao/salon-ai-platform/internal/catalog"
	"github.com/agendasalao/salon-ai-platform/internal/ledger"
)

const replyGreeting = "Olá! 👋 Bem-vinda ao Salão Beleza Total! Como posso ajudar você hoje?"

const replyGoodbye = "Obrigada pelo contato! 😊 Até logo e volte sempre! ✨"

const replyFallback = "Não entendi muito bem 🤔 Você quer agendar um serviço? Digite AGENDAR"

const replyAskDate = "Qual dia você prefere? Digite o dia da semana ou uma data (por exemplo: amanhã, sábado, 06/10)."

const replyNothingToCancel = "Não encontrei nenhum agendamento ativo para cancelar. Digite AGENDAR para marcar um horário!"

const replyCancelled = "❌ Cancelamento confirmado. Nenhuma cobrança será feita.\n\nPara reagendar, digite AGENDAR. Te esperamos em breve! 🌟"

const replyConfirmDeclined = "Sem problemas! O horário não foi reservado. Digite outro horário ou AGENDAR para recomeçar."

// replyServiceMenu lists every bookable service with its price.
func replyServiceMenu(cat *catalog.Catalog) string {
	var b strings.Builder
	b.WriteString("Que serviço você gostaria de agendar? Oferecemos:\n\n")
	for _, svc := range cat.Services() {
		fmt.Fprintf(&b, "• %s - R$ %.0f (%d min)\n", svc.Name, svc.Price, int(svc.Duration.Minutes()))
	}
	b.WriteString("\nDigite o nome do serviço que deseja!")
	return b.String()
}

// replyPriceTable answers a price query, narrowing to one service when
// the message named it.
func replyPriceTable(cat *catalog.Catalog, serviceID string) string {
	if serviceID != "" {
		if svc, err := cat.ServiceByID(serviceID); err == nil {
			return fmt.Sprintf("💰 %s: R$ %.0f (%d min)", svc.Name, svc.Price, int(svc.Duration.Minutes()))
		}
	}
	var b strings.Builder
	b.WriteString("💰 Tabela de Preços:\n\n")
	for _, svc := range cat.Services() {
		fmt.Fprintf(&b, "• %s - R$ %.0f\n", svc.Name, svc.Price)
	}
	b.WriteString("\nQual serviço te interessa?")
	return b.String()
}

func replyServiceChosen(svc catalog.Service) string {
	return fmt.Sprintf(
		"Perfeito! %s\n💰 Valor: R$ %.0f\n⏰ Duração: %d min\n\n%s",
		svc.Name, svc.Price, int(svc.Duration.Minutes()), replyAskDate,
	)
}

func replySlots(date string, slots []availability.Slot) string {
	if len(slots) == 0 {
		return fmt.Sprintf("😔 Não temos horários livres em %s. Quer tentar outro dia?", date)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📅 Horários disponíveis em %s:\n\n", date)
	for _, s := range slots {
		fmt.Fprintf(&b, "🕐 %s - %s\n", s.StartAt.Format("15:04"), s.StaffName)
	}
	b.WriteString("\nQual horário prefere?")
	return b.String()
}

func replyConfirmSlot(svc catalog.Service, slot availability.Slot) string {
	return fmt.Sprintf(
		"Confirmando: %s com %s, %s às %s, R$ %.0f.\n\nResponda SIM para confirmar ou NÃO para escolher outro horário.",
		svc.Name, slot.StaffName,
		slot.StartAt.Format("02/01/2006"), slot.StartAt.Format("15:04"),
		svc.Price,
	)
}

func replyBooked(b *ledger.Booking, staffName string) string {
	return fmt.Sprintf(
		"✅ Agendamento confirmado!\n\n📅 %s às %s\n💆‍♀️ %s\n💰 R$ %.0f\n\nVocê receberá lembretes antes do horário. Até lá! ✨",
		b.StartAt.Format("02/01/2006"), b.StartAt.Format("15:04"),
		staffName, b.Price,
	)
}

const replySlotTaken = "😔 Esse horário acabou de ser reservado. Veja os horários que ainda estão livres:"

func replyTimeNotOffered(date string, slots []availability.Slot) string {
	return "Esse horário não está entre os disponíveis.\n\n" + replySlots(date, slots)
}
