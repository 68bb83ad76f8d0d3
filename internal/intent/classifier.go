package intent

// Intent labels a detected user intention.
type Intent string

const (
	IntentBookService       Intent = "AGENDAR_SERVICO"
	IntentCheckAvailability Intent = "CONSULTAR_DISPONIBILIDADE"
	IntentCancelBooking     Intent = "CANCELAR_AGENDAMENTO"
	IntentReschedule        Intent = "REAGENDAR"
	IntentPriceQuery        Intent = "CONSULTAR_PRECO"
	IntentGreeting          Intent = "SAUDACAO"
	IntentGoodbye           Intent = "DESPEDIDA"
	IntentUnknown           Intent = "UNKNOWN"
)

// Entities carries the candidates extracted from a message. Slices keep
// the order in which candidates appeared.
type Entities struct {
	Services []string
	Dates    []string
	Times    []string
}

// Result is a classification outcome.
type Result struct {
	Intent     Intent
	Confidence float64
	Entities   Entities
}

// Classifier maps free text to an intent and an entity bag. It must be
// deterministic for identical input and must never fail; unmapped input
// yields IntentUnknown with confidence 0.
type Classifier interface {
	Classify(text string) Result
}
