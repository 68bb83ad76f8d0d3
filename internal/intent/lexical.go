package intent

import (
	"regexp"
	"strings"
)

// keywordGroup ties an intent to its trigger keywords. Declaration order
// breaks score ties, so groups are a slice rather than a map.
type keywordGroup struct {
	intent   Intent
	keywords []string
}

type serviceGroup struct {
	id       string
	keywords []string
}

// Lexical scores intents by the fraction of a group's keywords present
// in the message. The highest-scoring group wins; ties go to the group
// declared first.
type Lexical struct {
	groups   []keywordGroup
	services []serviceGroup
}

// NewLexical builds the default Portuguese keyword classifier.
func NewLexical() *Lexical {
	return &Lexical{
		groups: []keywordGroup{
			{IntentBookService, []string{"agendar", "marcar", "quero fazer", "preciso", "gostaria"}},
			{IntentCheckAvailability, []string{"disponível", "horário", "quando", "que horas"}},
			{IntentCancelBooking, []string{"cancelar", "desmarcar", "não vou"}},
			{IntentReschedule, []string{"remarcar", "mudar", "trocar horário"}},
			{IntentPriceQuery, []string{"quanto custa", "preço", "valor"}},
			{IntentGreeting, []string{"oi", "olá", "bom dia", "boa tarde", "hey"}},
			{IntentGoodbye, []string{"tchau", "obrigada", "até logo", "bye"}},
		},
		services: []serviceGroup{
			{"corte", []string{"corte", "cortar cabelo", "cortar"}},
			{"escova", []string{"escova", "escovar", "penteado"}},
			{"tintura", []string{"pintar", "tintura", "colorir", "cor "}},
			{"mechas", []string{"mechas", "luzes", "reflexos"}},
			{"hidratacao", []string{"hidratação", "hidratar", "tratamento"}},
			{"progressiva", []string{"progressiva", "alisar", "alisamento"}},
			{"sobrancelha", []string{"sobrancelha", "design"}},
			{"manicure", []string{"manicure", "unha", "esmalte"}},
			{"pedicure", []string{"pedicure", "pé"}},
			{"unhas_gel", []string{"gel", "unhas em gel", "alongamento"}},
		},
	}
}

var _ Classifier = (*Lexical)(nil)

var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(segunda|terça|quarta|quinta|sexta|sábado|domingo)`),
		regexp.MustCompile(`(amanhã|hoje|depois de amanhã)`),
		regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
		regexp.MustCompile(`(\d{1,2}[/\-]\d{1,2})`),
		regexp.MustCompile(`(dia \d{1,2})`),
	}
	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2}[:h]\d{2})`),
		regexp.MustCompile(`(\d{1,2}h)(?:\s|$)`),
		regexp.MustCompile(`(manhã|tarde|noite)`),
	}
)

// Classify scores each intent group and extracts entity candidates.
func (l *Lexical) Classify(text string) Result {
	lower := strings.ToLower(text)

	best := IntentUnknown
	bestScore := 0.0
	for _, g := range l.groups {
		score := 0.0
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				score += 1.0 / float64(len(g.keywords))
			}
		}
		if score > bestScore {
			bestScore = score
			best = g.intent
		}
	}

	return Result{
		Intent:     best,
		Confidence: bestScore,
		Entities:   l.extractEntities(lower),
	}
}

func (l *Lexical) extractEntities(lower string) Entities {
	var e Entities

	for _, g := range l.services {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				e.Services = append(e.Services, g.id)
				break
			}
		}
	}

	seen := map[string]struct{}{}
	for _, p := range datePatterns {
		for _, m := range p.FindAllString(lower, -1) {
			m = strings.TrimSpace(m)
			if _, dup := seen[m]; !dup {
				seen[m] = struct{}{}
				e.Dates = append(e.Dates, m)
			}
		}
	}

	seen = map[string]struct{}{}
	for _, p := range timePatterns {
		for _, sub := range p.FindAllStringSubmatch(lower, -1) {
			m := strings.TrimSpace(sub[1])
			if _, dup := seen[m]; !dup {
				seen[m] = struct{}{}
				e.Times = append(e.Times, m)
			}
		}
	}

	return e
}
