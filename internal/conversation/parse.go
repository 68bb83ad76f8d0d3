package conversation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/agendasalao/salon-ai-platform/internal/availability"
)

var weekdayNames = map[string]time.Weekday{
	"domingo": time.Sunday,
	"segunda": time.Monday,
	"terça":   time.Tuesday,
	"terca":   time.Tuesday,
	"quarta":  time.Wednesday,
	"quinta":  time.Thursday,
	"sexta":   time.Friday,
	"sábado":  time.Saturday,
	"sabado":  time.Saturday,
}

var (
	isoDateRe    = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	shortDateRe  = regexp.MustCompile(`^(\d{1,2})[/\-](\d{1,2})$`)
	dayOfMonthRe = regexp.MustCompile(`^dia (\d{1,2})$`)
	clockRe      = regexp.MustCompile(`^(\d{1,2})[:h](\d{2})$`)
	hourOnlyRe   = regexp.MustCompile(`^(\d{1,2})h$`)
)

// parseDate resolves a date entity to a calendar day. Relative words
// resolve against now; a bare weekday picks the next occurrence
// (today counts when it matches).
func parseDate(entity string, now time.Time) (time.Time, bool) {
	entity = strings.ToLower(strings.TrimSpace(entity))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch entity {
	case "hoje":
		return today, true
	case "amanhã", "amanha":
		return today.AddDate(0, 0, 1), true
	}

	if wd, ok := weekdayNames[entity]; ok {
		d := today
		for d.Weekday() != wd {
			d = d.AddDate(0, 0, 1)
		}
		return d, true
	}

	if m := isoDateRe.FindStringSubmatch(entity); m != nil {
		d, err := time.ParseInLocation("2006-01-02", entity, now.Location())
		if err != nil {
			return time.Time{}, false
		}
		return d, true
	}

	if m := shortDateRe.FindStringSubmatch(entity); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		d := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, now.Location())
		if d.Before(today) {
			d = d.AddDate(1, 0, 0)
		}
		return d, true
	}

	if m := dayOfMonthRe.FindStringSubmatch(entity); m != nil {
		day, _ := strconv.Atoi(m[1])
		d := time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, now.Location())
		if d.Before(today) {
			d = d.AddDate(0, 1, 0)
		}
		return d, true
	}

	return time.Time{}, false
}

// matchSlot resolves a time entity against the offered candidates. An
// explicit clock time must match a candidate exactly; a period word
// picks the earliest candidate in that period.
func matchSlot(entity string, offered []availability.Slot) (availability.Slot, bool) {
	entity = strings.ToLower(strings.TrimSpace(entity))

	if hour, minute, ok := parseClock(entity); ok {
		for _, s := range offered {
			if s.StartAt.Hour() == hour && s.StartAt.Minute() == minute {
				return s, true
			}
		}
		return availability.Slot{}, false
	}

	var inPeriod func(h int) bool
	switch entity {
	case "manhã", "manha":
		inPeriod = func(h int) bool { return h < 12 }
	case "tarde":
		inPeriod = func(h int) bool { return h >= 12 && h < 18 }
	case "noite":
		inPeriod = func(h int) bool { return h >= 18 }
	default:
		return availability.Slot{}, false
	}

	best := availability.Slot{}
	found := false
	for _, s := range offered {
		if !inPeriod(s.StartAt.Hour()) {
			continue
		}
		if !found || s.StartAt.Before(best.StartAt) {
			best = s
			found = true
		}
	}
	return best, found
}

func parseClock(entity string) (hour, minute int, ok bool) {
	if m := clockRe.FindStringSubmatch(entity); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		return hour, minute, hour < 24 && minute < 60
	}
	if m := hourOnlyRe.FindStringSubmatch(entity); m != nil {
		hour, _ = strconv.Atoi(m[1])
		return hour, 0, hour < 24
	}
	return 0, 0, false
}

// isAffirmative recognizes a confirmation reply.
func isAffirmative(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "sim", "s", "confirmar", "confirmo", "ok", "pode ser", "isso":
		return true
	}
	return false
}

// isNegative recognizes a refusal reply.
func isNegative(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "não", "nao", "n", "cancelar", "deixa", "melhor não", "melhor nao":
		return true
	}
	return false
}
