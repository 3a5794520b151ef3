package dashboard

import (
	"strings"
	"time"

	"orbit-expenses/internal/domain/expenses"
)

func ParseScopeKind(value string) (ScopeKind, error) {
	switch kind := ScopeKind(strings.ToUpper(strings.TrimSpace(value))); kind {
	case "":
		return ScopeMonth, nil
	case ScopeMonth, ScopeYear, ScopeAll:
		return kind, nil
	default:
		return "", ErrInvalidScope
	}
}

// ParseAnchor accepts "YYYY-MM-DD", "YYYY-MM" or "YYYY". Empty input means
// today.
func ParseAnchor(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return dayStart(now), nil
	}
	for _, layout := range []string{expenses.DateLayout, monthKeyLayout, "2006"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, ErrInvalidAnchor
}

// Shift moves the anchor by step months or years depending on the scope kind.
// An all-time scope has nowhere to move and is returned unchanged.
func (p PeriodScope) Shift(step int) PeriodScope {
	anchor := p.Anchor
	switch p.Kind {
	case ScopeMonth:
		anchor = time.Date(anchor.Year(), anchor.Month()+time.Month(step), 1, 0, 0, 0, 0, anchor.Location())
	case ScopeYear:
		anchor = time.Date(anchor.Year()+step, anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	default:
		return p
	}
	return PeriodScope{Anchor: anchor, Kind: p.Kind}
}

func (p PeriodScope) Label() string {
	switch p.Kind {
	case ScopeMonth:
		return p.Anchor.Format("January 2006")
	case ScopeYear:
		return p.Anchor.Format("2006")
	default:
		return "All Time"
	}
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
