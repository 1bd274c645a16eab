package model

import "strings"

// ExtraType classifies the extra awarded on a delivery.
type ExtraType int

const (
	ExtraNone ExtraType = iota
	ExtraWides
	ExtraNoBalls
	ExtraLegByes
	ExtraByes
	ExtraPenalty
	ExtraOther
)

var extraNames = map[ExtraType]string{
	ExtraWides:   "wides",
	ExtraNoBalls: "noballs",
	ExtraLegByes: "legbyes",
	ExtraByes:    "byes",
	ExtraPenalty: "penalty",
}

// ParseExtraType maps the CSV label onto an ExtraType. Empty and "NA" are ExtraNone.
func ParseExtraType(s string) ExtraType {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "na" {
		return ExtraNone
	}
	for t, name := range extraNames {
		if name == s {
			return t
		}
	}
	return ExtraOther
}

func (t ExtraType) String() string {
	if name, ok := extraNames[t]; ok {
		return name
	}
	if t == ExtraNone {
		return ""
	}
	return "other"
}

// ChargedToBowler reports whether runs scored off this extra count against the bowler.
// Penalty runs, leg byes and byes do not.
func (t ExtraType) ChargedToBowler() bool {
	switch t {
	case ExtraPenalty, ExtraLegByes, ExtraByes:
		return false
	default:
		return true
	}
}

// IsLegalDelivery reports whether the bowler is credited with a ball bowled.
func (t ExtraType) IsLegalDelivery() bool {
	return t != ExtraWides && t != ExtraNoBalls
}

// IsBallFaced reports whether the batter is credited with a ball faced.
// Only wides are excluded; no-balls are faced.
func (t ExtraType) IsBallFaced() bool {
	return t != ExtraWides
}

// DismissalKind is the method of dismissal recorded on a wicket delivery.
type DismissalKind int

const (
	DismissalNone DismissalKind = iota
	DismissalCaught
	DismissalCaughtAndBowled
	DismissalBowled
	DismissalStumped
	DismissalLBW
	DismissalHitWicket
	DismissalRunOut
	DismissalRetiredHurt
	DismissalRetiredOut
	DismissalObstructingTheField
	DismissalOther
)

var dismissalNames = map[DismissalKind]string{
	DismissalCaught:              "caught",
	DismissalCaughtAndBowled:     "caught and bowled",
	DismissalBowled:              "bowled",
	DismissalStumped:             "stumped",
	DismissalLBW:                 "lbw",
	DismissalHitWicket:           "hit wicket",
	DismissalRunOut:              "run out",
	DismissalRetiredHurt:         "retired hurt",
	DismissalRetiredOut:          "retired out",
	DismissalObstructingTheField: "obstructing the field",
}

// ParseDismissalKind maps the CSV label onto a DismissalKind. Empty and "NA" are DismissalNone.
func ParseDismissalKind(s string) DismissalKind {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "na" {
		return DismissalNone
	}
	for k, name := range dismissalNames {
		if name == s {
			return k
		}
	}
	return DismissalOther
}

func (k DismissalKind) String() string {
	if name, ok := dismissalNames[k]; ok {
		return name
	}
	if k == DismissalNone {
		return ""
	}
	return "other"
}

// CreditedToBowler reports whether the bowler receives the wicket.
// Run outs, retirements and obstruction are not bowler wickets.
func (k DismissalKind) CreditedToBowler() bool {
	switch k {
	case DismissalCaught, DismissalCaughtAndBowled, DismissalBowled,
		DismissalStumped, DismissalLBW, DismissalHitWicket:
		return true
	default:
		return false
	}
}
