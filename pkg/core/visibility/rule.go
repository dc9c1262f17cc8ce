package visibility

import "strings"

// Rule is the visibility policy declared on an activity
type Rule int

const (
	DefaultAboveOrEqual Rule = iota
	OpenToAll
	OpenToNonStudents
	ExactLevelOnly
	LevelAndAbove
	LevelAndBelow
)

func (r Rule) String() string {
	switch r {
	case OpenToAll:
		return "OpenToAll"
	case OpenToNonStudents:
		return "OpenToNonStudents"
	case ExactLevelOnly:
		return "ExactLevelOnly"
	case LevelAndAbove:
		return "LevelAndAbove"
	case LevelAndBelow:
		return "LevelAndBelow"
	}
	return "DefaultAboveOrEqual"
}

// IsOpen reports whether the rule ignores levels entirely
func (r Rule) IsOpen() bool {
	return r == OpenToAll || r == OpenToNonStudents
}

// ruleTags maps lower-cased sheet labels and rule names to rules
var ruleTags = map[string]Rule{
	"aberto a todos os níveis":        OpenToAll,
	"aberto a não alunos":             OpenToNonStudents,
	"somente o nível da atividade":    ExactLevelOnly,
	"nível da atividade e superiores": LevelAndAbove,
	"nível da atividade e inferiores": LevelAndBelow,
	"opentoall":                       OpenToAll,
	"opentononstudents":               OpenToNonStudents,
	"exactlevelonly":                  ExactLevelOnly,
	"levelandabove":                   LevelAndAbove,
	"levelandbelow":                   LevelAndBelow,
	"defaultaboveorequal":             DefaultAboveOrEqual,
}

// ParseRule maps a rule tag to a Rule. Missing or unrecognised tags fall back to
// DefaultAboveOrEqual.
func ParseRule(tag string) Rule {
	if rule, ok := ruleTags[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return rule
	}
	return DefaultAboveOrEqual
}

// IsVisible decides whether a volunteer of volunteerRank may see an activity of
// activityRank under rule. Pure; the first matching case wins.
func IsVisible(rule Rule, activityRank, volunteerRank int) bool {
	switch rule {
	case OpenToAll, OpenToNonStudents:
		return true
	case ExactLevelOnly:
		return volunteerRank == activityRank
	case LevelAndAbove:
		return volunteerRank >= activityRank
	case LevelAndBelow:
		return volunteerRank <= activityRank
	default:
		return volunteerRank >= activityRank
	}
}
