// Package ruleset is the production ruleset collaborator. Rulesets are
// identified by normalized ids; every id starting with "standard" carries
// the OHKO and evasion clauses, anything else is unrestricted.
package ruleset

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/FrostyKingzly/PokebotREGIST-sub000/internal/content"
)

// DefaultRuleset is assigned to sessions created without a preference.
const DefaultRuleset = "standardnatdex"

// banned maps a normalized move id to the clause that outlaws it.
var banned = map[string]string{
	"sheercold":  "OHKO",
	"fissure":    "OHKO",
	"guillotine": "OHKO",
	"horndrill":  "OHKO",
	"doubleteam": "evasion",
	"minimize":   "evasion",
}

// Handler implements engine.RulesetHandler.
type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

// IsMoveAllowed reports whether a ruleset permits the move, with a
// narration-ready reason when it does not.
func (h *Handler) IsMoveAllowed(moveID, rulesetID string) (bool, string) {
	if !strings.HasPrefix(content.Normalize(rulesetID), "standard") {
		return true, ""
	}
	clause, ok := banned[content.Normalize(moveID)]
	if !ok {
		return true, ""
	}
	return false, fmt.Sprintf("%s is banned under the %s clause!", label(moveID), clause)
}

// ResolveDefault picks the ruleset for a new session: the normalized
// preference when one was given, DefaultRuleset otherwise.
func (h *Handler) ResolveDefault(preference string) string {
	if id := content.Normalize(preference); id != "" {
		return id
	}
	return DefaultRuleset
}

func label(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}
