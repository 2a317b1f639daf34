package prompt

import (
	_ "embed"
	"strings"

	profilex "github.com/tanpawarit/profile-concierge/agent/profile"
)

//go:embed template/concierge.txt
var conciergeRaw string

// Concierge returns the raw system-prompt template, trimmed.
func Concierge() string {
	return strings.TrimSpace(conciergeRaw)
}

// RenderConcierge fills the template with the owner's profile. Placeholders
// are literal {name}, {summary} and {document} tokens.
func RenderConcierge(p *profilex.Profile) string {
	if p == nil {
		return Concierge()
	}
	r := strings.NewReplacer(
		"{name}", p.Name,
		"{summary}", p.Summary,
		"{document}", p.Document,
	)
	return r.Replace(Concierge())
}
