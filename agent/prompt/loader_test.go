package prompt

import (
	"strings"
	"testing"

	profilex "github.com/tanpawarit/profile-concierge/agent/profile"
)

func TestConciergeTemplateMentionsTools(t *testing.T) {
	t.Parallel()

	tpl := Concierge()
	for _, token := range []string{"record_unknown_question", "record_user_details", "{name}", "{summary}", "{document}"} {
		if !strings.Contains(tpl, token) {
			t.Fatalf("template missing %q", token)
		}
	}
}

func TestRenderConcierge(t *testing.T) {
	t.Parallel()

	prof := &profilex.Profile{
		Name:     "Ada Lovelace",
		Summary:  "Analyst and programmer.",
		Document: "Worked on the Analytical Engine.",
	}

	rendered := RenderConcierge(prof)
	for _, want := range []string{prof.Name, prof.Summary, prof.Document} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("rendered prompt missing %q", want)
		}
	}
	for _, leftover := range []string{"{name}", "{summary}", "{document}"} {
		if strings.Contains(rendered, leftover) {
			t.Fatalf("placeholder %q not replaced", leftover)
		}
	}
}

func TestRenderConciergeNilProfile(t *testing.T) {
	t.Parallel()

	if RenderConcierge(nil) != Concierge() {
		t.Fatal("nil profile must fall back to the raw template")
	}
}
