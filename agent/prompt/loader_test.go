package prompt

import (
	"strings"
	"testing"
)

func TestLoadPromptSetAllDomainsPresent(t *testing.T) {
	t.Parallel()

	set := LoadPromptSet()
	prompts := map[string]string{
		"content":  set.Content,
		"customer": set.Customer,
		"shop":     set.Shop,
		"media":    set.Media,
		"general":  set.General,
	}
	for name, text := range prompts {
		if strings.TrimSpace(text) == "" {
			t.Fatalf("prompt for %s agent is empty", name)
		}
		if strings.HasPrefix(text, "\n") || strings.HasSuffix(text, "\n") {
			t.Fatalf("prompt for %s agent is not trimmed", name)
		}
	}
}
