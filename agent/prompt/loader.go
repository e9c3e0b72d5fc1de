package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/content.txt
	contentRaw string

	//go:embed template/customer.txt
	customerRaw string

	//go:embed template/shop.txt
	shopRaw string

	//go:embed template/media.txt
	mediaRaw string

	//go:embed template/general.txt
	generalRaw string
)

// PromptSet holds the behavior instructions for every domain agent.
type PromptSet struct {
	Content  string
	Customer string
	Shop     string
	Media    string
	General  string
}

// LoadPromptSet returns the embedded prompts, trimmed. Safe to call
// concurrently.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Content:  strings.TrimSpace(contentRaw),
		Customer: strings.TrimSpace(customerRaw),
		Shop:     strings.TrimSpace(shopRaw),
		Media:    strings.TrimSpace(mediaRaw),
		General:  strings.TrimSpace(generalRaw),
	}
}
