package provider

import "time"

// Config carries the credentials and defaults for every supported backend.
// Exactly which backend serves a turn is decided at agent construction time;
// explicit arguments win over the defaults here.
type Config struct {
	Default            string        `envconfig:"DEFAULT" split_words:"true" default:"openai"`
	Model              string        `envconfig:"MODEL" split_words:"true" default:"gpt-4o-mini"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`

	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY" split_words:"true"`
	OpenAIBaseURL   string `envconfig:"OPENAI_BASE_URL" split_words:"true"`
	AnthropicAPIKey string `envconfig:"ANTHROPIC_API_KEY" split_words:"true"`
	GeminiAPIKey    string `envconfig:"GEMINI_API_KEY" split_words:"true"`
	DeepseekAPIKey  string `envconfig:"DEEPSEEK_API_KEY" split_words:"true"`
	MistralAPIKey   string `envconfig:"MISTRAL_API_KEY" split_words:"true"`
	OllamaBaseURL   string `envconfig:"OLLAMA_BASE_URL" split_words:"true" default:"http://localhost:11434/v1"`
}

// Known provider names. Each resolves to an OpenAI-compatible chat endpoint.
const (
	NameOpenAI    = "openai"
	NameAnthropic = "anthropic"
	NameGemini    = "gemini"
	NameDeepseek  = "deepseek"
	NameMistral   = "mistral"
	NameOllama    = "ollama"
)

const (
	anthropicBaseURL = "https://api.anthropic.com/v1"
	geminiBaseURL    = "https://generativelanguage.googleapis.com/v1beta/openai"
	deepseekBaseURL  = "https://api.deepseek.com/v1"
	mistralBaseURL   = "https://api.mistral.ai/v1"
)
