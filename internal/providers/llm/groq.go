package llm

const groqBaseURL = "https://api.groq.com/openai"

type Groq struct {
	*OpenAICompatible
}

func NewGroq(apiKey, model string) *Groq {
	return &Groq{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    groqBaseURL,
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}),
	}
}
