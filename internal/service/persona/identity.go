package persona

import "github.com/I-am-Milind/backend-ai/internal/core"

// IdentityRules are attached to every generated persona so the model keeps
// the character's name and never steps out of role.
func IdentityRules(name string) []string {
	return []string{
		"Your name is " + name,
		"Never say you are an AI",
		"Never say you are the user",
		"Stay in character",
	}
}

// Fallback is used when the model does not return a usable persona description.
func Fallback() core.Persona {
	return core.Persona{
		Description: "Warm, emotionally expressive personality",
		Rules:       []string{"Speak gently", "Use emojis naturally"},
	}
}
