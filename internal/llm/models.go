package llm

// modelAliases maps the provider-neutral names "fast" and "smart" to
// concrete model IDs. Any other name is sent as-is.
var modelAliases = map[string]map[string]string{
	ProviderAnthropic: {
		"fast":  "claude-haiku-4-5-20251001",
		"smart": "claude-sonnet-4-20250514",
	},
	ProviderOpenAI: {
		"fast":  "gpt-4o-mini",
		"smart": "gpt-4o",
	},
	ProviderGemini: {
		"fast":  "gemini-2.0-flash",
		"smart": "gemini-2.0-pro",
	},
}

func resolveModel(provider, name string) string {
	if id, ok := modelAliases[provider][name]; ok {
		return id
	}
	return name
}

// finish validates content against the request schema and assembles the
// Response. Truncated output is reported as ErrMaxTokensExceeded.
func finish(req Request, content []byte, model, stop string, usage Usage) (*Response, error) {
	if stop == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}
