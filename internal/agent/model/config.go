package model

// ================ Config ================
type SessionConfig struct {
	TTL string `envconfig:"SESSION_TTL" default:"30m"`
}

type ExtractModelConfig struct {
	Model       string  `envconfig:"EXTRACT_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"EXTRACT_MAX_TOKENS" default:"512"`
	Temperature float32 `envconfig:"EXTRACT_TEMPERATURE" default:"0.1"`
}

type QueryModelConfig struct {
	Model       string  `envconfig:"QUERY_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"QUERY_MAX_TOKENS" default:"1024"`
	Temperature float32 `envconfig:"QUERY_TEMPERATURE" default:"0.3"`
}

type ResponseModelConfig struct {
	Model       string  `envconfig:"RESPONSE_MODEL" default:"gemini-2.5-flash"`
	MaxTokens   int     `envconfig:"RESPONSE_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"RESPONSE_TEMPERATURE" default:"0.4"`
}
