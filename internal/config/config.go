package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Pipeline PipelineConfig `mapstructure:"pipeline" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port           int    `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel       string `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	LogFormat      string `mapstructure:"log_format"       validate:"required,oneof=json text"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes" validate:"required,gt=0"`
}

// PipelineConfig controls how documents are split and summarized.
type PipelineConfig struct {
	// MaxChunkLength is the maximum chunk length in characters
	MaxChunkLength int `mapstructure:"max_chunk_length" validate:"required,gt=0"`

	// Concurrency is the number of chunks summarized in parallel; 1 is sequential
	Concurrency int `mapstructure:"concurrency" validate:"required,gt=0,lte=32"`
}

// LLMConfig contains all settings of the summarization model integration.
type LLMConfig struct {
	Provider  string `mapstructure:"provider"   validate:"required,oneof=huggingface gemini openai anthropic"`
	ModelName string `mapstructure:"model_name" validate:"required"`

	// APIKey authenticates against the hosted provider. The Hugging Face
	// inference endpoint accepts anonymous requests, so it is optional there.
	APIKey string `mapstructure:"api_key" validate:"required_unless=Provider huggingface"`

	// BaseURL overrides the provider's default endpoint
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`

	MaxLength int  `mapstructure:"max_length" validate:"required,gt=0"`
	MinLength int  `mapstructure:"min_length" validate:"gte=0,ltefield=MaxLength"`
	Sampling  bool `mapstructure:"sampling"`

	// Device is the compute device preference: auto, accelerator, or cpu
	Device string `mapstructure:"device" validate:"required,oneof=auto accelerator cpu gpu cuda"`

	MaxRetries        int `mapstructure:"max_retries"         validate:"gte=0,lte=10"`
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=0"`
	TimeoutSeconds    int `mapstructure:"timeout_seconds"     validate:"required,gt=0"`

	// PromptTemplatePath points at a text/template used by chat-style
	// providers; empty selects the built-in template
	PromptTemplatePath string `mapstructure:"prompt_template_path" validate:"omitempty,file"`
}
