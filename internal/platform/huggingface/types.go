package huggingface

// inferenceRequest is the body of a summarization request.
type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
	Options    inferenceOptions    `json:"options"`
}

// inferenceParameters carries the generation settings of the pipeline.
type inferenceParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

// inferenceOptions controls how the endpoint schedules the request.
type inferenceOptions struct {
	// WaitForModel blocks until a cold model is loaded instead of failing with 503
	WaitForModel bool `json:"wait_for_model"`

	// UseGPU asks for accelerator-backed inference
	UseGPU bool `json:"use_gpu"`

	// UseCache must be false for sampled output to vary between calls
	UseCache bool `json:"use_cache"`
}

// summaryResult is one element of the response array.
type summaryResult struct {
	SummaryText string `json:"summary_text"`
}

// errorResponse is the body returned with non-2xx statuses.
type errorResponse struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}
