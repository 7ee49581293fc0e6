// Package generation defines the boundary between the notes pipeline and
// the external pretrained summarization model.
//
// The Model interface is what the rest of the application depends on; the
// adapters under internal/platform implement it for concrete providers
// (Hugging Face inference endpoints, Gemini, OpenAI, Anthropic). The Handle
// type wraps a provider loader so the model is initialized once, lazily, and
// shared read-only for the lifetime of the process.
//
// The package also holds the shared pieces every adapter needs: decoding
// bounds, compute-device selection, the retry policy for transient provider
// failures, and the prompt template used by chat-style providers.
package generation
