// Package huggingface implements generation.Model on top of the Hugging Face
// inference API, which serves pretrained abstractive summarization models
// such as facebook/bart-large-cnn.
//
// Each call posts one chunk of text with the length bounds and decoding mode
// as generation parameters and returns the single summary_text of the
// response. Rate limiting, timeouts, and server errors (including the 503
// returned while a model is still loading) are treated as transient and
// retried with backoff.
package huggingface
