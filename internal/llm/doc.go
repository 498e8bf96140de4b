// Package llm provides a small text-generation interface over the supported
// language model providers: Google Gemini (the default), OpenAI and
// Anthropic.
package llm
