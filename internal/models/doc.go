// Package models lists the OpenAI models available to an API key, grouped
// by what lingobridge can use them for: translation and explanations (chat)
// or speech (TTS).
package models
