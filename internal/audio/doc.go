// Package audio synthesizes speech for translated text. Providers are tried
// in order (the edge-tts CLI, Google Translate TTS, OpenAI speech) and the
// first one that returns audio wins. Each provider sits behind a circuit
// breaker, and generated clips can be cached on disk keyed by an md5 of the
// request.
package audio
