// Package phonetic asks an OpenAI chat model how a phrase is pronounced. It
// provides a Latin-script romanization for scripts without a built-in
// transliteration table, and a longer IPA guide that batch runs can save
// next to the generated audio.
package phonetic
