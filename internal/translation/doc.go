// Package translation turns text from one language into another through a
// cascade of backends: the free Google endpoint, an OpenAI chat model and a
// small built-in phrasebook. Each backend sits behind a circuit breaker, and
// results are memoised in a TTL cache so repeated chat lines cost nothing.
package translation
