// Package server exposes the translate pipeline, the language and voice
// tables, room history and the chat websocket over HTTP.
package server
