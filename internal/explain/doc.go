// Package explain produces the short AI mediator messages shown in chat
// rooms: a supportive note on what a participant just said, or a plain
// explanation of a topic on request. OpenAI is asked first and Gemini is
// used when OpenAI fails.
package explain
