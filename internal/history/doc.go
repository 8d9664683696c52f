// Package history persists chat messages per room in SQLite so that late
// joiners can fetch the recent conversation.
package history
