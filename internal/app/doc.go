// Package app wires the configured translation tiers, speech providers,
// romanizer, explainer and history store into the translate pipeline and
// the chat server, and implements the CLI subcommands on top of them.
package app
