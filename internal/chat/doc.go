// Package chat relays messages between users in named rooms over websockets.
//
// Every frame is a JSON envelope {"event": name, "data": {...}}. A single hub
// goroutine owns room membership; each connection gets a read pump that
// dispatches inbound events and a write pump that drains a buffered send
// channel. Messages are translated into the receiver's language before they
// are broadcast, and an AI mediator can add explanations to the room.
package chat
