package chat

import (
	"encoding/json"
	"fmt"
)

// Inbound events
const (
	EventJoinRoom           = "join_room"
	EventLeaveRoom          = "leave_room"
	EventSendMessage        = "send_message"
	EventRequestExplanation = "request_explanation"
)

// Outbound events
const (
	EventUserJoined     = "user_joined"
	EventUserLeft       = "user_left"
	EventReceiveMessage = "receive_message"
	EventAIMessage      = "ai_message"
	EventError          = "error"
)

// Envelope is the frame format in both directions
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Encode builds a frame for event
func Encode(event string, data any) ([]byte, error) {
	b, err := json.Marshal(outbound{Event: event, Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", event, err)
	}
	return b, nil
}

// RoomPayload is the data of join_room and leave_room
type RoomPayload struct {
	Room     string `json:"room"`
	Username string `json:"username"`
}

// UserPayload is the data of user_joined and user_left
type UserPayload struct {
	Username string `json:"username"`
}

// SendMessagePayload is the data of send_message
type SendMessagePayload struct {
	Room       string `json:"room"`
	Message    string `json:"message"`
	Username   string `json:"username"`
	UserLang   string `json:"user_lang"`
	TargetLang string `json:"target_lang"`
	SkillTopic string `json:"skill_topic"`
	UserRole   string `json:"user_role"`
	Timestamp  any    `json:"timestamp"`
}

// withDefaults fills the optional fields the way clients expect
func (p SendMessagePayload) withDefaults() SendMessagePayload {
	if p.UserLang == "" {
		p.UserLang = "en"
	}
	if p.TargetLang == "" {
		p.TargetLang = "en"
	}
	if p.SkillTopic == "" {
		p.SkillTopic = "general"
	}
	if p.UserRole == "" {
		p.UserRole = "learner"
	}
	return p
}

// ReceiveMessagePayload is the data of receive_message
type ReceiveMessagePayload struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	Message           string `json:"message"`
	TranslatedMessage string `json:"translated_message"`
	OriginalLang      string `json:"original_lang"`
	TargetLang        string `json:"target_lang"`
	Timestamp         any    `json:"timestamp"`
}

// ExplanationPayload is the data of request_explanation
type ExplanationPayload struct {
	Room    string `json:"room"`
	Topic   string `json:"topic"`
	Context string `json:"context"`
}

// AIMessagePayload is the data of ai_message
type AIMessagePayload struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ErrorPayload is sent back to the client whose event could not be handled
type ErrorPayload struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

// timestampString flattens the free-form client timestamp for storage
func timestampString(ts any) string {
	switch v := ts.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
