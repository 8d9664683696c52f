package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"codeberg.org/snonux/lingobridge/internal"
	"codeberg.org/snonux/lingobridge/internal/history"
	"codeberg.org/snonux/lingobridge/internal/lang"
	"codeberg.org/snonux/lingobridge/internal/translation"
)

// Translator translates a chat message for the receiving side
type Translator interface {
	TranslateText(ctx context.Context, text, src, dst string, speaker lang.Gender) (string, error)
}

// Explainer produces AI mediator messages
type Explainer interface {
	Enabled() bool
	Mediate(ctx context.Context, message, skillTopic, userRole string) (string, error)
	Explain(ctx context.Context, topic, details string) (string, error)
}

// Handler upgrades HTTP requests to chat connections and handles their events
type Handler struct {
	hub         *Hub
	translator  Translator
	explainer   Explainer
	history     history.Store
	autoExplain bool
	upgrader    websocket.Upgrader
	logger      *zap.SugaredLogger

	// explanations run outside the read pump; tests wait on this
	async func(func())
}

// HandlerOption configures a Handler
type HandlerOption func(*Handler)

// WithExplainer enables ai_message events
func WithExplainer(e Explainer) HandlerOption {
	return func(h *Handler) { h.explainer = e }
}

// WithHistory persists every relayed message
func WithHistory(s history.Store) HandlerOption {
	return func(h *Handler) { h.history = s }
}

// WithAutoExplain adds a mediator explanation after every message
func WithAutoExplain(on bool) HandlerOption {
	return func(h *Handler) { h.autoExplain = on }
}

// NewHandler creates a chat handler bound to hub
func NewHandler(hub *Hub, translator Translator, logger *zap.SugaredLogger, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	h := &Handler{
		hub:        hub,
		translator: translator,
		history:    history.NopStore{},
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		async: func(f func()) { go f() },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP upgrades the connection and starts its pumps
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.logger.Warnw("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := newClient(conn)
	h.hub.Register(c)
	h.logger.Infow("chat client connected", "client", c.id, "remote", r.RemoteAddr)

	go c.writePump()
	// r.Context() is cancelled once ServeHTTP returns for hijacked connections
	go c.readPump(context.WithoutCancel(r.Context()), h)
}

func (h *Handler) dispatch(ctx context.Context, c *Client, env Envelope) {
	switch env.Event {
	case EventJoinRoom:
		var p RoomPayload
		if !h.decode(c, env, &p) || !h.require(c, env.Event, p.Room, p.Username) {
			return
		}
		h.JoinRoom(c, p)

	case EventLeaveRoom:
		var p RoomPayload
		if !h.decode(c, env, &p) || !h.require(c, env.Event, p.Room) {
			return
		}
		h.LeaveRoom(c, p)

	case EventSendMessage:
		var p SendMessagePayload
		if !h.decode(c, env, &p) || !h.require(c, env.Event, p.Room, p.Message, p.Username) {
			return
		}
		h.SendMessage(ctx, p)

	case EventRequestExplanation:
		var p ExplanationPayload
		if !h.decode(c, env, &p) || !h.require(c, env.Event, p.Room, p.Topic) {
			return
		}
		h.async(func() { h.RequestExplanation(ctx, p) })

	default:
		h.replyError(c, env.Event, "unknown event")
	}
}

// JoinRoom adds c to the room and announces the user to it
func (h *Handler) JoinRoom(c *Client, p RoomPayload) {
	if !h.hub.Join(c, p.Room) {
		return
	}
	h.logger.Infow("user joined", "room", p.Room, "username", p.Username)
	h.broadcast(p.Room, EventUserJoined, UserPayload{Username: p.Username})
}

// LeaveRoom removes c from the room and tells the others
func (h *Handler) LeaveRoom(c *Client, p RoomPayload) {
	if !h.hub.Leave(c, p.Room) {
		return
	}
	h.logger.Infow("user left", "room", p.Room, "username", p.Username)
	h.broadcast(p.Room, EventUserLeft, UserPayload{Username: p.Username})
}

// SendMessage translates p when the two sides speak different languages,
// relays it to the room and stores it. A failed translation relays the
// original text.
func (h *Handler) SendMessage(ctx context.Context, p SendMessagePayload) {
	p = p.withDefaults()

	translated := p.Message
	if p.UserLang != p.TargetLang {
		out, err := h.translator.TranslateText(ctx, p.Message, p.UserLang, p.TargetLang, lang.Female)
		switch {
		case err != nil:
			h.logger.Warnw("chat translation failed", "room", p.Room, "error", err)
		case out == "" || translation.IsUnavailable(out):
			h.logger.Warnw("chat translation unavailable", "room", p.Room)
		default:
			translated = out
		}
	}

	msg := ReceiveMessagePayload{
		ID:                internal.GenerateMessageID(),
		Username:          p.Username,
		Message:           p.Message,
		TranslatedMessage: translated,
		OriginalLang:      p.UserLang,
		TargetLang:        p.TargetLang,
		Timestamp:         p.Timestamp,
	}
	h.broadcast(p.Room, EventReceiveMessage, msg)

	record := history.Message{
		ID:                msg.ID,
		Room:              p.Room,
		Username:          p.Username,
		Message:           p.Message,
		TranslatedMessage: translated,
		OriginalLang:      p.UserLang,
		TargetLang:        p.TargetLang,
		Timestamp:         timestampString(p.Timestamp),
	}
	if err := h.history.Save(ctx, record); err != nil {
		h.logger.Warnw("failed to save chat message", "room", p.Room, "error", err)
	}

	if h.autoExplain && h.explainer != nil && h.explainer.Enabled() {
		h.async(func() {
			text, err := h.explainer.Mediate(ctx, p.Message, p.SkillTopic, p.UserRole)
			h.aiMessage(p.Room, text, err)
		})
	}
}

// RequestExplanation explains a topic to the whole room
func (h *Handler) RequestExplanation(ctx context.Context, p ExplanationPayload) {
	if h.explainer == nil {
		h.logger.Warnw("explanation requested but no explainer configured", "room", p.Room)
		return
	}
	text, err := h.explainer.Explain(ctx, p.Topic, p.Context)
	h.aiMessage(p.Room, text, err)
}

func (h *Handler) aiMessage(room, text string, err error) {
	if err != nil {
		h.logger.Warnw("AI explanation error", "room", room, "error", err)
		return
	}
	if text == "" {
		return
	}
	h.broadcast(room, EventAIMessage, AIMessagePayload{Message: text, Type: "explanation"})
}

func (h *Handler) broadcast(room, event string, data any) {
	payload, err := Encode(event, data)
	if err != nil {
		h.logger.Errorw("failed to encode event", "event", event, "error", err)
		return
	}
	h.hub.Broadcast(room, payload)
}

func (h *Handler) decode(c *Client, env Envelope, v any) bool {
	if len(env.Data) == 0 {
		h.replyError(c, env.Event, "missing data")
		return false
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		h.replyError(c, env.Event, "invalid data")
		return false
	}
	return true
}

func (h *Handler) require(c *Client, event string, fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			h.replyError(c, event, "missing required field")
			return false
		}
	}
	return true
}

func (h *Handler) replyError(c *Client, event, message string) {
	payload, err := Encode(EventError, ErrorPayload{Event: event, Message: message})
	if err != nil {
		return
	}
	h.hub.SendTo(c, payload)
}
