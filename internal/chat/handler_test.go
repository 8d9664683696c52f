package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"codeberg.org/snonux/lingobridge/internal/history"
	"codeberg.org/snonux/lingobridge/internal/lang"
	"codeberg.org/snonux/lingobridge/internal/translation"
)

type stubTranslator struct {
	out string
	err error

	mu    sync.Mutex
	calls []string
}

func (s *stubTranslator) TranslateText(_ context.Context, text, src, dst string, _ lang.Gender) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, src+">"+dst+":"+text)
	s.mu.Unlock()
	return s.out, s.err
}

type stubExplainer struct {
	text string
	err  error
}

func (s stubExplainer) Enabled() bool { return true }

func (s stubExplainer) Mediate(_ context.Context, message, skillTopic, userRole string) (string, error) {
	return s.text + " (" + skillTopic + "/" + userRole + ")", s.err
}

func (s stubExplainer) Explain(_ context.Context, topic, details string) (string, error) {
	return s.text + ": " + topic, s.err
}

type memoryStore struct {
	mu   sync.Mutex
	msgs []history.Message
}

func (m *memoryStore) Save(_ context.Context, msg history.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msg)
	return nil
}

func (m *memoryStore) Recent(context.Context, string, int) ([]history.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]history.Message(nil), m.msgs...), nil
}

func (m *memoryStore) Close() error { return nil }

func runInline(h *Handler) { h.async = func(f func()) { f() } }

func joined(t *testing.T, h *Hub, room string) *Client {
	t.Helper()
	c := fakeClient(16)
	h.Register(c)
	if !h.Join(c, room) {
		t.Fatal("Join() failed")
	}
	return c
}

func decodeFrame(t *testing.T, raw []byte, wantEvent string, v any) {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("Invalid frame %s: %v", raw, err)
	}
	if env.Event != wantEvent {
		t.Fatalf("Event = %s, want %s (frame %s)", env.Event, wantEvent, raw)
	}
	if v != nil {
		if err := json.Unmarshal(env.Data, v); err != nil {
			t.Fatalf("Invalid data %s: %v", env.Data, err)
		}
	}
}

func TestSendMessageTranslates(t *testing.T) {
	hub := startHub(t)
	tr := &stubTranslator{out: "नमस्ते"}
	store := &memoryStore{}
	h := NewHandler(hub, tr, nil, WithHistory(store))
	c := joined(t, hub, "room")

	h.SendMessage(context.Background(), SendMessagePayload{
		Room: "room", Message: "hello", Username: "asha",
		UserLang: "en", TargetLang: "hi", Timestamp: "10:00",
	})

	var got ReceiveMessagePayload
	decodeFrame(t, receive(t, c), EventReceiveMessage, &got)
	if got.TranslatedMessage != "नमस्ते" || got.Message != "hello" || got.OriginalLang != "en" || got.TargetLang != "hi" {
		t.Errorf("Unexpected message %+v", got)
	}
	if got.Timestamp != "10:00" || got.ID == "" {
		t.Errorf("Expected timestamp echoed and id set, got %+v", got)
	}

	msgs, _ := store.Recent(context.Background(), "room", 10)
	if len(msgs) != 1 || msgs[0].TranslatedMessage != "नमस्ते" || msgs[0].ID != got.ID {
		t.Errorf("Unexpected history %+v", msgs)
	}
}

func TestSendMessageIdenticalMessagesGetDistinctIDs(t *testing.T) {
	hub := startHub(t)
	store := &memoryStore{}
	h := NewHandler(hub, &stubTranslator{}, nil, WithHistory(store))
	c := joined(t, hub, "room")

	var ids []string
	for _, user := range []string{"alice", "bob"} {
		h.SendMessage(context.Background(), SendMessagePayload{Room: "room", Message: "ok", Username: user})

		var got ReceiveMessagePayload
		decodeFrame(t, receive(t, c), EventReceiveMessage, &got)
		ids = append(ids, got.ID)
	}

	if ids[0] == ids[1] {
		t.Errorf("Expected distinct message IDs, both were %q", ids[0])
	}
	msgs, _ := store.Recent(context.Background(), "room", 10)
	if len(msgs) != 2 || msgs[0].ID == msgs[1].ID {
		t.Errorf("Unexpected history %+v", msgs)
	}
}

func TestSendMessageFallbacks(t *testing.T) {
	tests := []struct {
		name       string
		translator *stubTranslator
		payload    SendMessagePayload
		wantCalls  int
	}{
		{
			name:       "same language",
			translator: &stubTranslator{out: "unused"},
			payload:    SendMessagePayload{Room: "room", Message: "hi", Username: "u"},
			wantCalls:  0,
		},
		{
			name:       "translation error",
			translator: &stubTranslator{err: errors.New("boom")},
			payload:    SendMessagePayload{Room: "room", Message: "hi", Username: "u", TargetLang: "ta"},
			wantCalls:  1,
		},
		{
			name:       "all tiers unavailable",
			translator: &stubTranslator{out: translation.Unavailable("hi")},
			payload:    SendMessagePayload{Room: "room", Message: "hi", Username: "u", TargetLang: "ta"},
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := startHub(t)
			h := NewHandler(hub, tt.translator, nil)
			c := joined(t, hub, "room")

			h.SendMessage(context.Background(), tt.payload)

			var got ReceiveMessagePayload
			decodeFrame(t, receive(t, c), EventReceiveMessage, &got)
			if got.TranslatedMessage != "hi" {
				t.Errorf("TranslatedMessage = %q, want original text", got.TranslatedMessage)
			}
			if got.OriginalLang != "en" {
				t.Errorf("OriginalLang = %q, want default en", got.OriginalLang)
			}
			if len(tt.translator.calls) != tt.wantCalls {
				t.Errorf("Translator called %d times, want %d", len(tt.translator.calls), tt.wantCalls)
			}
		})
	}
}

func TestSendMessageAutoExplain(t *testing.T) {
	hub := startHub(t)
	h := NewHandler(hub, &stubTranslator{}, nil, WithExplainer(stubExplainer{text: "tip"}), WithAutoExplain(true))
	runInline(h)
	c := joined(t, hub, "room")

	h.SendMessage(context.Background(), SendMessagePayload{Room: "room", Message: "what is x", Username: "u"})

	decodeFrame(t, receive(t, c), EventReceiveMessage, nil)
	var ai AIMessagePayload
	decodeFrame(t, receive(t, c), EventAIMessage, &ai)
	if ai.Message != "tip (general/learner)" || ai.Type != "explanation" {
		t.Errorf("Unexpected ai message %+v", ai)
	}
}

func TestRequestExplanation(t *testing.T) {
	hub := startHub(t)
	c := joined(t, hub, "room")

	h := NewHandler(hub, &stubTranslator{}, nil, WithExplainer(stubExplainer{text: "simple"}))
	h.RequestExplanation(context.Background(), ExplanationPayload{Room: "room", Topic: "fractions"})

	var ai AIMessagePayload
	decodeFrame(t, receive(t, c), EventAIMessage, &ai)
	if ai.Message != "simple: fractions" {
		t.Errorf("Message = %q", ai.Message)
	}

	// A failing explainer emits nothing
	h = NewHandler(hub, &stubTranslator{}, nil, WithExplainer(stubExplainer{err: errors.New("quota")}))
	h.RequestExplanation(context.Background(), ExplanationPayload{Room: "room", Topic: "fractions"})
	hub.Members("room")
	select {
	case msg := <-c.send:
		t.Errorf("Expected no event, got %s", msg)
	default:
	}
}

func TestDispatchRejectsBadEvents(t *testing.T) {
	hub := startHub(t)
	h := NewHandler(hub, &stubTranslator{}, nil)
	c := fakeClient(4)
	hub.Register(c)

	tests := []struct {
		name string
		env  Envelope
		want string
	}{
		{"unknown", Envelope{Event: "dance", Data: json.RawMessage(`{}`)}, "unknown event"},
		{"no data", Envelope{Event: EventJoinRoom}, "missing data"},
		{"bad data", Envelope{Event: EventJoinRoom, Data: json.RawMessage(`[1]`)}, "invalid data"},
		{"missing room", Envelope{Event: EventSendMessage, Data: json.RawMessage(`{"message":"x","username":"u"}`)}, "missing required field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h.dispatch(context.Background(), c, tt.env)
			var got ErrorPayload
			decodeFrame(t, receive(t, c), EventError, &got)
			if got.Message != tt.want {
				t.Errorf("Message = %q, want %q", got.Message, tt.want)
			}
		})
	}
}

func TestTimestampString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"10:00", "10:00"},
		{float64(1700000000000), "1700000000000"},
	}
	for _, tt := range tests {
		if got := timestampString(tt.in); got != tt.want {
			t.Errorf("timestampString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	frame, err := Encode(event, data)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}
}

// expect reads frames until one carries event
func expect(t *testing.T, conn *websocket.Conn, event string, v any) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %s: %v", event, err)
		}
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("Invalid frame %s", raw)
		}
		if env.Event != event {
			continue
		}
		if v != nil {
			if err := json.Unmarshal(env.Data, v); err != nil {
				t.Fatalf("Invalid data %s", env.Data)
			}
		}
		return
	}
}

func TestWebsocketRoundTrip(t *testing.T) {
	hub := startHub(t)
	h := NewHandler(hub, &stubTranslator{out: "வணக்கம்"}, nil)
	srv := httptest.NewServer(h)
	defer srv.Close()

	alice := dial(t, srv.URL)
	send(t, alice, EventJoinRoom, RoomPayload{Room: "tamil", Username: "alice"})
	var joinedUser UserPayload
	expect(t, alice, EventUserJoined, &joinedUser)
	if joinedUser.Username != "alice" {
		t.Errorf("user_joined username = %q", joinedUser.Username)
	}

	bob := dial(t, srv.URL)
	send(t, bob, EventJoinRoom, RoomPayload{Room: "tamil", Username: "bob"})
	expect(t, alice, EventUserJoined, &joinedUser)
	if joinedUser.Username != "bob" {
		t.Errorf("Expected alice to see bob join, got %q", joinedUser.Username)
	}

	send(t, alice, EventSendMessage, SendMessagePayload{
		Room: "tamil", Message: "hello", Username: "alice", UserLang: "en", TargetLang: "ta",
	})
	var msg ReceiveMessagePayload
	expect(t, bob, EventReceiveMessage, &msg)
	if msg.TranslatedMessage != "வணக்கம்" || msg.Username != "alice" {
		t.Errorf("Unexpected message %+v", msg)
	}

	send(t, bob, EventLeaveRoom, RoomPayload{Room: "tamil", Username: "bob"})
	var left UserPayload
	expect(t, alice, EventUserLeft, &left)
	if left.Username != "bob" {
		t.Errorf("user_left username = %q", left.Username)
	}

	_ = alice.WriteMessage(websocket.TextMessage, []byte("not json"))
	var errPayload ErrorPayload
	expect(t, alice, EventError, &errPayload)
	if errPayload.Message != "invalid frame" {
		t.Errorf("Error message = %q", errPayload.Message)
	}
}
