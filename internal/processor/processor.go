package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"codeberg.org/snonux/lingobridge/internal/audio"
	"codeberg.org/snonux/lingobridge/internal/grammar"
	"codeberg.org/snonux/lingobridge/internal/lang"
	"codeberg.org/snonux/lingobridge/internal/translation"
)

// Request defaults
const (
	DefaultSourceLang = "en"
	DefaultTargetLang = "hi"
)

var (
	// ErrNoText is returned when the request carries no text field
	ErrNoText = errors.New("no text provided")
	// ErrEmptyText is returned when the text is blank after trimming
	ErrEmptyText = errors.New("empty text")
	// ErrTranslationFailed is returned when the pipeline ends up with no text
	ErrTranslationFailed = errors.New("translation failed")
)

// Translator is the translation backend used by the pipeline
type Translator interface {
	Translate(ctx context.Context, text, src, dst string) (string, error)
}

// Romanizer renders translated text in Latin script
type Romanizer interface {
	Romanize(ctx context.Context, text, lang string) (string, bool)
}

// SourceResolver turns "auto" into a detected language code
type SourceResolver interface {
	Resolve(source, text string) string
}

// TranslateRequest is the body of a translate call
type TranslateRequest struct {
	Text          *string `json:"text"`
	SourceLang    string  `json:"source_lang,omitempty"`
	TargetLang    string  `json:"target_lang,omitempty"`
	TTS           bool    `json:"tts,omitempty"`
	SpeakerGender string  `json:"speaker_gender,omitempty"`
	VoiceGender   string  `json:"voice_gender,omitempty"`
}

// NewRequest builds a request for text with every other field defaulted
func NewRequest(text string) TranslateRequest {
	return TranslateRequest{Text: &text}
}

// WithDefaults fills in the fields the caller left empty
func (r TranslateRequest) WithDefaults() TranslateRequest {
	if r.SourceLang == "" {
		r.SourceLang = DefaultSourceLang
	}
	if r.TargetLang == "" {
		r.TargetLang = DefaultTargetLang
	}
	if r.SpeakerGender == "" {
		r.SpeakerGender = string(lang.Female)
	}
	if r.VoiceGender == "" {
		r.VoiceGender = string(lang.Female)
	}
	return r
}

// TranslateResponse is the result of a translate call
type TranslateResponse struct {
	TranslatedText string  `json:"translated_text"`
	RomanizedText  *string `json:"romanized_text"`
	AudioURL       *string `json:"audio_url"`
	SourceLang     string  `json:"source_lang"`
	TargetLang     string  `json:"target_lang"`
}

// Processor handles the translate pipeline
type Processor struct {
	translator Translator
	resolver   SourceResolver
	romanizer  Romanizer
	speech     audio.Provider
	logger     *zap.SugaredLogger
}

// Option configures optional pipeline stages
type Option func(*Processor)

// WithSourceResolver enables "auto" source detection
func WithSourceResolver(r SourceResolver) Option {
	return func(p *Processor) { p.resolver = r }
}

// WithRomanizer enables romanization
func WithRomanizer(r Romanizer) Option {
	return func(p *Processor) { p.romanizer = r }
}

// WithSpeech enables speech synthesis
func WithSpeech(s audio.Provider) Option {
	return func(p *Processor) { p.speech = s }
}

// New creates a pipeline around translator
func New(translator Translator, logger *zap.SugaredLogger, opts ...Option) *Processor {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	p := &Processor{translator: translator, logger: logger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HasSpeech reports whether speech synthesis is configured
func (p *Processor) HasSpeech() bool {
	return p.speech != nil
}

// Translate runs the whole pipeline. Romanization and speech are best
// effort: their failures leave the corresponding field null.
func (p *Processor) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	if req.Text == nil {
		return nil, ErrNoText
	}
	text := strings.TrimSpace(*req.Text)
	if text == "" {
		return nil, ErrEmptyText
	}

	req = req.WithDefaults()
	src := p.resolveSource(req.SourceLang, text)
	dst := lang.Normalize(req.TargetLang)

	p.logger.Infow("processing translation", "src", src, "dst", dst, "tts", req.TTS, "chars", len(text))

	translated, err := p.TranslateText(ctx, text, src, dst, lang.ParseGender(req.SpeakerGender))
	if err != nil {
		return nil, err
	}
	if translated == "" {
		return nil, ErrTranslationFailed
	}

	resp := &TranslateResponse{
		TranslatedText: translated,
		SourceLang:     src,
		TargetLang:     dst,
	}

	if p.romanizer != nil && !translation.IsUnavailable(translated) {
		if romanized, ok := p.romanizer.Romanize(ctx, translated, dst); ok {
			resp.RomanizedText = &romanized
		}
	}

	if req.TTS {
		if data, err := p.Speak(ctx, translated, dst, lang.ParseGender(req.VoiceGender)); err != nil {
			p.logger.Warnw("speech synthesis failed", "dst", dst, "error", err)
		} else {
			url := audio.DataURL(data)
			resp.AudioURL = &url
		}
	}

	return resp, nil
}

// TranslateText translates and applies speaker gender agreement. When every
// backend fails the text comes back marked as unavailable, not as an error.
func (p *Processor) TranslateText(ctx context.Context, text, src, dst string, speaker lang.Gender) (string, error) {
	translated, err := p.translator.Translate(ctx, text, src, dst)
	if err != nil {
		if errors.Is(err, translation.ErrAllTiersFailed) {
			p.logger.Warnw("translation unavailable", "src", src, "dst", dst, "error", err)
			return translation.Unavailable(text), nil
		}
		return "", fmt.Errorf("translate: %w", err)
	}

	adj := grammar.AdjustWithReport(translated, dst, speaker)
	if adj.Changed {
		p.logger.Debugw("gender agreement adjusted", "dst", dst, "speaker", speaker, "rules", adj.Rules)
	}
	return adj.Text, nil
}

// Speak synthesizes text with the configured speech chain
func (p *Processor) Speak(ctx context.Context, text, code string, gender lang.Gender) ([]byte, error) {
	if p.speech == nil {
		return nil, fmt.Errorf("%w: speech synthesis disabled", audio.ErrNoAudio)
	}
	return p.speech.Synthesize(ctx, text, code, gender)
}

func (p *Processor) resolveSource(source, text string) string {
	if p.resolver != nil {
		return p.resolver.Resolve(source, text)
	}
	return lang.Normalize(source)
}
