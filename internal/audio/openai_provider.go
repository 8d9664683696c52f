package audio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/lingobridge/internal/lang"
)

// OpenAI voices used per speaker gender
const (
	OpenAIMaleVoice   = "onyx"
	OpenAIFemaleVoice = "nova"
)

// OpenAIProvider implements Provider interface for OpenAI TTS
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	return NewOpenAIProviderWithClientConfig(config, openai.DefaultConfig(config.OpenAIKey))
}

// NewOpenAIProviderWithClientConfig allows pointing the client at another endpoint
func NewOpenAIProviderWithClientConfig(config *Config, clientConfig openai.ClientConfig) (*OpenAIProvider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// VoiceForGender maps a speaker gender onto an OpenAI voice
func VoiceForGender(gender lang.Gender) string {
	if gender == lang.Male {
		return OpenAIMaleVoice
	}
	return OpenAIFemaleVoice
}

func (p *OpenAIProvider) supportsInstructions() bool {
	return p.config.OpenAIInstruction != "" &&
		(p.config.OpenAIModel == "gpt-4o-mini-tts" || p.config.OpenAIModel == "gpt-4o-mini-audio-preview")
}

// Synthesize generates MP3 audio using OpenAI TTS
func (p *OpenAIProvider) Synthesize(ctx context.Context, text, code string, gender lang.Gender) ([]byte, error) {
	model := p.config.OpenAIModel
	if model == "" {
		model = string(openai.TTSModel1)
	}
	speed := p.config.OpenAISpeed
	if speed == 0 {
		speed = 1.0
	}

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(model),
		Input:          text,
		Voice:          openai.SpeechVoice(VoiceForGender(gender)),
		Speed:          speed,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}

	if p.supportsInstructions() {
		req.Instructions = fmt.Sprintf("%s The text is in %s.", p.config.OpenAIInstruction, lang.Name(code))
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		// Check if it's a model access error
		if strings.Contains(err.Error(), "does not have access to model") && p.supportsInstructions() {
			return nil, fmt.Errorf("OpenAI TTS API error: %w\nNote: The %s model requires access. Try tts.openai_model tts-1-hd instead", err, model)
		}
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer func() { _ = response.Close() }()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data received from OpenAI")
	}

	return data, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is accessible
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}
