package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"codeberg.org/snonux/lingobridge/internal/audio"
	"codeberg.org/snonux/lingobridge/internal/breaker"
	"codeberg.org/snonux/lingobridge/internal/cli"
	"codeberg.org/snonux/lingobridge/internal/explain"
	"codeberg.org/snonux/lingobridge/internal/history"
	"codeberg.org/snonux/lingobridge/internal/lang"
	"codeberg.org/snonux/lingobridge/internal/phonetic"
	"codeberg.org/snonux/lingobridge/internal/processor"
	"codeberg.org/snonux/lingobridge/internal/romanize"
	"codeberg.org/snonux/lingobridge/internal/translation"
)

// App holds the long-lived components built from a Config
type App struct {
	Config    cli.Config
	Processor *processor.Processor
	Explainer *explain.Explainer
	// Phonetic is nil without an OpenAI key
	Phonetic *phonetic.Fetcher
	History  history.Store
	logger   *zap.SugaredLogger
}

// New builds every component. Optional backends that are not configured
// are left out and logged; only an unusable history database is an error.
func New(ctx context.Context, cfg cli.Config, logger *zap.SugaredLogger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	a := &App{Config: cfg, logger: logger}

	if cfg.OpenAIKey != "" {
		a.Phonetic = phonetic.NewFetcher(cfg.OpenAIKey)
	}

	opts := []processor.Option{
		processor.WithSourceResolver(lang.NewDetector("en")),
		processor.WithRomanizer(a.romanizer()),
	}
	if speech := a.speech(); speech != nil {
		opts = append(opts, processor.WithSpeech(speech))
	}
	a.Processor = processor.New(a.translator(), logger, opts...)

	explainer, err := a.explainer(ctx)
	if err != nil {
		return nil, err
	}
	a.Explainer = explainer

	store, err := history.Open(cfg.HistoryPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open chat history: %w", err)
	}
	a.History = store

	return a, nil
}

// Close releases the history database
func (a *App) Close() error {
	if a.History == nil {
		return nil
	}
	return a.History.Close()
}

func (a *App) translator() *translation.Cascade {
	tiers := []translation.Translator{translation.NewGoogleTranslator()}
	if a.Config.OpenAIKey != "" {
		tiers = append(tiers, translation.NewOpenAITranslator(a.Config.OpenAIKey, a.Config.TranslateOpenAIModel))
	} else {
		a.logger.Infow("OpenAI translation tier disabled", "reason", "no API key")
	}
	tiers = append(tiers, translation.NewPhrasebookTranslator())

	var opts []translation.CascadeOption
	if a.Config.TranslateCacheTTL > 0 {
		opts = append(opts, translation.WithCache(translation.NewTranslationCache(a.Config.TranslateCacheTTL)))
	}
	return translation.NewCascade(a.logger, breaker.DefaultSettings(), tiers, opts...)
}

func (a *App) romanizer() *romanize.Romanizer {
	if a.Config.RomanizeLLMFallback && a.Phonetic != nil {
		return romanize.NewRomanizer(a.Phonetic, a.logger)
	}
	return romanize.NewRomanizer(nil, a.logger)
}

// speech returns nil when no provider can run here
func (a *App) speech() audio.Provider {
	cfg := audio.DefaultProviderConfig()
	if len(a.Config.TTSProviders) > 0 {
		cfg.Providers = a.Config.TTSProviders
	}
	if a.Config.TTSEdgeBinary != "" {
		cfg.EdgeBinary = a.Config.TTSEdgeBinary
	}
	if a.Config.TTSOpenAIModel != "" {
		cfg.OpenAIModel = a.Config.TTSOpenAIModel
	}
	if a.Config.TTSCacheDir != "" {
		cfg.CacheDir = a.Config.TTSCacheDir
	}
	cfg.OpenAIKey = a.Config.OpenAIKey
	cfg.EnableCache = a.Config.TTSEnableCache

	chain, err := audio.NewChain(cfg, a.logger)
	if err != nil {
		a.logger.Warnw("speech synthesis disabled", "error", err)
		return nil
	}
	a.logger.Infow("speech synthesis enabled", "providers", chain.Name())
	return chain
}

func (a *App) explainer(ctx context.Context) (*explain.Explainer, error) {
	var backends []explain.Backend
	if b := explain.NewOpenAIBackend(a.Config.OpenAIKey, a.Config.ExplainModel); b != nil {
		backends = append(backends, b)
	}

	gemini, err := explain.NewGeminiBackend(ctx, a.Config.GeminiKey, a.Config.ExplainGeminiModel)
	if err != nil {
		return nil, err
	}
	if gemini != nil {
		backends = append(backends, gemini)
	}

	if len(backends) == 0 {
		a.logger.Infow("AI explanations disabled", "reason", "no OpenAI or Gemini key")
	}
	return explain.New(a.logger, backends...), nil
}
