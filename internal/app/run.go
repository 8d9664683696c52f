package app

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"codeberg.org/snonux/lingobridge/internal/archive"
	"codeberg.org/snonux/lingobridge/internal/audio"
	"codeberg.org/snonux/lingobridge/internal/batch"
	"codeberg.org/snonux/lingobridge/internal/chat"
	"codeberg.org/snonux/lingobridge/internal/lang"
	"codeberg.org/snonux/lingobridge/internal/models"
	"codeberg.org/snonux/lingobridge/internal/processor"
	"codeberg.org/snonux/lingobridge/internal/server"
)

// Serve runs the chat hub and the HTTP server until ctx is cancelled
func (a *App) Serve(ctx context.Context) error {
	hub := chat.NewHub(a.logger)
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go hub.Run(hubCtx)

	chatHandler := chat.NewHandler(hub, a.Processor, a.logger,
		chat.WithExplainer(a.Explainer),
		chat.WithHistory(a.History),
		chat.WithAutoExplain(a.Config.AutoExplain),
	)

	srv := server.New(server.Config{Addr: a.Config.ServerAddr}, a.Processor, a.logger,
		server.WithHistory(a.History),
		server.WithChat(chatHandler),
	)
	return srv.ListenAndServe(ctx)
}

// TranslateOptions are the translate subcommand flags
type TranslateOptions struct {
	From      string
	To        string
	Speaker   string
	Voice     string
	BatchFile string
	OutputDir string
	Phonetic  bool
}

// Translate handles the translate subcommand: a batch file when one is
// given, otherwise the single phrase in args
func (a *App) Translate(ctx context.Context, opts TranslateOptions, args []string, out io.Writer) error {
	if opts.To != "" && !lang.IsSupported(opts.To) {
		return fmt.Errorf("unsupported target language: %s", opts.To)
	}

	if opts.BatchFile != "" {
		entries, err := batch.ReadBatchFile(opts.BatchFile)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("no phrases found in batch file")
		}

		bopts := processor.BatchOptions{
			SourceLang:    opts.From,
			TargetLang:    opts.To,
			SpeakerGender: lang.ParseGender(opts.Speaker),
			VoiceGender:   lang.ParseGender(opts.Voice),
			OutputDir:     opts.OutputDir,
		}
		if opts.Phonetic {
			if a.Phonetic == nil {
				fmt.Fprintln(out, "Warning: --phonetic needs OPENAI_API_KEY, skipping pronunciation guides")
			} else {
				bopts.Phonetic = a.Phonetic
			}
		}
		_, err = a.Processor.ProcessBatch(ctx, entries, bopts, out)
		return err
	}

	if len(args) == 0 {
		return fmt.Errorf("no text provided: pass a phrase or --batch")
	}

	req := processor.NewRequest(args[0])
	req.SourceLang = opts.From
	req.TargetLang = opts.To
	req.SpeakerGender = opts.Speaker
	req.VoiceGender = opts.Voice

	resp, err := a.Processor.Translate(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s -> %s\n", resp.SourceLang, resp.TargetLang)
	fmt.Fprintf(out, "Translation: %s\n", resp.TranslatedText)
	if resp.RomanizedText != nil {
		fmt.Fprintf(out, "Romanized: %s\n", *resp.RomanizedText)
	}

	if opts.OutputDir == "" {
		return nil
	}
	// A single phrase is a one-entry batch so files land where --batch puts them
	entry := []batch.Entry{{Text: args[0], Target: resp.TargetLang}}
	bopts := processor.BatchOptions{
		SourceLang:    resp.SourceLang,
		TargetLang:    resp.TargetLang,
		SpeakerGender: lang.ParseGender(opts.Speaker),
		VoiceGender:   lang.ParseGender(opts.Voice),
		OutputDir:     opts.OutputDir,
	}
	if opts.Phonetic && a.Phonetic != nil {
		bopts.Phonetic = a.Phonetic
	}
	_, err = a.Processor.ProcessBatch(ctx, entry, bopts, io.Discard)
	if err == nil {
		fmt.Fprintf(out, "Saved to: %s\n", opts.OutputDir)
	}
	return err
}

// Languages prints the language catalog
func Languages(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tSCRIPT\tSPEECH\tVOICES")
	for _, l := range lang.All() {
		pair := audio.VoiceFor(l.Code, lang.Female) + ", " + audio.VoiceFor(l.Code, lang.Male)
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\n", l.Code, l.Name, l.Script, l.TTS, pair)
	}
	return w.Flush()
}

// Models prints the OpenAI models available to key
func Models(ctx context.Context, key string, out io.Writer) error {
	return models.NewLister(key).ListAvailableModels(ctx, out)
}

// Archive moves the history database, or the speech cache, into the
// archive directory next to it
func Archive(target ArchiveTarget, out io.Writer) error {
	path := target.Path()
	if path == "" {
		return fmt.Errorf("nothing to archive: path not configured")
	}
	_, err := archive.Rotate(path, out)
	return err
}

// ArchiveTarget selects what Archive rotates
type ArchiveTarget struct {
	HistoryPath string
	CacheDir    string
	Cache       bool
}

// Path returns the file or directory to rotate
func (t ArchiveTarget) Path() string {
	if t.Cache {
		return t.CacheDir
	}
	return t.HistoryPath
}
