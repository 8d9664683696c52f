package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"codeberg.org/snonux/lingobridge/internal"
	"codeberg.org/snonux/lingobridge/internal/batch"
	"codeberg.org/snonux/lingobridge/internal/lang"
	"codeberg.org/snonux/lingobridge/internal/translation"
)

// PhoneticGuide writes a pronunciation guide for a phrase to path
type PhoneticGuide interface {
	FetchAndSave(ctx context.Context, text, lang, path string) error
}

// BatchOptions controls a batch run
type BatchOptions struct {
	SourceLang    string
	TargetLang    string
	SpeakerGender lang.Gender
	VoiceGender   lang.Gender
	// OutputDir receives translations.txt and, when speech is configured,
	// one mp3 per phrase. Empty means print only.
	OutputDir string
	Phonetic  PhoneticGuide
}

// BatchSummary counts what a batch run did
type BatchSummary struct {
	Total       int
	Processed   int
	Skipped     int
	Unavailable int
	Errors      int
}

// ProcessBatch translates every entry and reports progress to out
func (p *Processor) ProcessBatch(ctx context.Context, entries []batch.Entry, opts BatchOptions, out io.Writer) (BatchSummary, error) {
	summary := BatchSummary{Total: len(entries)}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return summary, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		target := lang.Normalize(entry.TargetOr(opts.TargetLang))
		fmt.Fprintf(out, "\nProcessing %d/%d: %s -> %s\n", i+1, len(entries), entry.Text, target)

		audioFile := ""
		if opts.OutputDir != "" && p.HasSpeech() {
			audioFile = filepath.Join(opts.OutputDir, internal.SanitizeFilename(entry.Text)+"_"+target+".mp3")
			if fileExists(audioFile) {
				fmt.Fprintf(out, "  ✓ Skipping '%s' - already processed in %s\n", entry.Text, filepath.Base(audioFile))
				summary.Skipped++
				continue
			}
		}

		if err := p.processEntry(ctx, entry.Text, target, audioFile, opts, out, &summary); err != nil {
			fmt.Fprintf(out, "  Error processing '%s': %v\n", entry.Text, err)
			summary.Errors++
			continue
		}
		summary.Processed++
	}

	printSummary(out, summary)
	return summary, nil
}

func (p *Processor) processEntry(ctx context.Context, text, target, audioFile string, opts BatchOptions, out io.Writer, summary *BatchSummary) error {
	req := NewRequest(text)
	req.SourceLang = opts.SourceLang
	req.TargetLang = target
	req.SpeakerGender = opts.SpeakerGender.String()

	resp, err := p.Translate(ctx, req)
	if err != nil {
		return err
	}

	if translation.IsUnavailable(resp.TranslatedText) {
		summary.Unavailable++
		fmt.Fprintf(out, "  Warning: no backend could translate this phrase\n")
		return nil
	}

	fmt.Fprintf(out, "  Translation: %s\n", resp.TranslatedText)
	if resp.RomanizedText != nil {
		fmt.Fprintf(out, "  Romanized: %s\n", *resp.RomanizedText)
	}

	if opts.OutputDir == "" {
		return nil
	}

	if err := translation.SaveTranslation(opts.OutputDir, text, resp.TranslatedText); err != nil {
		fmt.Fprintf(out, "  Warning: Failed to save translation: %v\n", err)
	}

	if opts.Phonetic != nil {
		guide := filepath.Join(opts.OutputDir, internal.SanitizeFilename(text)+"_"+target+"_phonetic.txt")
		if err := opts.Phonetic.FetchAndSave(ctx, resp.TranslatedText, target, guide); err != nil {
			// Don't fail the whole process if phonetic info fails
			fmt.Fprintf(out, "  Warning: Failed to fetch phonetic info: %v\n", err)
		} else {
			fmt.Fprintf(out, "  Saved phonetic information\n")
		}
	}

	if audioFile == "" {
		return nil
	}

	fmt.Fprintf(out, "  Generating audio...\n")
	voice := opts.VoiceGender
	if voice == "" {
		voice = lang.Female
	}
	data, err := p.Speak(ctx, resp.TranslatedText, target, voice)
	if err != nil {
		return fmt.Errorf("audio generation failed: %w", err)
	}
	if err := os.WriteFile(audioFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	fmt.Fprintf(out, "  Saved audio to %s\n", filepath.Base(audioFile))
	return nil
}

func printSummary(out io.Writer, s BatchSummary) {
	fmt.Fprintf(out, "\n=== Batch Processing Summary ===\n")
	fmt.Fprintf(out, "Total phrases: %d\n", s.Total)
	fmt.Fprintf(out, "Processed: %d\n", s.Processed)
	fmt.Fprintf(out, "Skipped (already complete): %d\n", s.Skipped)
	if s.Unavailable > 0 {
		fmt.Fprintf(out, "Untranslated: %d\n", s.Unavailable)
	}
	if s.Errors > 0 {
		fmt.Fprintf(out, "Errors: %d\n", s.Errors)
	}
	fmt.Fprintf(out, "================================\n")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
