package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/lingobridge/internal"
)

// Commands groups the root command and its subcommands so that main can
// attach the run functions
type Commands struct {
	Root      *cobra.Command
	Serve     *cobra.Command
	Translate *cobra.Command
	Languages *cobra.Command
	Models    *cobra.Command
	Archive   *cobra.Command
}

// CreateRootCommand creates and configures the command tree
func CreateRootCommand(flags *Flags) *Commands {
	rootCmd := &cobra.Command{
		Use:   "lingobridge",
		Short: "Translation and speech server for peer teaching chat",
		Long: `lingobridge translates text between 26 languages, fixes speaker gender
agreement for Indic languages, romanizes the result and can speak it.

It serves an HTTP API and a websocket chat that translates every message
for the receiving side.

Examples:
  lingobridge                                 # Run the server (default)
  lingobridge serve --addr :8080              # Run the server on another port
  lingobridge translate "I am going" --to hi  # Translate one phrase
  lingobridge translate --batch phrases.txt -o out/
  lingobridge languages                       # List supported languages`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmds := &Commands{
		Root: rootCmd,
		Serve: &cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API and chat websocket",
			Args:  cobra.NoArgs,
		},
		Translate: &cobra.Command{
			Use:   "translate [text]",
			Short: "Translate a phrase or a batch file",
			Args:  cobra.MaximumNArgs(1),
		},
		Languages: &cobra.Command{
			Use:   "languages",
			Short: "List supported languages",
			Args:  cobra.NoArgs,
		},
		Models: &cobra.Command{
			Use:   "models",
			Short: "List available OpenAI models for the current API key",
			Args:  cobra.NoArgs,
		},
		Archive: &cobra.Command{
			Use:   "archive",
			Short: "Move the chat history (or the speech cache) into the archive directory",
			Args:  cobra.NoArgs,
		},
	}

	setupFlags(cmds, flags)
	rootCmd.AddCommand(cmds.Serve, cmds.Translate, cmds.Languages, cmds.Models, cmds.Archive)

	return cmds
}

func setupFlags(cmds *Commands, flags *Flags) {
	// Global flags
	pf := cmds.Root.PersistentFlags()
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.lingobridge.yaml)")
	pf.StringVar(&flags.EnvFile, "env-file", flags.EnvFile, "dotenv file with API keys")
	pf.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")

	// serve flags also apply to the root command, which serves by default
	for _, cmd := range []*cobra.Command{cmds.Root, cmds.Serve} {
		addServeFlags(cmd.Flags(), flags)
	}

	tf := cmds.Translate.Flags()
	tf.StringVar(&flags.From, "from", flags.From, "Source language code, or auto")
	tf.StringVar(&flags.To, "to", flags.To, "Target language code")
	tf.StringVar(&flags.Speaker, "speaker", flags.Speaker, "Speaker gender for grammatical agreement: male or female")
	tf.StringVar(&flags.Voice, "voice", flags.Voice, "Voice gender for audio: male or female")
	tf.StringVar(&flags.BatchFile, "batch", "", "Process phrases from file (one per line, optionally 'text = lang')")
	tf.StringVarP(&flags.AudioDir, "output", "o", "", "Write translations and mp3 files to this directory")
	tf.BoolVar(&flags.Phonetic, "phonetic", false, "Also save an IPA pronunciation guide (needs OPENAI_API_KEY)")

	cmds.Archive.Flags().BoolVar(&flags.ArchiveCache, "cache", false, "Archive the speech cache instead of the chat history")

	// Bind flags to viper. --addr is applied by the caller only when set, since
	// two commands share it.
	bindFlagsToViper(cmds)
}

func addServeFlags(fs *pflag.FlagSet, flags *Flags) {
	fs.StringVar(&flags.Addr, "addr", flags.Addr, "Listen address")
}

func bindFlagsToViper(cmds *Commands) {
	_ = viper.BindPFlag("log.level", cmds.Root.PersistentFlags().Lookup("log-level"))
}
