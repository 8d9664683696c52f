package cli

// Flags holds all command-line flag values
type Flags struct {
	// Global flags
	CfgFile  string
	EnvFile  string
	LogLevel string

	// serve
	Addr string

	// translate
	From      string
	To        string
	Speaker   string
	Voice     string
	BatchFile string
	AudioDir  string
	Phonetic  bool

	// archive
	ArchiveCache bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		EnvFile:  ".env",
		LogLevel: "info",
		Addr:     "0.0.0.0:5000",
		From:     "en",
		To:       "hi",
		Speaker:  "female",
		Voice:    "female",
	}
}
