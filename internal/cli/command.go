package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/lexinote/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lexinote [word]",
		Short: "AI dictionary notes with Anki export",
		Long: `lexinote looks up English words through an AI completion provider,
writes editable Markdown dictionary notes with pronunciation audio,
and exports the edited notes to Anki decks.

Examples:
  lexinote running                         # Look up "running" (normalized to "run") and save a note
  lexinote run --export --deck TOEIC::Reading
  lexinote run --chat "when do I use this word?"
  lexinote --batch words.txt --export      # Look up and export a whole word list
  lexinote --translate "state of the art"  # Quick translation, no note
  lexinote --apkg vocab.apkg               # Build an offline Anki package from saved notes
  lexinote --list-decks                    # Show decks known to the running Anki`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	home, _ := os.UserHomeDir()
	defaultVaultDir := filepath.Join(home, ".local", "state", "lexinote", "vault")

	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.lexinote.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.VaultDir, "vault", "o", defaultVaultDir, "Vault directory for notes and audio")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Look up words from file (one per line)")
	cmd.Flags().BoolVar(&flags.Export, "export", false, "Export the saved note to Anki after lookup")
	cmd.Flags().StringVar(&flags.Deck, "deck", "", "Target Anki deck (default: AI suggestion)")
	cmd.Flags().StringVar(&flags.Model, "model", flags.Model, "Anki note type for export")
	cmd.Flags().StringVar(&flags.OnDuplicate, "on-duplicate", flags.OnDuplicate, "Duplicate card handling: ask, overwrite or cancel")
	cmd.Flags().StringVar(&flags.Note, "note", "", "Personal note text to embed in the saved note")
	cmd.Flags().StringVar(&flags.Chat, "chat", "", "Ask the AI tutor a question about the word")
	cmd.Flags().StringVar(&flags.Translate, "translate", "", "Translate a text fragment and exit")
	cmd.Flags().StringVar(&flags.APKGPath, "apkg", "", "Build an offline .apkg package from saved notes and exit")
	cmd.Flags().BoolVar(&flags.ListDecks, "list-decks", false, "List Anki decks and note types")
	cmd.Flags().BoolVar(&flags.SkipAudio, "skip-audio", false, "Skip pronunciation audio download")
	cmd.Flags().BoolVar(&flags.SkipAnki, "skip-anki", false, "Do not contact a running Anki instance")

	// Completion provider flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Completion provider: groq or gemini")
	cmd.Flags().StringVar(&flags.TargetLanguage, "target-language", flags.TargetLanguage, "Language for translation fields")

	// Service endpoint flags
	cmd.Flags().StringVar(&flags.AnkiURL, "anki-url", flags.AnkiURL, "AnkiConnect endpoint")
	cmd.Flags().StringVar(&flags.AudioBackend, "audio-backend", flags.AudioBackend, "Backend URL for Cambridge audio and the download proxy")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("vault.directory", cmd.Flags().Lookup("vault"))
	viper.BindPFlag("completion.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("completion.target_language", cmd.Flags().Lookup("target-language"))
	viper.BindPFlag("anki.url", cmd.Flags().Lookup("anki-url"))
	viper.BindPFlag("anki.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("audio.backend", cmd.Flags().Lookup("audio-backend"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".lexinote" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lexinote")
	}

	// Environment variables
	viper.SetEnvPrefix("LEXINOTE")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetGroqKey retrieves the Groq API key from environment or config
func GetGroqKey() string {
	// First check environment variable
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("completion.groq_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}

	return viper.GetString("completion.gemini_key")
}
