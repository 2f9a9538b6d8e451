package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/lexinote/internal/cli"
	"codeberg.org/snonux/lexinote/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx := context.Background()

	services, err := processor.BuildServices(ctx, flags)
	if err != nil {
		return err
	}
	proc := processor.NewProcessor(flags, services)

	// Handle --translate flag
	if flags.Translate != "" {
		result, err := proc.Translate(ctx, flags.Translate)
		if err != nil {
			return err
		}
		fmt.Println(result)
		return nil
	}

	// Handle --list-decks flag
	if flags.ListDecks {
		return proc.ListDecks(ctx)
	}

	// Handle --apkg flag
	if flags.APKGPath != "" {
		count, err := proc.GenerateAPKG(flags.APKGPath)
		if err != nil {
			return err
		}
		fmt.Printf("Anki package created: %s (%d notes)\n", flags.APKGPath, count)
		return nil
	}

	// Handle batch processing
	if flags.BatchFile != "" {
		if err := proc.ProcessBatch(ctx); err != nil {
			return err
		}
	} else if len(args) > 0 {
		// Process single word
		if err := proc.ProcessWord(ctx, args[0]); err != nil {
			return err
		}
	} else {
		// No input provided
		return cmd.Help()
	}

	fmt.Printf("\nDone! Notes saved to: %s\n", flags.VaultDir)
	return nil
}
