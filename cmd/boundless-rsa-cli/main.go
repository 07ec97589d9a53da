// Package main is the entry point for the boundless-rsa-cli application.
// It registers the key generation, encryption, decryption and inspection
// commands and executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/MGTheTrain/boundless-rsa/cmd/boundless-rsa-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "boundless-rsa-cli",
		Short: "Textbook RSA on arbitrary precision integers",
		Long: `boundless-rsa-cli generates textbook RSA key pairs from probable primes of a
chosen decimal length and encrypts or decrypts files with them.

No padding is applied. Equal plaintexts under one key produce equal ciphertexts,
so the tool is meant for study and experiments, not for protecting data.`,
		SilenceUsage: true,
	}

	if err := commands.InitRSACommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
