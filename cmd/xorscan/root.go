package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for xorscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xorscan",
		Short: "Find and break single-byte XOR encrypted text",
		Long: `xorscan recovers plaintext hidden with a single-byte XOR key.

Every key from 0x00 to 0x7f is tried against the ciphertext and each
candidate is scored as English text. The detect command runs this over
every line of a file and reports the line that was actually encrypted.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewHexToBase64Cmd())
	cmd.AddCommand(NewBase64ToHexCmd())
	cmd.AddCommand(NewXorCmd())
	cmd.AddCommand(NewCrackCmd())
	cmd.AddCommand(NewDetectCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
