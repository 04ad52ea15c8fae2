package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nao1215/xorscan/internal/config"
	"github.com/nao1215/xorscan/internal/model"
	"github.com/nao1215/xorscan/internal/source"
	"github.com/spf13/cobra"
)

// crackResult is the JSON form of one cracked ciphertext.
type crackResult struct {
	Ciphertext string `json:"ciphertext"`
	model.Candidate
}

// NewCrackCmd creates the crack command.
func NewCrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crack [hex...]",
		Short: "Break single-byte XOR encryption of hex ciphertexts",
		Long: `Crack tries every key from 0x00 to 0x7f against each hex ciphertext and
prints the key, score and plaintext of the most English-looking candidate.

When no arguments are given, one hex ciphertext is read per line of
standard input.

Examples:
  xorscan crack 1b37373331363f78151b7f2b783431333d78397828372d363c78373e783a393b3736

  # Read ciphertexts from a pipe and print JSON
  cat ciphertexts.txt | xorscan crack --json

  # Score candidates by symbol frequency in a sample text
  xorscan crack --sample alice.txt 1b37373331363f78`,
		Args: cobra.ArbitraryArgs,
		RunE: runCrackCmd,
	}

	cmd.Flags().StringP("encoding", "e", config.DefaultEncoding,
		"Text encoding used to read candidates (e.g. utf-8, windows-1252)")
	cmd.Flags().StringP("sample", "s", "",
		"Score by symbol frequency in this sample text instead of the letter heuristic")
	cmd.Flags().BoolP("json", "j", false,
		"Output results in JSON format")

	return cmd
}

// runCrackCmd executes the crack command.
func runCrackCmd(cmd *cobra.Command, args []string) error {
	encoding, err := cmd.Flags().GetString("encoding")
	if err != nil {
		return err
	}
	sample, err := cmd.Flags().GetString("sample")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ciphertexts := args
	if len(ciphertexts) == 0 {
		src, err := source.Load(source.StdinName, cmd.InOrStdin())
		if err != nil {
			return err
		}
		ciphertexts = src.Lines
	}
	if len(ciphertexts) == 0 {
		return config.ErrNoCiphertext
	}

	c, _, err := newCracker(encoding, sample, logger)
	if err != nil {
		return err
	}

	results := make([]crackResult, 0, len(ciphertexts))
	for _, hex := range ciphertexts {
		best, err := c.Crack(hex)
		if err != nil {
			return fmt.Errorf("%q: %w", hex, err)
		}
		results = append(results, crackResult{Ciphertext: hex, Candidate: best})
	}

	out := cmd.OutOrStdout()
	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	for _, r := range results {
		fmt.Fprintf(out, "key=0x%02x score=%d plaintext=%q\n", r.Key, r.Score, r.Text)
	}
	return nil
}
