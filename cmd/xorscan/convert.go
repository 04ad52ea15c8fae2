package main

import (
	"fmt"

	"github.com/nao1215/xorscan/internal/codec"
	"github.com/nao1215/xorscan/internal/xor"
	"github.com/spf13/cobra"
)

// NewHexToBase64Cmd creates the hex2base64 command.
func NewHexToBase64Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hex2base64 <hex>...",
		Short: "Convert hex strings to base64",
		Long: `Convert decodes each hex argument and prints it as standard padded base64,
one per line.

Examples:
  xorscan hex2base64 4d616e`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				b64, err := codec.HexToBase64(arg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), b64)
			}
			return nil
		},
	}
}

// NewBase64ToHexCmd creates the base642hex command.
func NewBase64ToHexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "base642hex <base64>...",
		Short: "Convert base64 strings to hex",
		Long: `Convert decodes each standard padded base64 argument and prints it as
lowercase hex, one per line. It reverses hex2base64.

Examples:
  xorscan base642hex TWFu`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				h, err := codec.Base64ToHex(arg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), h)
			}
			return nil
		},
	}
}

// NewXorCmd creates the xor command.
func NewXorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xor <hex> <hex>",
		Short: "XOR two hex strings",
		Long: `Xor combines two hex strings byte by byte and prints the result as hex.
The output is as long as the shorter input.

Examples:
  xorscan xor 1c0111001f010100061a024b53535009181c 686974207468652062756c6c277320657965`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := xor.FixedHex(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
