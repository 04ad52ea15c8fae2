package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/xorscan/internal/codec"
)

func TestHexToBase64Cmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "converts challenge input",
			args: []string{"49276d206b696c6c696e6720796f757220627261696e206c696b65206120706f69736f6e6f7573206d757368726f6f6d"},
			want: "SSdtIGtpbGxpbmcgeW91ciBicmFpbiBsaWtlIGEgcG9pc29ub3VzIG11c2hyb29t\n",
		},
		{
			name: "one line per argument",
			args: []string{"4d616e", "4d61"},
			want: "TWFu\nTWE=\n",
		},
		{
			name:    "rejects malformed hex",
			args:    []string{"zz"},
			wantErr: true,
		},
		{
			name:    "requires an argument",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := executeCommand(t, NewHexToBase64Cmd(), "", tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && out != tt.want {
				t.Errorf("expected %q, got %q", tt.want, out)
			}
		})
	}
}

func TestBase64ToHexCmd(t *testing.T) {
	t.Parallel()

	t.Run("reverses hex2base64", func(t *testing.T) {
		t.Parallel()
		out, err := executeCommand(t, NewBase64ToHexCmd(), "",
			"SSdtIGtpbGxpbmcgeW91ciBicmFpbiBsaWtlIGEgcG9pc29ub3VzIG11c2hyb29t", "TWE=")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "49276d206b696c6c696e6720796f757220627261696e206c696b65206120706f69736f6e6f7573206d757368726f6f6d\n4d61\n"
		if out != want {
			t.Errorf("expected %q, got %q", want, out)
		}
	})

	t.Run("rejects malformed base64", func(t *testing.T) {
		t.Parallel()
		_, err := executeCommand(t, NewBase64ToHexCmd(), "", "TW!u")
		if !errors.Is(err, codec.ErrDecode) {
			t.Errorf("expected ErrDecode, got %v", err)
		}
	})
}

func TestXorCmd(t *testing.T) {
	t.Parallel()

	t.Run("xors equal length inputs", func(t *testing.T) {
		t.Parallel()
		out, err := executeCommand(t, NewXorCmd(), "",
			"1c0111001f010100061a024b53535009181c",
			"686974207468652062756c6c277320657965")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(out) != "746865206b696420646f6e277420706c6179" {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("truncates to the shorter input", func(t *testing.T) {
		t.Parallel()
		out, err := executeCommand(t, NewXorCmd(), "", "ff00ff", "0f0f")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(out) != "f00f" {
			t.Errorf("expected f00f, got %q", out)
		}
	})

	t.Run("requires two arguments", func(t *testing.T) {
		t.Parallel()
		if _, err := executeCommand(t, NewXorCmd(), "", "ff"); err == nil {
			t.Error("expected error")
		}
	})
}
