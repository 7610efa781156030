// Package main provides the aqimc command line interface for the AQIMC cipher.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	aqimc "github.com/bilalwebs/AQIMC-Encryption-System"
	"github.com/bilalwebs/AQIMC-Encryption-System/alphabet"
	"github.com/bilalwebs/AQIMC-Encryption-System/core"
	"github.com/bilalwebs/AQIMC-Encryption-System/pipeline"
	"github.com/bilalwebs/AQIMC-Encryption-System/server"
	"github.com/bilalwebs/AQIMC-Encryption-System/server/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aqimc",
		Short: "AQIMC layered text cipher CLI",
		Long: `AQIMC encrypts letter text through four keyed layers:
Dynamic Key-Shift Substitution, Non-Linear Relational Pair Encoding,
Variable Block Matrix Diffusion and Key-Driven Positional Permutation.

This CLI provides tools for encryption, decryption, key generation and
running the HTTP API.`,
		Version:       aqimc.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newEncryptCommand())
	rootCmd.AddCommand(newDecryptCommand())
	rootCmd.AddCommand(newKeygenCommand())
	rootCmd.AddCommand(newSelftestCommand())
	rootCmd.AddCommand(newServeCommand())
	return rootCmd
}

func newEncryptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt text through the four cipher layers",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, keys, err := textAndKeysFromFlags(cmd)
			if err != nil {
				return err
			}

			result, err := pipeline.Encrypt(text, keys)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(out, result)
			}
			if showTrace, _ := cmd.Flags().GetBool("trace"); showTrace {
				printTrace(out, result.Trace)
			}
			fmt.Fprintln(out, result.Ciphertext)
			return nil
		},
	}
	addCipherFlags(cmd)
	return cmd
}

func newDecryptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt ciphertext by inverting the four layers",
		Long: `Decrypt ciphertext by inverting the four layers in reverse order.

Pair encoding is lossy for some inputs: a pair with no valid preimage
passes through unchanged and is reported as a warning on stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, keys, err := textAndKeysFromFlags(cmd)
			if err != nil {
				return err
			}

			result, err := pipeline.Decrypt(text, keys)
			if err != nil {
				return err
			}

			for _, warning := range result.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", warning)
			}

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return printJSON(out, result)
			}
			if showTrace, _ := cmd.Flags().GetBool("trace"); showTrace {
				printTrace(out, result.Trace)
			}
			fmt.Fprintln(out, result.Plaintext)
			return nil
		},
	}
	addCipherFlags(cmd)
	return cmd
}

func newKeygenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate letter keys for the cipher layers",
		Long: `Generate uniform random letter keys, or deterministic keys derived
from a seed phrase. Each key of a --count batch uses an indexed
derivation domain, so the same seed always yields the same batch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			length, _ := cmd.Flags().GetInt("length")
			count, _ := cmd.Flags().GetInt("count")
			seed, _ := cmd.Flags().GetString("seed")

			if length < 1 {
				return fmt.Errorf("length must be at least 1, got %d", length)
			}
			if count < 1 {
				return fmt.Errorf("count must be at least 1, got %d", count)
			}

			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				key, err := makeKey(seed, i, length)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, key)
			}
			return nil
		},
	}
	cmd.Flags().Int("length", 16, "Key length in letters")
	cmd.Flags().Int("count", 1, "Number of keys to generate")
	cmd.Flags().String("seed", "", "Derive keys deterministically from this phrase")
	return cmd
}

func newSelftestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the built-in encrypt/decrypt round-trip check",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := pipeline.SelfTest()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "plaintext: %s\n", result.Plaintext)
			fmt.Fprintf(out, "encrypted: %s\n", result.Encrypted)
			fmt.Fprintf(out, "decrypted: %s\n", result.Decrypted)
			if !result.Match {
				fmt.Fprintln(out, "✗ round trip mismatch")
				return fmt.Errorf("self test failed")
			}
			fmt.Fprintln(out, "✓ round trip ok")
			return nil
		},
	}
}

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the AQIMC HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.BuildViper(cmd.Flags())
			if err != nil {
				return err
			}
			cfg, err := config.NewConfig(v)
			if err != nil {
				return err
			}

			logger, err := server.NewLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(logger, cfg).Run(ctx)
		},
	}
	cmd.Flags().AddFlagSet(config.BuildFlagSet())
	return cmd
}

// addCipherFlags registers the flags shared by encrypt and decrypt.
func addCipherFlags(cmd *cobra.Command) {
	cmd.Flags().String("text", "", "Text to process")
	cmd.Flags().String("key1", "", "Substitution layer key")
	cmd.Flags().String("key2", "", "Pair encoding layer key")
	cmd.Flags().String("key3", "", "Matrix diffusion layer key")
	cmd.Flags().String("key4", "", "Permutation layer key")
	cmd.Flags().Bool("trace", false, "Print the per-layer trace")
	cmd.Flags().Bool("json", false, "Print the full result as JSON")
	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("key1")
	_ = cmd.MarkFlagRequired("key2")
	_ = cmd.MarkFlagRequired("key3")
	_ = cmd.MarkFlagRequired("key4")
}

// textAndKeysFromFlags reads and validates the cipher inputs the same way
// the HTTP API does.
func textAndKeysFromFlags(cmd *cobra.Command) (string, aqimc.Keys, error) {
	text, _ := cmd.Flags().GetString("text")
	text = strings.TrimSpace(text)
	if err := core.ValidateText(text); err != nil {
		return "", aqimc.Keys{}, err
	}

	var values [4]string
	for i, name := range []string{"key1", "key2", "key3", "key4"} {
		value, _ := cmd.Flags().GetString(name)
		value = strings.TrimSpace(value)
		if err := core.ValidateKey(value); err != nil {
			return "", aqimc.Keys{}, fmt.Errorf("%s: %w", name, err)
		}
		values[i] = value
	}

	return text, aqimc.Keys{
		Key1: values[0],
		Key2: values[1],
		Key3: values[2],
		Key4: values[3],
	}, nil
}

// makeKey produces the i-th key of a keygen batch.
func makeKey(seed string, i, length int) (string, error) {
	if seed == "" {
		return alphabet.RandomKey(length)
	}
	return alphabet.DeriveKey(fmt.Sprintf("%s/%d", seed, i), length), nil
}

func printTrace(w io.Writer, trace aqimc.Trace) {
	for _, e := range trace {
		fmt.Fprintf(w, "%s: %s -> %s (%s)\n", e.Layer, e.Input, e.Output, e.Description)
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}
