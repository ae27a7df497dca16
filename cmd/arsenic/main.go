// Package main provides the arsenic CLI entry point.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Antidote1911/arsenic"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "arsenic",
		Short: "Arsenic - triple-cascade file encryption",
		Long: `Arsenic encrypts and decrypts files with a three-layer AEAD cascade
(ChaCha20-Poly1305, then AES-256/EAX, then Serpent/GCM) keyed from a
passphrase via Argon2id.

Encrypted containers are self-describing: the KDF cost, salt, and nonce
seed needed to reverse the cascade travel in the file itself.`,
		Version: Version,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "crypt", Title: "Encrypt/Decrypt:"})

	enc := encryptCmd()
	enc.GroupID = "crypt"
	rootCmd.AddCommand(enc)

	dec := decryptCmd()
	dec.GroupID = "crypt"
	rootCmd.AddCommand(dec)

	ver := verifyCmd()
	ver.GroupID = "crypt"
	rootCmd.AddCommand(ver)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func encryptCmd() *cobra.Command {
	var (
		preset  string
		armor   bool
		keep    bool
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "encrypt <file>",
		Short: "Encrypt a file into an arsenic container",
		Long: `Encrypt a file into an arsenic container.

The destination defaults to the source path with a .arsn suffix and is
never overwritten; choose -o to pick a different destination.

Examples:
  arsenic encrypt report.pdf
  arsenic encrypt report.pdf --preset sensitive -o secret.arsn
  arsenic encrypt report.pdf --armor --keep`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			output := outPath
			if output == "" {
				output = input + ".arsn"
			}

			kdfPreset, ok := arsenic.ParsePreset(preset)
			if !ok {
				return fmt.Errorf("unknown preset %q (want interactive, moderate, or sensitive)", preset)
			}

			passphrase, err := readPassphrase(true)
			if err != nil {
				return err
			}

			orch := arsenic.NewOrchestrator()
			handle, err := orch.Submit(arsenic.Job{
				Mode:                    arsenic.Encrypt,
				InputPath:               input,
				OutputPath:              output,
				Passphrase:              passphrase,
				KDFParams:               kdfPreset.Params(),
				Armor:                   armor,
				DeleteOriginalOnSuccess: !keep,
			})
			if err != nil {
				return err
			}
			if err := handle.Await(); err != nil {
				return err
			}
			fmt.Println(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "interactive", "KDF cost preset: interactive, moderate, or sensitive")
	cmd.Flags().BoolVar(&armor, "armor", false, "wrap the container in an ASCII-armored envelope")
	cmd.Flags().BoolVar(&keep, "keep", false, "keep the plaintext source after a successful encryption")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "destination path (default: <file>.arsn)")

	return cmd
}

func decryptCmd() *cobra.Command {
	var (
		keep    bool
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "decrypt <file>",
		Short: "Decrypt an arsenic container",
		Long: `Decrypt an arsenic container back into plaintext.

The destination is given with -o, or defaults to the source path with
its final extension (such as .arsn) stripped, or with .out appended when
the source has no extension; it is never overwritten.

Examples:
  arsenic decrypt secret.arsn
  arsenic decrypt secret.arsn -o report.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			output := outPath
			if output == "" {
				output = strings.TrimSuffix(input, filepath.Ext(input))
				if output == input {
					output = input + ".out"
				}
			}

			passphrase, err := readPassphrase(false)
			if err != nil {
				return err
			}

			orch := arsenic.NewOrchestrator()
			handle, err := orch.Submit(arsenic.Job{
				Mode:                    arsenic.Decrypt,
				InputPath:               input,
				OutputPath:              output,
				Passphrase:              passphrase,
				DeleteOriginalOnSuccess: !keep,
			})
			if err != nil {
				return err
			}
			if err := handle.Await(); err != nil {
				return err
			}
			fmt.Println(output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&keep, "keep", true, "keep the container after a successful decryption")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "destination path")

	return cmd
}

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <file>",
		Short: "Check that a container decrypts cleanly without writing output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			passphrase, err := readPassphrase(false)
			if err != nil {
				return err
			}
			if err := arsenic.VerifyContainer(args[0], passphrase); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
	return cmd
}

// readPassphrase prompts for a passphrase with echo disabled, asking for it
// a second time to confirm when confirm is set.
func readPassphrase(confirm bool) (*arsenic.SecretBytes, error) {
	fmt.Fprint(os.Stderr, "Passphrase: ")
	pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	if confirm {
		fmt.Fprint(os.Stderr, "Confirm passphrase: ")
		confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("failed to read confirmation: %w", err)
		}
		if string(pwBytes) != string(confirmBytes) {
			return nil, fmt.Errorf("passphrases do not match")
		}
	}

	return arsenic.NewSecretBytes(pwBytes), nil
}
