package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oba-ldap/bercodec/internal/ber"
	"github.com/oba-ldap/bercodec/internal/ldap"
	"github.com/oba-ldap/bercodec/internal/logging"
)

// maxElementSize bounds a single top-level element read from input.
const maxElementSize = 16 << 20

type decodeOptions struct {
	raw    bool
	ldap   bool
	format string
}

func newDecodeCmd(global *globalOptions) *cobra.Command {
	opts := &decodeOptions{}

	cmd := &cobra.Command{
		Use:   "decode [HEX]",
		Short: "Decode BER data and print the value tree",
		Long: `Decode every top-level BER element in the input and print it.

Input is a hex string given as the argument, or read from stdin when no
argument is given. Whitespace in hex input is ignored. With --raw, stdin is
read as binary.

Example:
  berdump decode 3024020101601f020103040d41646d696e6973747261746f72800b61645f69735f626f677573 --ldap

The --format and --ldap defaults, and any extra tag rules, can be set in
the configuration file given with --config.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.raw && len(args) > 0 {
				return fmt.Errorf("--raw reads stdin and takes no argument")
			}
			cfg := global.config
			if !cmd.Flags().Changed("format") {
				opts.format = cfg.Decode.Format
			}
			if !cmd.Flags().Changed("ldap") {
				opts.ldap = cfg.Decode.LDAP
			}

			render, err := rendererFor(opts.format)
			if err != nil {
				return err
			}

			input, err := decodeInput(cmd.InOrStdin(), args, opts.raw)
			if err != nil {
				return err
			}

			var base *ber.Syntax
			if opts.ldap {
				base = ldap.Syntax
			}
			syntax, err := cfg.BuildSyntax(base)
			if err != nil {
				return err
			}

			return decodeStream(input, syntax, opts.ldap, render, cmd.OutOrStdout(), global.logger(cmd))
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Read binary BER from stdin instead of hex")
	cmd.Flags().BoolVar(&opts.ldap, "ldap", false, "Interpret tags with the LDAP syntax")
	cmd.Flags().StringVar(&opts.format, "format", "tree", "Output format: tree, table")

	return cmd
}

// decodeInput returns a reader over the binary input.
func decodeInput(stdin io.Reader, args []string, raw bool) (io.Reader, error) {
	if raw {
		return stdin, nil
	}

	var text string
	if len(args) > 0 {
		text = args[0]
	} else {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}

	data, err := parseHex(text)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// parseHex decodes hex text, ignoring whitespace and an optional 0x prefix.
func parseHex(text string) ([]byte, error) {
	text = strings.Join(strings.Fields(text), "")
	text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	data, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}

// decodeStream splits r into top-level elements and renders each one.
func decodeStream(r io.Reader, syntax *ber.Syntax, asLDAP bool, render renderer, w io.Writer, logger logging.Logger) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxElementSize)
	scanner.Split(ber.ScanElements)

	offset := 0
	count := 0
	for scanner.Scan() {
		element := scanner.Bytes()

		v, _, err := ber.Decode(element, syntax)
		if err != nil {
			return fmt.Errorf("element at offset %d: %w", offset, err)
		}
		logger.Debug("decoded element", "offset", offset, "length", len(element), "tag", v.Tag().String())

		if count > 0 {
			fmt.Fprintln(w)
		}
		if asLDAP {
			describeMessage(w, element, logger)
		}
		if err := render(w, v); err != nil {
			return err
		}

		offset += len(element)
		count++
	}
	if err := scanner.Err(); err != nil {
		if ber.IsTruncated(err) {
			return fmt.Errorf("incomplete element at offset %d: %w", offset, err)
		}
		return fmt.Errorf("element at offset %d: %w", offset, err)
	}

	if count == 0 {
		logger.Warn("no input")
	}
	return nil
}

// describeMessage prints a one-line LDAPMessage summary when element is
// one.
func describeMessage(w io.Writer, element []byte, logger logging.Logger) {
	msg, _, err := ldap.ReadMessage(element)
	if err != nil {
		logger.Info("element is not an LDAP message", "error", err)
		return
	}
	fmt.Fprintf(w, "# message %d: %s", msg.ID, msg.OperationType())
	if len(msg.Controls) > 0 {
		fmt.Fprintf(w, " (%d controls)", len(msg.Controls))
	}
	fmt.Fprintln(w)
}
