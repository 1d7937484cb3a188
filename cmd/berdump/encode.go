package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oba-ldap/bercodec/internal/ber"
)

type encodeOptions struct {
	raw bool
}

func newEncodeCmd(global *globalOptions) *cobra.Command {
	opts := &encodeOptions{}

	cmd := &cobra.Command{
		Use:   "encode KIND [VALUE]",
		Short: "Encode a value and print its BER bytes as hex",
		Long: `Encode a single value.

Kinds:
  bool     true or false
  int      decimal, or hex with a 0x prefix; any magnitude
  string   text, encoded as an OCTET STRING
  binary   hex bytes, encoded as an OCTET STRING
  null     takes no value
  oid      dotted object identifier, e.g. 1.3.6.1.4.1.1466.20037
  json     JSON value: arrays become SEQUENCEs, numbers INTEGERs

Example:
  berdump encode json '[1, "Administrator", true]'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			var value string
			if len(args) == 2 {
				value = args[1]
			} else if kind != "null" {
				return fmt.Errorf("kind %q needs a value", kind)
			}

			v, err := parseValue(kind, value)
			if err != nil {
				return err
			}

			data := ber.Encode(v)
			global.logger(cmd).Debug("encoded value", "kind", kind, "length", len(data))

			out := cmd.OutOrStdout()
			if opts.raw {
				_, err = out.Write(data)
				return err
			}
			_, err = fmt.Fprintln(out, hex.EncodeToString(data))
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Write binary BER instead of hex")

	return cmd
}

// parseValue builds the value described by kind and its textual form.
func parseValue(kind, value string) (ber.Value, error) {
	switch kind {
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q", value)
		}
		return ber.NewBoolean(b), nil

	case "int":
		n, ok := new(big.Int).SetString(value, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", value)
		}
		return ber.NewBigInteger(n), nil

	case "string":
		return ber.NewString(value), nil

	case "binary":
		data, err := parseHex(value)
		if err != nil {
			return nil, err
		}
		return ber.NewBinary(data), nil

	case "null":
		if value != "" {
			return nil, fmt.Errorf("null takes no value")
		}
		return ber.NewNull(), nil

	case "oid":
		return ber.ParseOID(value)

	case "json":
		return parseJSON(value)

	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
}

// parseJSON converts a JSON document into a value. Numbers must be
// integers; objects have no BER counterpart and are rejected.
func parseJSON(text string) (ber.Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("invalid json: trailing data")
	}

	native, err := fromJSON(doc)
	if err != nil {
		return nil, err
	}
	return ber.ValueOf(native)
}

func fromJSON(x any) (any, error) {
	switch x := x.(type) {
	case json.Number:
		n, ok := new(big.Int).SetString(x.String(), 10)
		if !ok {
			return nil, fmt.Errorf("json number %s is not an integer", x)
		}
		return n, nil
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			v, err := fromJSON(item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case map[string]any:
		return nil, fmt.Errorf("json objects cannot be encoded")
	default:
		// string, bool and nil map directly
		return x, nil
	}
}
