// Package main provides the entry point for the berdump CLI, a debugging
// tool that decodes and encodes BER data.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/oba-ldap/bercodec/internal/config"
	"github.com/oba-ldap/bercodec/internal/logging"
)

func main() {
	exitCode := run(os.Args)
	os.Exit(exitCode)
}

// run executes the CLI and returns an exit code.
// This is separated from main() to facilitate testing.
func run(args []string) int {
	return runWith(args, os.Stdin, os.Stdout, os.Stderr)
}

func runWith(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if len(args) > 1 {
		root.SetArgs(args[1:])
	} else {
		root.SetArgs([]string{})
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	config *config.Config
}

// load reads the configuration file, if any. Flags given on the command
// line take precedence over the file.
func (o *globalOptions) load(cmd *cobra.Command) error {
	o.config = config.DefaultConfig()
	if o.configPath != "" {
		cfg, err := config.LoadConfig(o.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if errs := config.ValidateConfig(cfg); len(errs) > 0 {
			return fmt.Errorf("invalid config %s: %w", o.configPath, errors.Join(errs...))
		}
		o.config = cfg
	}

	if !cmd.Flags().Changed("log-level") {
		o.logLevel = o.config.Logging.Level
	}
	if !cmd.Flags().Changed("log-format") {
		o.logFormat = o.config.Logging.Format
	}
	return nil
}

func (o *globalOptions) logger(cmd *cobra.Command) logging.Logger {
	return logging.New(logging.Config{
		Level:  o.logLevel,
		Format: o.logFormat,
		Output: cmd.ErrOrStderr(),
	}).WithFields("command", cmd.Name())
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "berdump",
		Short: "berdump - inspect and build BER encoded data",
		Long: `berdump decodes BER (ASN.1 Basic Encoding Rules) data into a readable
tree and encodes simple values for use in tests.

Examples:
  berdump decode 3006020101420100
  berdump decode --ldap < message.hex
  berdump encode int -- -129
  berdump encode json '[1, "two", [true, null]]'
  berdump --config berdump.yaml decode < capture.hex`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format: text, json")

	root.AddCommand(
		newDecodeCmd(opts),
		newEncodeCmd(opts),
		newVersionCmd(),
	)
	return root
}
