package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/rami3l/loxvm/config"
	e "github.com/rami3l/loxvm/errors"
	"github.com/rami3l/loxvm/utils"
	"github.com/rami3l/loxvm/vm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	easy "github.com/t-tomalak/logrus-easy-formatter"
)

type flags struct {
	verbosity  string
	configPath string
	trace      bool
	printCode  bool
	noColor    bool
}

// settings is resolved once per invocation, before any subcommand runs.
var settings config.Config

func App() (app *cobra.Command) {
	app = &cobra.Command{
		Use:           "loxvm [FILE]",
		Args:          maxArgs(1),
		Short:         "loxvm: A Lox bytecode interpreter in Go.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	app.Flags().SortFlags = true

	var f flags
	pflags := app.PersistentFlags()
	pflags.StringVarP(&f.verbosity, "verbosity", "v", config.DefaultVerbosity, "logging verbosity")
	pflags.StringVar(&f.configPath, "config", "", "path to a .toml or .yaml config file")
	pflags.BoolVar(&f.trace, "trace", false, "print the stack and each instruction while executing")
	pflags.BoolVar(&f.printCode, "print-code", false, "log the disassembly of compiled code")
	pflags.BoolVar(&f.noColor, "no-color", false, "disable colored output")

	app.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &e.UsageError{Reason: err.Error()}
	})

	app.PersistentPreRunE = func(cmd *cobra.Command, _ []string) (err error) {
		settings, err = resolveSettings(cmd, f)
		if err != nil {
			return err
		}
		setupLogging(cmd, settings.Verbosity)
		setupColor(settings.Color)
		return nil
	}

	app.RunE = func(cmd *cobra.Command, args []string) error {
		vm_ := newVM(cmd)
		if len(args) == 0 && isTerminalIO(cmd) {
			return vm_.REPL(green(">> "))
		}
		src, err := readSource(cmd, args)
		if err != nil {
			return err
		}
		_, err = vm_.Interpret(src)
		return err
	}

	app.AddCommand(tokensCmd(), disasmCmd(), buildCmd(), execCmd())
	return
}

func tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [FILE]",
		Args:  maxArgs(1),
		Short: "Print the tokens of a script",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			return vm.DumpTokens(cmd.OutOrStdout(), src)
		},
	}
}

func disasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm [FILE]",
		Args:  maxArgs(1),
		Short: "Compile a script and print its bytecode",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			chunk, err := vm.NewParser().Compile(src)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), chunk.Disassemble(sourceName(args)))
			return nil
		},
	}
}

func buildCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "build FILE",
		Args:  exactArgs(1),
		Short: "Compile a script into a bytecode image",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			chunk, err := vm.NewParser().Compile(src)
			if err != nil {
				return err
			}
			data, err := vm.MarshalChunk(chunk)
			if err != nil {
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ImageExt
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			logrus.Infof("wrote %s", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "image path (default: FILE with the "+ImageExt+" extension)")
	return cmd
}

func execCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec IMAGE",
		Args:  exactArgs(1),
		Short: "Run a bytecode image",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			chunk, err := vm.UnmarshalChunk(data)
			if err != nil {
				return err
			}
			_, err = newVM(cmd).Run(chunk)
			return err
		},
	}
}

// ImageExt is the default extension of bytecode images.
const ImageExt = ".loxc"

func newVM(cmd *cobra.Command) *vm.VM {
	return vm.NewVM(
		vm.WithTrace(settings.TraceExecution),
		vm.WithPrintCode(settings.PrintCode),
		vm.WithStdout(cmd.OutOrStdout()),
		vm.WithTraceOutput(cmd.ErrOrStderr()),
	)
}

// resolveSettings layers the config file, the environment and the explicitly
// set flags on top of the defaults, in that order.
func resolveSettings(cmd *cobra.Command, f flags) (cfg config.Config, err error) {
	cfg = config.Default()
	if f.configPath != "" {
		if cfg, err = config.Load(f.configPath); err != nil {
			return cfg, err
		}
	}
	if err = cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, &e.UsageError{Reason: err.Error()}
	}

	changed := func(name string) bool { return cmd.Flags().Changed(name) }
	if changed("verbosity") {
		cfg.Verbosity = f.verbosity
	}
	if changed("trace") {
		cfg.TraceExecution = f.trace
	}
	if changed("print-code") {
		cfg.PrintCode = f.printCode
	}
	if changed("no-color") {
		cfg.Color = utils.Ref(!f.noColor)
	}
	return cfg, nil
}

func setupLogging(cmd *cobra.Command, verbosity string) {
	verbosityLvl, err := logrus.ParseLevel(verbosity)
	if err != nil {
		verbosityLvl, _ = logrus.ParseLevel(config.DefaultVerbosity)
	}
	logrus.SetLevel(verbosityLvl)
	logrus.SetFormatter(&easy.Formatter{LogFormat: "%lvl% %msg%\n"})
	logrus.SetOutput(cmd.ErrOrStderr())
}

func setupColor(enabled *bool) {
	if enabled != nil {
		color.NoColor = !*enabled
	}
}

var (
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

// Execute runs app and returns the process exit code.
func Execute(app *cobra.Command) int {
	if err := app.Execute(); err != nil {
		logrus.Error(red(err))
		return e.ExitCode(err)
	}
	return e.ExitOK
}

func maxArgs(n int) cobra.PositionalArgs   { return usageArgs(cobra.MaximumNArgs(n)) }
func exactArgs(n int) cobra.PositionalArgs { return usageArgs(cobra.ExactArgs(n)) }

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &e.UsageError{Reason: err.Error()}
		}
		return nil
	}
}
