// Command koto is the Koto REPL/CLI front end: it reads a line with
// chzyer/readline, compiles and runs it against a single long-lived Vm,
// and prints the result or a formatted error.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/koto-lang/koto/corelib"
	"github.com/koto-lang/koto/vm"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "koto: invalid config: %v\n", err)
		return 1
	}

	logger := buildLogger()
	defer logger.Sync()

	scriptDir := ""
	scriptPath := ""
	if len(args) > 0 {
		scriptPath = args[0]
		scriptDir = filepath.Dir(scriptPath)
	}
	libSettings := corelib.Settings{
		ScriptArgs: args,
		ScriptDir:  scriptDir,
		ScriptPath: scriptPath,
	}

	if scriptPath != "" {
		kvm := vm.New(vm.WithLogger(logger), vm.WithSettings(vm.Settings{
			Stdout: os.Stdout,
			Stderr: os.Stderr,
			Stdin:  os.Stdin,
		}))
		corelib.Register(kvm, libSettings)
		return runScript(kvm, scriptPath, logger)
	}
	return runRepl(cfg, logger, libSettings)
}

func buildLogger() *zap.SugaredLogger {
	// Logging is off by default; set
	// KOTO_LOG=debug to see sibling-VM spawn and generator start entries.
	if os.Getenv("KOTO_LOG") == "" {
		return zap.NewNop().Sugar()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

func runScript(kvm *vm.Vm, path string, logger *zap.SugaredLogger) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "koto: %v\n", err)
		return 1
	}
	result, err := vm.CompileAndRun(kvm, string(src))
	if err != nil {
		logger.Warnw("script failed", "path", path, "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	_ = result
	return 0
}

func runRepl(cfg replConfig, logger *zap.SugaredLogger, libSettings corelib.Settings) int {
	useColor := cfg.Color && term.IsTerminal(int(os.Stdout.Fd()))

	if dir := filepath.Dir(cfg.HistoryFile); dir != "." {
		os.MkdirAll(dir, 0o755)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "koto: %v\n", err)
		return 1
	}
	defer rl.Close()

	// Route the Vm's output through readline's own writers rather than
	// os.Stdout/os.Stderr directly, so script output interleaves correctly
	// with the line editor instead of corrupting the prompt.
	kvm := vm.New(vm.WithLogger(logger), vm.WithSettings(vm.Settings{
		Stdout: rl.Stdout(),
		Stderr: rl.Stderr(),
		Stdin:  os.Stdin,
	}))
	corelib.Register(kvm, libSettings)

	fmt.Fprintln(kvm.Stderr(), "Koto REPL — Ctrl-D to exit")

	for {
		line, err := rl.Readline()
		switch err {
		case readline.ErrInterrupt:
			continue
		case io.EOF:
			return 0
		case nil:
		default:
			fmt.Fprintf(os.Stderr, "koto: %v\n", err)
			return 1
		}

		if line == "" {
			continue
		}

		result, err := vm.CompileAndRun(kvm, line)
		if err != nil {
			logger.Debugw("repl eval failed", "error", err)
			printErr(kvm.Stderr(), useColor, err)
			continue
		}
		printResult(kvm.Stdout(), useColor, result.String())
	}
}

func printResult(w io.Writer, useColor bool, s string) {
	if useColor {
		fmt.Fprintln(w, color.GreenString(s))
		return
	}
	fmt.Fprintln(w, s)
}

func printErr(w io.Writer, useColor bool, err error) {
	msg := fmt.Sprintf("error: %v", err)
	if useColor {
		fmt.Fprintln(w, color.RedString(msg))
		return
	}
	fmt.Fprintln(w, msg)
}
