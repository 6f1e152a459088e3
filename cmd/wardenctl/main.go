// wardenctl is the operator client for the warden packet-inspection
// engine's unix-socket control channel.
//
// One-shot mode sends a single command and exits:
//
//	wardenctl -c "set-filter \"tcp port 80\""
//
// Without -c the client runs an interactive shell with history and tab
// completion over the commands the connected engine advertises.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/danmuck/wardenctl/internal/observability"
	"github.com/danmuck/wardenctl/internal/prompt"
	"github.com/danmuck/wardenctl/internal/protocol"
	"github.com/danmuck/wardenctl/internal/protocol/session"
	"github.com/danmuck/wardenctl/internal/shell"
)

const appVersion = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		socket      string
		commandLine string
		configPath  string
		verbose     bool
		noColor     bool
		showVersion bool
	)

	fs := pflag.NewFlagSet("wardenctl", pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVarP(&socket, "socket", "s", "", "path to the engine's control socket")
	fs.StringVarP(&commandLine, "command", "c", "", "send one command and exit")
	fs.StringVar(&configPath, "config", "", "path to a wardenctl TOML config file")
	fs.BoolVarP(&verbose, "verbose", "v", false, "log wire traffic at debug level")
	fs.BoolVar(&noColor, "no-color", false, "disable colored output")
	fs.BoolVarP(&showVersion, "version", "V", false, "print version and exit")
	fs.BoolP("help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(fs)
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	if help, _ := fs.GetBool("help"); help {
		printHelp(fs)
		return 0
	}
	if showVersion {
		fmt.Printf("wardenctl %s (protocol %s)\n", appVersion, protocol.ClientVersion)
		return 0
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected argument: %s\n", fs.Arg(0))
		return 2
	}

	cfg := defaultCLIConfig()
	if configPath != "" {
		loaded, err := loadFileConfig(configPath, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 2
		}
		cfg = loaded
	}
	if fs.Changed("socket") {
		cfg.Socket = socket
	}
	if fs.Changed("no-color") {
		cfg.NoColor = noColor
	}
	if verbose {
		cfg.Verbose = true
	}

	level := zerolog.WarnLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	observability.InitConsoleLogger("wardenctl", cfg.NoColor, level)

	sess := session.New(session.DefaultConfig())
	if err := sess.Connect(cfg.Socket); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if commandLine != "" {
		return runOneShot(sess, commandLine)
	}
	return runInteractive(sess, cfg)
}

// runOneShot maps the reply contract to exit codes: 0 on OK, 1 on NOK
// or any failure.
func runOneShot(sess *session.Session, line string) int {
	defer sess.Close()
	reply, err := shell.OneShot(sess, line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	fmt.Println(shell.FormatPayload(reply.Message))
	if !reply.OK() {
		return 1
	}
	return 0
}

func runInteractive(sess *session.Session, cfg cliConfig) int {
	editor, histPath := newEditor(cfg)
	sh := shell.New(shell.Config{
		Conn:   sess,
		Editor: editor,
		Out:    os.Stdout,
	})
	err := sh.Run()

	if ed, ok := editor.(*prompt.Editor); ok && histPath != "" {
		if saveErr := shell.SaveHistory(histPath, ed.History()); saveErr != nil {
			log.Warn().Err(saveErr).Str("path", histPath).Msg("save history")
		}
	}
	if err != nil {
		return 1
	}
	return 0
}

// newEditor picks the terminal editor when stdin is a TTY, the plain
// reader otherwise so piped scripts behave.
func newEditor(cfg cliConfig) (shell.LineEditor, string) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return shell.NewReaderEditor(os.Stdin, os.Stdout, cfg.Prompt), ""
	}
	histPath := cfg.HistoryFile
	if histPath == "" {
		histPath = defaultHistoryPath()
	}
	var entries []string
	if histPath != "" {
		loaded, err := shell.LoadHistory(histPath)
		if err != nil {
			log.Warn().Err(err).Str("path", histPath).Msg("load history")
		} else {
			entries = loaded
		}
	}
	ed := prompt.New(prompt.Config{
		Prompt:     cfg.Prompt,
		History:    entries,
		MaxHistory: shell.MaxHistoryEntries,
		NoColor:    cfg.NoColor,
	})
	return ed, histPath
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wardenctl_history")
}

func printHelp(fs *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `wardenctl — operator client for the warden engine control socket.

Without -c, runs an interactive shell on the control channel: command
history, tab completion over the engine's advertised commands, quit or
exit (or Ctrl-D) to leave.

With -c, sends exactly one command, prints the reply payload, and exits
0 on OK and 1 on NOK or any failure.

Usage:
  wardenctl [--socket PATH] [--config FILE] [-c "COMMAND ARGS"]

Flags:
%s`, fs.FlagUsages())
}
