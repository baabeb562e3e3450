// Package handlers implements the followup subcommands. Each command parses
// its own flag set, calls the services and prints to App.Out.
package handlers

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fisk/followup/internal/config"
	"github.com/fisk/followup/internal/services"
	"github.com/fisk/followup/internal/store"
)

// ErrUsage marks a bad command line. The message has already been printed.
var ErrUsage = errors.New("usage error")

// App carries what every command needs.
type App struct {
	Cfg      config.Config
	Log      *zap.Logger
	Store    *store.Store
	Contacts *services.Contacts
	Out      io.Writer
	Err      io.Writer
	Now      func() time.Time
}

type command struct {
	usage string
	run   func(a *App, args []string) error
}

var commands = map[string]command{
	"add":         {"add --name NAME [fields]", (*App).Add},
	"update":      {"update --id ID [fields]", (*App).Update},
	"delete":      {"delete --id ID", (*App).Delete},
	"list":        {"list [filters] [--sort COLUMN [--desc]]", (*App).List},
	"distinct":    {"distinct COLUMN", (*App).Distinct},
	"export-csv":  {"export-csv [filters] [--sort COLUMN [--desc]] [--out FILE]", (*App).ExportCSV},
	"export-xlsx": {"export-xlsx [filters] [--sort COLUMN [--desc]] --out FILE", (*App).ExportXLSX},
	"backup":      {"backup [--dest PATH]", (*App).Backup},
	"duplicates":  {"duplicates [--delete ID,ID...]", (*App).Duplicates},
	"report":      {"report [--period P] [--start D] [--end D] [--attendant A] [--course C] [--xlsx FILE]", (*App).Report},
	"qr":          {"qr (--id ID | --phone PHONE) --out FILE [--size PX]", (*App).QR},
}

// Run dispatches args[0] to its command.
func (a *App) Run(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.usage()
		if len(args) == 0 {
			return ErrUsage
		}
		return nil
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(a.Err, "unknown command %q\n", args[0])
		a.usage()
		return ErrUsage
	}
	a.Log.Debug("command", zap.String("name", args[0]), zap.Strings("args", args[1:]))
	return cmd.run(a, args[1:])
}

func (a *App) usage() {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Fprintln(a.Err, "usage: followup COMMAND [flags]")
	for _, n := range names {
		fmt.Fprintln(a.Err, "  "+commands[n].usage)
	}
}

// flags returns a flag set that reports to a.Err and never exits.
func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.Err)
	return fs
}

// parse wraps fs.Parse so every command fails the same way. At most maxArgs
// positional arguments are accepted.
func parse(fs *flag.FlagSet, args []string, maxArgs int) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ErrUsage
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > maxArgs {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, strings.Join(fs.Args(), " "))
	}
	return nil
}
