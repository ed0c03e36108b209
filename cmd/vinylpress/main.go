// SPDX-License-Identifier: EPL-2.0

// Command vinylpress presses disk images into sound and sound into disk
// images.
//
// Usage:
//
//	vinylpress sonify [flags] in.png out.wav
//	vinylpress analyze [flags] [-cover] in.{wav,aiff,mp3,ogg} out.png
//	vinylpress unspin [flags] in.png out.png
//	vinylpress spin [flags] in.png out.png
//	vinylpress press [flags] in.png outdir
//	vinylpress warp [flags] -quad x,y,x,y,x,y,x,y [-overlay mask.png] in.png out.png
//	vinylpress play [flags] in.{png,wav,aiff,mp3,ogg}
//
// Run "vinylpress <command> -h" for the flags of a command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
)

type command struct {
	usage string
	args  int
	// setup registers command specific flags.
	setup func(fs *flag.FlagSet)
	run   func(ctx context.Context, env *env, args []string) error
}

// env is what a command runs with once flags are parsed.
type env struct {
	opts   *options
	logger *slog.Logger
	stdout io.Writer
}

var errUsage = errors.New("usage")

func commands() map[string]*command {
	return map[string]*command{
		"sonify":  sonifyCommand(),
		"analyze": analyzeCommand(),
		"unspin":  unspinCommand(),
		"spin":    spinCommand(),
		"press":   pressCommand(),
		"warp":    warpCommand(),
		"play":    playCommand(),
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "vinylpress: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmds := commands()

	if len(args) == 0 {
		usage(stderr, cmds)
		return errUsage
	}

	cmd, ok := cmds[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr, cmds)
		return errUsage
	}

	var opts options
	fs := newFlagSet(args[0], &opts)
	fs.SetOutput(stderr)
	if cmd.setup != nil {
		cmd.setup(fs)
	}
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: vinylpress %s %s\n", args[0], cmd.usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() != cmd.args {
		fs.Usage()
		return errUsage
	}

	logger, err := newLogger(stderr, opts.logLevel)
	if err != nil {
		return err
	}
	if err := opts.cfg.Validate(); err != nil {
		return err
	}

	return cmd.run(ctx, &env{opts: &opts, logger: logger, stdout: stdout}, fs.Args())
}

func usage(w io.Writer, cmds map[string]*command) {
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteString("usage: vinylpress <command> [flags] args\n\ncommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-8s %s\n", name, cmds[name].usage)
	}
	fmt.Fprint(w, b.String())
}
