// rubyfmt formats render queue documents into laid-out Ruby source.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/scanner"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bibstha/rubyfmt/render"
	"github.com/bibstha/rubyfmt/rubyfmt"
	"github.com/pkg/diff"
)

func (cmd *mainCmd) registerFlags(flag *flag.FlagSet) {
	flag.BoolVar(&cmd.list, "l", false, "list files whose formatting differs from rubyfmt's")
	flag.BoolVar(&cmd.write, "w", false, "write result to (source) file instead of stdout")
	flag.BoolVar(&cmd.diff, "d", false, "display diffs instead of rewriting files")
	flag.BoolVar(&cmd.debugAssertions, "debug-assertions", false, "log render queue and final token counts to stderr")
}

func (cmd *mainCmd) report(err error) {
	scanner.PrintError(cmd.Stderr, err)
	cmd.exitCode = 2
}

func isQueueDocument(f os.FileInfo) bool {
	name := f.Name()
	return !f.IsDir() && !strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".json")
}

func (cmd *mainCmd) processFile(filename string, in io.Reader, out io.Writer) error {
	if in == nil {
		f, err := os.Open(filename)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	src, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	render.DebugAssertions = cmd.debugAssertions

	res, err := rubyfmt.Process(filename, src)
	if err != nil {
		return err
	}

	if !bytes.Equal(src, res) {
		if cmd.list {
			fmt.Fprintln(out, filename)
		}
		if cmd.write {
			err = os.WriteFile(filename, res, 0)
			if err != nil {
				return err
			}
		}
		if cmd.diff {
			fmt.Fprintf(cmd.Stderr, "diff %s rubyfmt/%s\n", filename, filename)
			err = diff.Text(
				filepath.Join("a", filename),
				filepath.Join("b", filename),
				src, res, out,
			)
			if err != nil {
				return fmt.Errorf("writing out: %s", err)
			}
		}
	}

	if !cmd.list && !cmd.write && !cmd.diff {
		_, err = out.Write(res)
	}

	return err
}

func (cmd *mainCmd) visitFile(path string, f os.FileInfo, err error) error {
	if err == nil && isQueueDocument(f) {
		err = cmd.processFile(path, nil, cmd.Stdout)
	}
	if err != nil {
		cmd.report(err)
	}
	return nil
}

func (cmd *mainCmd) walkDir(path string) error {
	return filepath.Walk(path, cmd.visitFile)
}

func main() {
	cmd := mainCmd{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	// put core logic in a separate function
	// so that it can use defer and have them
	// run before the exit.
	cmd.Run(os.Args[1:])
	os.Exit(cmd.exitCode)
}

type mainCmd struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	exitCode int

	// Command line flags:

	// Main operation modes.
	list  bool
	write bool
	diff  bool

	debugAssertions bool
}

func (cmd *mainCmd) parseArgs(args []string) ([]string, error) {
	flag := flag.NewFlagSet("rubyfmt", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		fmt.Fprintln(cmd.Stderr, "usage: rubyfmt [flags] [path ...]")
		flag.PrintDefaults()
	}
	cmd.registerFlags(flag)
	err := flag.Parse(args)
	return flag.Args(), err
}

func (cmd *mainCmd) Run(args []string) {
	args, err := cmd.parseArgs(args)
	if err != nil {
		// --help exits with a 0 status code.
		if !errors.Is(err, flag.ErrHelp) {
			cmd.exitCode = 2
		}
		return
	}

	if len(args) == 0 {
		if err := cmd.processFile("<standard input>", cmd.Stdin, cmd.Stdout); err != nil {
			cmd.report(err)
		}
		return
	}

	for _, path := range args {
		switch dir, err := os.Stat(path); {
		case err != nil:
			cmd.report(err)
		case dir.IsDir():
			if err := cmd.walkDir(path); err != nil {
				cmd.report(err)
			}
		default:
			if err := cmd.processFile(path, nil, cmd.Stdout); err != nil {
				cmd.report(err)
			}
		}
	}
}
