package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/feather-lang/tclbridge/interp"
)

const prompt = "tcl> "

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive shell over lists and arrays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ip := interp.NewInterp(interp.WithLogger(a.log))
			s := newSession(ip, cmd.OutOrStdout(), a.log)
			defer s.close()

			if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				return runTerminal(s, f)
			}
			return runLines(s, cmd.InOrStdin())
		},
	}
}

// runTerminal reads commands with line editing and history.
func runTerminal(s *session, f *os.File) error {
	fd := int(f.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return runLines(s, f)
	}
	defer term.Restore(fd, oldState)

	out := s.out
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{f, out}, prompt)
	if w, h, err := term.GetSize(fd); err == nil {
		_ = t.SetSize(w, h)
	}
	s.out = t
	defer func() { s.out = out }()

	fmt.Fprintln(t, "tclbridge repl, type help for commands")
	for {
		line, err := t.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		quit, err := s.exec(line)
		if err != nil {
			s.printError(err)
		}
		if quit {
			return nil
		}
	}
}

// runLines reads one command per line, for pipes and scripts.
func runLines(s *session, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		quit, err := s.exec(scanner.Text())
		if err != nil {
			s.printError(err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}
