package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/session"
)

// RunPlain drives the session from line-oriented input, for pipes and
// scripts. It stops on "end" or at end of input.
func RunPlain(sess *session.Session, in io.Reader, out io.Writer) error {
	if err := writeLines(out, sess.Start()); err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	for !sess.Done() && scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if err := writeLines(out, sess.Handle(line)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func writeLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
