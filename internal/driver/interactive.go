package driver

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/oxhq/refract/internal/xerrors"
)

// hunkDecision is the reviewer's answer for one hunk.
type hunkDecision int

const (
	decisionAccept hunkDecision = iota
	decisionReject
	decisionAcceptAll
	decisionRejectAll
	decisionQuit
)

// prompter drives the interactive "[y,n,q,a,d,?]" review loop over a
// sequence of hunks — bowler.tool.BowlerTool.prompt_user, adapted to read
// from an injected io.Reader/io.Writer so it's testable without a real tty.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

var (
	hunkAddColor    = color.New(color.FgGreen)
	hunkDelColor    = color.New(color.FgRed)
	hunkHeaderColor = color.New(color.FgCyan, color.Bold)
)

func (p *prompter) printHunk(filename string, h xerrors.Hunk) {
	fmt.Fprintf(p.out, "--- %s\n", filename)
	for _, line := range h {
		switch {
		case strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---"):
			continue
		case strings.HasPrefix(line, "@@"):
			hunkHeaderColor.Fprint(p.out, line)
		case strings.HasPrefix(line, "+"):
			hunkAddColor.Fprint(p.out, line)
		case strings.HasPrefix(line, "-"):
			hunkDelColor.Fprint(p.out, line)
		default:
			fmt.Fprint(p.out, line)
		}
	}
}

// reviewHunks walks hunks in order, asking the reviewer to accept (y),
// reject (n), accept the rest without asking (a), reject the rest (d), quit
// the whole run (q), or print help (?). It returns the accepted subset.
func (p *prompter) reviewHunks(filename string, hunks []xerrors.Hunk) ([]xerrors.Hunk, error) {
	var accepted []xerrors.Hunk
	mode := hunkDecision(-1) // sticky choice once a/d is picked

	for _, h := range hunks {
		if mode == decisionAcceptAll {
			accepted = append(accepted, h)
			continue
		}
		if mode == decisionRejectAll {
			continue
		}

		p.printHunk(filename, h)
		for {
			fmt.Fprint(p.out, "Apply this hunk? [y,n,q,a,d,?] ")
			line, err := p.in.ReadString('\n')
			if err != nil && line == "" {
				return accepted, fmt.Errorf("driver: reading review input: %w", err)
			}
			switch strings.TrimSpace(line) {
			case "y", "Y", "":
				accepted = append(accepted, h)
			case "n", "N":
			case "a", "A":
				mode = decisionAcceptAll
				accepted = append(accepted, h)
			case "d", "D":
				mode = decisionRejectAll
			case "q", "Q":
				return accepted, xerrors.NewErrQuit()
			default:
				fmt.Fprintln(p.out, "y - apply this hunk\nn - skip this hunk\na - apply this and all remaining hunks in this file\nd - skip this and all remaining hunks in this file\nq - quit, applying nothing further\n? - show this help")
				continue
			}
			break
		}
	}
	return accepted, nil
}
