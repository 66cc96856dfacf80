// Package shell drives a ledger from a line-oriented terminal session.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sheikh-saqib/session-account-ledger/internal/ledger"
	"github.com/sheikh-saqib/session-account-ledger/internal/models"
	"go.uber.org/zap"
)

// maxLineBytes bounds one line of input. Longer lines are discarded and
// answered as an empty entry.
const maxLineBytes = 4096

type menuChoice int

const (
	choiceView menuChoice = iota + 1
	choiceCredit
	choiceDebit
	choiceExit
)

// Shell reads menu choices and amounts from in and writes results to out.
// The ledger never sees raw I/O; the shell hands it complete requests.
type Shell struct {
	ledger *ledger.Ledger
	in     *bufio.Reader
	out    io.Writer
	logger *zap.Logger
}

// New builds a shell over l. A nil logger discards log output.
func New(l *ledger.Ledger, in io.Reader, out io.Writer, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Shell{
		ledger: l,
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
	}
}

// Run loops until the user exits, input ends or ctx is cancelled.
// End of input is treated as an exit.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()

		line, ok, err := s.prompt(promptChoice)
		if err != nil {
			return err
		}
		if !ok {
			s.println(msgGoodbye)
			return nil
		}

		choice, valid := parseChoice(line)
		if !valid {
			s.println(msgInvalidChoice)
			continue
		}

		switch choice {
		case choiceView:
			s.println(BalanceMessage(s.ledger.GetBalance()))
		case choiceCredit:
			if done, err := s.transact(ctx, models.KindCredit, promptCredit); done || err != nil {
				return err
			}
		case choiceDebit:
			if done, err := s.transact(ctx, models.KindDebit, promptDebit); done || err != nil {
				return err
			}
		case choiceExit:
			s.println(msgGoodbye)
			return nil
		}
	}
}

// transact collects an amount and posts it. done is true when input ran out
// while waiting for the amount.
func (s *Shell) transact(ctx context.Context, kind models.TransactionKind, label string) (done bool, err error) {
	raw, ok, err := s.prompt(label)
	if err != nil {
		return true, err
	}
	if !ok {
		s.println(msgGoodbye)
		return true, nil
	}

	outcome := s.ledger.PostRaw(ctx, kind, raw)
	s.println(OutcomeMessage(outcome))

	return false, nil
}

func (s *Shell) prompt(label string) (string, bool, error) {
	fmt.Fprint(s.out, label)

	line, err := s.readLine()
	if errors.Is(err, io.EOF) {
		// Finish the prompt line before the farewell.
		fmt.Fprintln(s.out)
		return "", false, nil
	}
	if errors.Is(err, errLineTooLong) {
		s.logger.Warn("input line too long, discarded", zap.Int("limit", maxLineBytes))
		return "", true, nil
	}
	if err != nil {
		s.logger.Error("failed to read input", zap.Error(err))
		return "", false, fmt.Errorf("read input: %w", err)
	}

	return line, true, nil
}

var errLineTooLong = errors.New("input line too long")

// readLine returns the next line without its terminator. An over-long line
// is consumed in full, but its buffer stops growing once past maxLineBytes.
func (s *Shell) readLine() (string, error) {
	var buf []byte
	for {
		chunk, err := s.in.ReadSlice('\n')
		if len(buf) <= maxLineBytes+1 {
			buf = append(buf, chunk...)
		}

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if len(buf) == 0 {
				return "", io.EOF
			}
		case err != nil:
			return "", err
		}

		line := strings.TrimRight(string(buf), "\r\n")
		if len(line) > maxLineBytes {
			return "", errLineTooLong
		}
		return line, nil
	}
}

func (s *Shell) printMenu() {
	for _, line := range menuLines {
		s.println(line)
	}
}

func (s *Shell) println(msg string) {
	fmt.Fprintln(s.out, msg)
}

func parseChoice(raw string) (menuChoice, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < int(choiceView) || n > int(choiceExit) {
		return 0, false
	}
	return menuChoice(n), true
}
