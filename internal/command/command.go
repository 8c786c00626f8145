// Package command parses and evaluates division commands.
//
// A command is one line of whitespace-separated base-10 integers: a dividend
// followed by divisors, applied left to right with truncating division.
package command

import (
	stderrors "errors"
	"strconv"
	"strings"

	"github.com/wagiedev/divpipe/internal/errors"
)

// MinOperands is the smallest number of integers an evaluable command has.
const MinOperands = 2

// Command is an ordered sequence of integers parsed from one line.
type Command struct {
	Operands []int
}

// Dividend returns the first operand.
func (c Command) Dividend() int {
	return c.Operands[0]
}

// Divisors returns the operands after the dividend.
func (c Command) Divisors() []int {
	return c.Operands[1:]
}

// Parse tokenizes line by whitespace and parses every token.
//
// It returns *errors.ParseError naming the first token that is not an
// integer in range, or *errors.InsufficientOperandsError when fewer than
// MinOperands integers are present.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	operands := make([]int, 0, len(fields))

	for _, tok := range fields {
		n, err := strconv.Atoi(tok)
		if err != nil {
			cause := err
			if numErr, ok := stderrors.AsType[*strconv.NumError](err); ok {
				cause = numErr.Err
			}

			return Command{}, &errors.ParseError{Token: tok, Err: cause}
		}

		operands = append(operands, n)
	}

	if len(operands) < MinOperands {
		return Command{}, &errors.InsufficientOperandsError{Count: len(operands)}
	}

	return Command{Operands: operands}, nil
}

// Tracer observes evaluation steps.
type Tracer interface {
	// Dividend is called once by Execute before the first division.
	Dividend(value int)
	// Divisor is called before each division with the 1-based divisor index.
	Divisor(index, divisor int)
	// Intermediate is called after each successful division.
	Intermediate(result int)
}

// Evaluate divides the dividend by each divisor in order.
//
// It stops at the first zero divisor and returns errors.ErrDivisionByZero.
// The tracer may be nil.
func (c Command) Evaluate(tr Tracer) (int, error) {
	result := c.Dividend()

	for i, d := range c.Divisors() {
		if tr != nil {
			tr.Divisor(i+1, d)
		}

		if d == 0 {
			return 0, errors.ErrDivisionByZero
		}

		result /= d

		if tr != nil {
			tr.Intermediate(result)
		}
	}

	return result, nil
}
