package command

import (
	stderrors "errors"

	"github.com/wagiedev/divpipe/internal/errors"
)

// Kind classifies the outcome of one command.
type Kind int

const (
	// Success means every divisor was applied.
	Success Kind = iota
	// ParseFailure means a token was not an integer in range.
	ParseFailure
	// InsufficientOperands means fewer than MinOperands integers were given.
	InsufficientOperands
	// DivisionByZero means a zero divisor was reached. It is terminal.
	DivisionByZero
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case ParseFailure:
		return "parse error"
	case InsufficientOperands:
		return "insufficient operands"
	case DivisionByZero:
		return "division by zero"
	default:
		return "unknown"
	}
}

// Outcome is the result of executing one command line.
type Outcome struct {
	Kind    Kind
	Command Command
	Result  int
	Err     error
}

// Terminal reports whether the outcome must stop the worker.
func (o Outcome) Terminal() bool {
	return o.Kind == DivisionByZero
}

// Execute parses and evaluates line, reporting steps to tr.
func Execute(line string, tr Tracer) Outcome {
	cmd, err := Parse(line)
	if err != nil {
		if _, ok := stderrors.AsType[*errors.InsufficientOperandsError](err); ok {
			return Outcome{Kind: InsufficientOperands, Err: err}
		}

		return Outcome{Kind: ParseFailure, Err: err}
	}

	if tr != nil {
		tr.Dividend(cmd.Dividend())
	}

	result, err := cmd.Evaluate(tr)
	if err != nil {
		return Outcome{Kind: DivisionByZero, Command: cmd, Err: err}
	}

	return Outcome{Kind: Success, Command: cmd, Result: result}
}
