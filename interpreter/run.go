package interpreter

import "io"

type RunOptions struct {
	// TypeCheck validates the whole program before running any of it.
	TypeCheck bool
	// Stdout, if set, receives each printed line as it is produced.
	Stdout io.Writer
}

// Parse scans and parses source into a program.
func Parse(source string) (Program, error) {
	scanner := NewScanner(source)
	tokens, err := scanner.ScanTokens()
	if err != nil {
		return nil, err
	}

	parser := NewParser(tokens)
	return parser.Parse()
}

// Run parses source and executes it on a fresh interpreter.
func Run(source string, opts RunOptions) (Output, error) {
	return RunWith(NewInterpreter(WithStdout(opts.Stdout)), NewTypeChecker(), source, opts.TypeCheck)
}

// RunWith parses source and executes it on interpreter. When typeCheck is
// set, the program is checked against checker first and not run at all
// if checking fails. If the run itself fails, checker is reset to the
// bindings the interpreter actually holds.
func RunWith(interpreter *Interpreter, checker *TypeChecker, source string, typeCheck bool) (Output, error) {
	program, err := Parse(source)
	if err != nil {
		return nil, err
	}

	if typeCheck {
		err = checker.Check(program)
		if err != nil {
			return nil, err
		}
	}

	output, err := interpreter.Execute(program)
	if err != nil && typeCheck {
		checker.Reset(interpreter.Environment())
	}
	return output, err
}
