// SPDX-License-Identifier: Apache-2.0

// Package repl is a line-oriented read-parse-print loop over the front end.
package repl

import (
	"bufio"
	goerrors "errors"
	"fmt"
	"io"
	"strings"

	"pecan/internal/ast"
	"pecan/internal/errors"
	"pecan/internal/lexer"
	"pecan/internal/parser"
)

const (
	PROMPT      = ">> "
	CONTINUE    = ".. "
	replSource  = "<repl>"
	helpMessage = `Enter a statement (ending in ';' or '}') or an expression.
  :tokens <src>   show the token stream
  :type <src>     parse a type
  :help           show this message
  :quit           leave`
)

// Start reads lines from in until it is exhausted or :quit is entered.
// Input that ends mid-construct keeps reading under the continuation prompt.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	var pending []string

	for {
		if len(pending) == 0 {
			fmt.Fprint(out, PROMPT)
		} else {
			fmt.Fprint(out, CONTINUE)
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		line := scanner.Text()
		if len(pending) == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ":") {
				if !command(out, trimmed) {
					return
				}
				continue
			}
		}

		pending = append(pending, line)
		source := strings.Join(pending, "\n")

		node, err := parse(source)
		if err != nil && incomplete(err) && strings.TrimSpace(line) != "" {
			continue
		}
		pending = nil

		if err != nil {
			fmt.Fprint(out, errors.NewErrorReporter(replSource, source).Format(err))
			continue
		}
		fmt.Fprintln(out, node.String())
	}
}

// parse tries source as a statement, then as a bare expression. The
// statement error wins when both fail.
func parse(source string) (ast.Node, error) {
	stmt, err := parser.ParseStatement(source)
	if err == nil {
		return stmt, nil
	}
	if expr, exprErr := parser.ParseExpr(source); exprErr == nil {
		return expr, nil
	}
	return nil, err
}

// incomplete reports whether more input could still fix err. A blank line
// ends the continuation so a stuck construct is reported.
func incomplete(err error) bool {
	var perr *parser.ParseError
	return goerrors.As(err, &perr) && perr.Kind == parser.UnexpectedEOF
}

func command(out io.Writer, input string) bool {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ":quit", ":q":
		return false
	case ":help", ":h":
		fmt.Fprintln(out, helpMessage)
	case ":tokens":
		tokens, err := lexer.Tokenize(replSource, arg)
		for _, tok := range tokens {
			fmt.Fprintln(out, tok.String())
		}
		if err != nil {
			fmt.Fprint(out, errors.NewErrorReporter(replSource, arg).Format(err))
		}
	case ":type":
		typ, err := parser.ParseType(arg)
		if err != nil {
			fmt.Fprint(out, errors.NewErrorReporter(replSource, arg).Format(err))
			break
		}
		fmt.Fprintln(out, typ.String())
	default:
		fmt.Fprintf(out, "unknown command %s, try :help\n", name)
	}
	return true
}
