// Command base62 converts between decimal integers and base62 codes.
//
// Usage:
//
//	base62 encode [N ...]
//	base62 decode [CODE ...]
//	base62 clean [TEXT ...]
//
// With no operands, one value per line is read from standard input.
// Results are written one per line to standard output. The exit status is 1
// if any value fails; every failure is logged and processing continues.
// clean prints the sanitized text even when it is not valid base62.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/Siddarth2230/base62/pkg/base62"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "base62"})
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, logger))
}

func run(args []string, stdin io.Reader, stdout io.Writer, logger *log.Logger) int {
	fs := flag.NewFlagSet("base62", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		logger.Error("parsing flags", "err", err)
		return 2
	}
	if fs.NArg() == 0 {
		logger.Error("usage: base62 encode|decode|clean [VALUE ...]")
		return 2
	}

	var op func(string) (string, error)
	switch fs.Arg(0) {
	case "encode":
		op = base62.EncodeString
	case "decode":
		op = func(s string) (string, error) {
			v, err := base62.Decode(s)
			if err != nil {
				return "", err
			}
			return v.String(), nil
		}
	case "clean":
		op = func(s string) (string, error) {
			return base62.Clean(s), base62.Valid(s)
		}
	default:
		logger.Error("unknown command", "command", fs.Arg(0))
		return 2
	}

	// clean always prints its result; invalid input only sets the status.
	printOnError := fs.Arg(0) == "clean"

	status := 0
	apply := func(in string) {
		out, err := op(in)
		if err != nil {
			status = 1
			if printOnError {
				logger.Warn(err.Error(), "input", in)
				fmt.Fprintln(stdout, out)
				return
			}
			logger.Error(err.Error(), "input", in)
			return
		}
		fmt.Fprintln(stdout, out)
	}

	if operands := fs.Args()[1:]; len(operands) > 0 {
		for _, in := range operands {
			apply(in)
		}
		return status
	}

	sc := bufio.NewScanner(stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for sc.Scan() {
		apply(sc.Text())
	}
	if err := sc.Err(); err != nil {
		logger.Error("reading stdin", "err", err)
		return 1
	}
	return status
}
