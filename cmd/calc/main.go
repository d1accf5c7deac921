// Command calc is a terminal keypad for the calculator engine. Each input
// line is a key sequence ("7 + 3 * 2 =", "C", "DEL"); after every line the
// history and display are printed.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go-chi-calculator/internal/calculator"

	"go.uber.org/zap"
)

func main() {
	keys := flag.String("keys", "", "Evaluate this key sequence and exit instead of reading stdin")
	quiet := flag.Bool("q", false, "Print only the display")
	flag.Parse()

	// Development config writes to stderr, keeping stdout for results.
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	in := io.Reader(os.Stdin)
	if *keys != "" {
		in = strings.NewReader(*keys)
	}

	if err := run(in, os.Stdout, logger, *quiet); err != nil {
		logger.Fatal("calc failed", zap.Error(err))
	}
}

// run drives one engine from lines of in. Lines with unknown keys are
// reported and skipped; the engine keeps its state.
func run(in io.Reader, out io.Writer, logger *zap.Logger, quiet bool) error {
	engine := calculator.NewEngine()
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		keys, err := calculator.ParseKeys(scanner.Text())
		if err != nil {
			logger.Warn("ignoring line", zap.String("line", scanner.Text()), zap.Error(err))
			continue
		}
		if len(keys) == 0 {
			continue
		}

		for _, k := range keys {
			engine.Press(k)
		}

		if quiet {
			fmt.Fprintln(out, engine.Display())
			continue
		}
		fmt.Fprintf(out, "%s\n%s\n", engine.History(), engine.Display())
	}
	return scanner.Err()
}
