package engine

import (
	"bufio"
	"context"
	"fmt"
	"github.com/seekerror/logw"
	"os"
)

// ReadStdinLines reads stdin lines into a chan, closed on EOF. Async. The
// protocol drivers consume this channel as their sole input.
func ReadStdinLines(ctx context.Context) <-chan string {
	ret := make(chan string, 1)
	go func() {
		defer close(ret)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			logw.Debugf(ctx, "<< %v", scanner.Text())
			ret <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			logw.Errorf(ctx, "Stdin read failed: %v", err)
			os.Exit(1)
		}
	}()
	return ret
}

// WriteStdoutLines writes lines from the given chan to stdout until it closes.
// Protocol output (info, bestmove, readyok) all flows through here; logging
// stays on stderr.
func WriteStdoutLines(ctx context.Context, out <-chan string) {
	for line := range out {
		logw.Debugf(ctx, ">> %v", line)
		if _, err := fmt.Fprintln(os.Stdout, line); err != nil {
			logw.Errorf(ctx, "Stdout write failed: %v", err)
			os.Exit(1)
		}
	}
}
