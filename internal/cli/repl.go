package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sandeepkv93/taskbot/internal/session"
)

const Prompt = "> "

// Run reads commands from in until bye or end of input, writing each reply to
// out. Only the line terminator is stripped from input.
func Run(ctx context.Context, in io.Reader, out io.Writer, sess *session.Session) error {
	if _, err := fmt.Fprintln(out, session.Greeting); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := fmt.Fprint(out, Prompt); err != nil {
			return err
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSuffix(scanner.Text(), "\r")
		reply := sess.Reply(ctx, line)
		if _, err := fmt.Fprintln(out, reply.Text); err != nil {
			return err
		}
		if reply.Exit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	_, err := fmt.Fprintln(out)
	return err
}
