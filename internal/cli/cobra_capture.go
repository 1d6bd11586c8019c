package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/matchday/internal/cli/formatter"
)

// shellOnlyCommands cannot run nested inside the shell.
var shellOnlyCommands = map[string]bool{"shell": true, "serve": true}

// captureCobraOutput runs a slash command such as `/team Flamengo -n 5`
// through the cobra tree and returns what it printed.
func captureCobraOutput(ctx context.Context, app *App, line string) string {
	args, err := splitShellArgs(strings.TrimPrefix(line, "/"))
	if err != nil {
		return shellError(err)
	}
	if len(args) == 0 {
		return formatter.Dim("Commands: /team, /h2h, /upcoming, /stats, /fixtures, /history. Add --help for usage.")
	}
	if shellOnlyCommands[args[0]] {
		return shellError(fmt.Errorf("%q is not available inside the shell", args[0]))
	}

	var buf strings.Builder
	root := NewRootCmd(app)
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil && err != ErrQuestionFailed {
		buf.WriteString(shellError(err))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func shellError(err error) string {
	return formatter.StyleRed.Render("Error: " + err.Error())
}

// splitShellArgs tokenizes a command line with shell-like quoting.
func splitShellArgs(input string) ([]string, error) {
	var parts []string
	var cur strings.Builder

	inSingle := false
	inDouble := false
	escaped := false
	tokenStarted := false

	flush := func() {
		parts = append(parts, cur.String())
		cur.Reset()
		tokenStarted = false
	}

	for _, r := range input {
		if escaped {
			cur.WriteRune(r)
			tokenStarted = true
			escaped = false
			continue
		}

		if inSingle {
			if r == '\'' {
				inSingle = false
			} else {
				cur.WriteRune(r)
			}
			tokenStarted = true
			continue
		}

		if inDouble {
			switch r {
			case '"':
				inDouble = false
			case '\\':
				escaped = true
			default:
				cur.WriteRune(r)
			}
			tokenStarted = true
			continue
		}

		switch r {
		case '\\':
			escaped = true
			tokenStarted = true
		case '\'':
			inSingle = true
			tokenStarted = true
		case '"':
			inDouble = true
			tokenStarted = true
		case ' ', '\t', '\n', '\r':
			if tokenStarted {
				flush()
			}
		default:
			cur.WriteRune(r)
			tokenStarted = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	if tokenStarted {
		flush()
	}

	return parts, nil
}
