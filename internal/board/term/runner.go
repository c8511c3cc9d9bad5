package term

import (
	"context"
	"fmt"
	"strings"

	"mergington.dev/activities/internal/board"
)

const helpText = `Commands:
  reload                          refresh the board from the backend
  signup <email> <activity name>  sign a student up for an activity
  signup                          retry the values left in the signup form
  remove <email> <activity name>  unregister a student from an activity
  help                            show this help
  quit                            leave the board`

// Runner drives a board from terminal commands until input ends or the user
// quits.
type Runner struct {
	terminal *Terminal
	board    *board.Board
}

func NewRunner(terminal *Terminal, board *board.Board) *Runner {
	return &Runner{
		terminal: terminal,
		board:    board,
	}
}

func (r *Runner) Run(ctx context.Context) error {
	r.board.Reload(ctx)

	for {
		line, ok := r.terminal.ReadCommand()
		if !ok {
			return nil
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "reload", "r":
			r.board.Reload(ctx)
		case "signup", "s":
			activity, email := mutationArgs(fields[1:])
			if len(fields) == 1 {
				// a bare signup retries whatever the form still holds
				activity, email = r.terminal.SignupForm()
			}
			r.terminal.SetSignupForm(activity, email)
			r.board.Signup(ctx, activity, email)
		case "remove", "rm":
			activity, email := mutationArgs(fields[1:])
			if activity == "" || email == "" {
				r.terminal.Println("usage: remove <email> <activity name>")
				continue
			}
			r.board.Unregister(ctx, activity, email)
		case "help", "h", "?":
			r.terminal.Println(helpText)
		case "quit", "q", "exit":
			return nil
		default:
			r.terminal.Println(fmt.Sprintf("unknown command %q; try \"help\"", fields[0]))
		}
	}
}

// mutationArgs splits "<email> <activity name...>" arguments. Emails never
// contain spaces, so everything after the first field is the activity name.
func mutationArgs(args []string) (activity, email string) {
	if len(args) == 0 {
		return "", ""
	}
	return strings.Join(args[1:], " "), args[0]
}
