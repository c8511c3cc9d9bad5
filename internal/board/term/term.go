package term

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"mergington.dev/activities/internal/board"
)

const clearScreen = "\x1b[2J\x1b[H"

var (
	_ board.Screen   = (*Terminal)(nil)
	_ board.Prompter = (*Terminal)(nil)
)

// Terminal renders the activities board as full frames on an ANSI terminal
// and reads commands line by line from a single scanner. Rendering state is
// guarded by a mutex because the board's message timer redraws from its own
// goroutine; input reads happen outside the lock so a pending prompt never
// blocks a redraw.
type Terminal struct {
	scanner *bufio.Scanner

	mu           sync.Mutex
	w            io.Writer
	loadedOnce   bool
	cards        []board.Card
	placeholder  string
	options      []string
	message      string
	severity     board.Severity
	msgVisible   bool
	formActivity string
	formEmail    string
}

func New(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{
		scanner: bufio.NewScanner(r),
		w:       w,
	}
}

func (t *Terminal) RenderActivities(cards []board.Card) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.loadedOnce = true
	t.cards = cards
	t.placeholder = ""
	t.redraw()
}

func (t *Terminal) RenderLoadError(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cards = nil
	t.placeholder = text
	t.redraw()
}

func (t *Terminal) SetOptions(names []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.options = names
	t.redraw()
}

func (t *Terminal) ShowMessage(text string, severity board.Severity) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.message = text
	t.severity = severity
	t.msgVisible = true
	t.redraw()
}

func (t *Terminal) ClearMessage() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.msgVisible = false
	t.redraw()
}

// SetSignupForm records the values the student submitted. They stay on
// screen until a successful signup resets them.
func (t *Terminal) SetSignupForm(activity, email string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.formActivity = activity
	t.formEmail = email
	t.redraw()
}

func (t *Terminal) SignupForm() (activity, email string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.formActivity, t.formEmail
}

func (t *Terminal) ResetSignupForm() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.formActivity = ""
	t.formEmail = ""
	t.redraw()
}

// ReadCommand prompts for and blocks on the next input line. ok is false
// once input is exhausted.
func (t *Terminal) ReadCommand() (line string, ok bool) {
	t.mu.Lock()
	fmt.Fprint(t.w, "> ")
	t.mu.Unlock()

	if !t.scanner.Scan() {
		return "", false
	}
	return t.scanner.Text(), true
}

// Confirm asks a yes/no question. Anything but an explicit yes declines.
func (t *Terminal) Confirm(prompt string) bool {
	t.mu.Lock()
	fmt.Fprintf(t.w, "%s [y/N] ", prompt)
	t.mu.Unlock()

	if !t.scanner.Scan() {
		return false
	}
	answer := strings.TrimSpace(t.scanner.Text())
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}

// Println writes free text below the current frame. The next redraw reclaims
// the whole screen.
func (t *Terminal) Println(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintln(t.w, s)
}

// redraw repaints the whole screen from the held state. Callers hold t.mu.
func (t *Terminal) redraw() {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString("Mergington High School Activities\n")
	b.WriteString("=================================\n\n")

	if t.msgVisible {
		tag := "ok"
		if t.severity == board.SeverityError {
			tag = "!!"
		}
		fmt.Fprintf(&b, "[%s] %s\n\n", tag, t.message)
	}

	switch {
	case t.placeholder != "":
		fmt.Fprintf(&b, "%s\n\n", t.placeholder)
	case !t.loadedOnce:
		b.WriteString("Loading activities...\n\n")
	case len(t.cards) == 0:
		b.WriteString("No activities yet.\n\n")
	default:
		for _, card := range t.cards {
			writeCard(&b, card)
		}
	}

	if len(t.options) > 0 {
		fmt.Fprintf(&b, "Sign up options: %s\n", strings.Join(t.options, " | "))
	}
	if t.formEmail != "" || t.formActivity != "" {
		fmt.Fprintf(&b, "Signup form: email=%q activity=%q\n", t.formEmail, t.formActivity)
	}
	b.WriteString("Commands: reload | signup <email> <activity name> | remove <email> <activity name> | help | quit\n")

	fmt.Fprint(t.w, b.String())
}

func writeCard(b *strings.Builder, card board.Card) {
	fmt.Fprintf(b, "%s\n", card.Name)
	fmt.Fprintf(b, "    %s\n", card.Description)
	fmt.Fprintf(b, "    Schedule: %s\n", card.Schedule)
	fmt.Fprintf(b, "    Availability: %d of %d spots left\n", card.SpotsLeft, card.MaxParticipants)
	if len(card.Participants) == 0 {
		b.WriteString("    Participants: none yet\n")
	} else {
		b.WriteString("    Participants:\n")
		for _, email := range card.Participants {
			fmt.Fprintf(b, "      - %s\n", email)
		}
	}
	b.WriteString("\n")
}
