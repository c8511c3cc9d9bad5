package term

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"

	"mergington.dev/activities/internal/board"
	"mergington.dev/activities/internal/client"
	"mergington.dev/activities/internal/model"
)

// lastFrame returns everything written since the most recent screen clear.
func lastFrame(out *bytes.Buffer) string {
	s := out.String()
	if i := strings.LastIndex(s, clearScreen); i >= 0 {
		return s[i+len(clearScreen):]
	}
	return s
}

func testCards() []board.Card {
	return []board.Card{
		{
			Name:            "Art Workshop",
			Description:     "Develop your artistic skills in painting, drawing, and sculpture",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 20,
			Participants:    []string{},
			SpotsLeft:       20,
		},
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
			SpotsLeft:       10,
		},
	}
}

func TestTerminalFrames(t *testing.T) {
	t.Parallel()

	t.Run("InitialFrameShowsLoading", func(t *testing.T) {
		out := &bytes.Buffer{}
		term := New(strings.NewReader(""), out)

		term.ClearMessage()
		assert.Contains(t, lastFrame(out), "Loading activities...")
	})

	t.Run("RenderActivities", func(t *testing.T) {
		out := &bytes.Buffer{}
		term := New(strings.NewReader(""), out)

		term.RenderActivities(testCards())

		frame := lastFrame(out)
		assert.Contains(t, frame, "Mergington High School Activities")
		assert.Contains(t, frame, "Art Workshop")
		assert.Contains(t, frame, "Develop your artistic skills in painting, drawing, and sculpture")
		assert.Contains(t, frame, "Schedule: Fridays, 3:30 PM - 5:00 PM")
		assert.Contains(t, frame, "Availability: 20 of 20 spots left")
		assert.Contains(t, frame, "Participants: none yet")
		assert.Contains(t, frame, "Availability: 10 of 12 spots left")
		assert.Contains(t, frame, "- michael@mergington.edu")
		assert.Contains(t, frame, "- daniel@mergington.edu")
	})

	t.Run("EmptyCatalog", func(t *testing.T) {
		out := &bytes.Buffer{}
		term := New(strings.NewReader(""), out)

		term.RenderActivities([]board.Card{})
		assert.Contains(t, lastFrame(out), "No activities yet.")
	})

	t.Run("LoadErrorReplacesCards", func(t *testing.T) {
		out := &bytes.Buffer{}
		term := New(strings.NewReader(""), out)

		term.RenderActivities(testCards())
		term.RenderLoadError("Failed to load activities. Please try again later.")

		frame := lastFrame(out)
		assert.Contains(t, frame, "Failed to load activities. Please try again later.")
		assert.NotContains(t, frame, "Art Workshop")
	})

	t.Run("MessageTags", func(t *testing.T) {
		out := &bytes.Buffer{}
		term := New(strings.NewReader(""), out)

		term.ShowMessage("Signed up amelia@mergington.edu for Art Workshop", board.SeveritySuccess)
		assert.Contains(t, lastFrame(out), "[ok] Signed up amelia@mergington.edu for Art Workshop")

		term.ShowMessage("An error occurred", board.SeverityError)
		assert.Contains(t, lastFrame(out), "[!!] An error occurred")

		term.ClearMessage()
		assert.NotContains(t, lastFrame(out), "An error occurred")
	})

	t.Run("OptionsAndForm", func(t *testing.T) {
		out := &bytes.Buffer{}
		term := New(strings.NewReader(""), out)

		term.SetOptions([]string{"Art Workshop", "Chess Club"})
		assert.Contains(t, lastFrame(out), "Sign up options: Art Workshop | Chess Club")

		term.SetSignupForm("Chess Club", "amelia@mergington.edu")
		assert.Contains(t, lastFrame(out), `Signup form: email="amelia@mergington.edu" activity="Chess Club"`)

		activity, email := term.SignupForm()
		assert.Equal(t, "Chess Club", activity)
		assert.Equal(t, "amelia@mergington.edu", email)

		term.ResetSignupForm()
		assert.NotContains(t, lastFrame(out), "Signup form:")
	})
}

func TestTerminalConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"LowercaseY", "y\n", true},
		{"UppercaseY", "Y\n", true},
		{"Yes", "yes\n", true},
		{"No", "n\n", false},
		{"EmptyLine", "\n", false},
		{"EndOfInput", "", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			term := New(strings.NewReader(tt.input), out)

			got := term.Confirm("Are you sure?")
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Are you sure? [y/N] ")
		})
	}
}

func TestTerminalReadCommand(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	term := New(strings.NewReader("reload\nquit\n"), out)

	line, ok := term.ReadCommand()
	require.True(t, ok)
	assert.Equal(t, "reload", line)

	line, ok = term.ReadCommand()
	require.True(t, ok)
	assert.Equal(t, "quit", line)

	_, ok = term.ReadCommand()
	assert.False(t, ok)
	assert.Contains(t, out.String(), "> ")
}

func TestMutationArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantActivity string
		wantEmail    string
	}{
		{"Empty", nil, "", ""},
		{"EmailOnly", []string{"amelia@mergington.edu"}, "", "amelia@mergington.edu"},
		{"SingleWordActivity", []string{"amelia@mergington.edu", "Chess"}, "Chess", "amelia@mergington.edu"},
		{"MultiWordActivity", []string{"amelia@mergington.edu", "Art", "Workshop"}, "Art Workshop", "amelia@mergington.edu"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			activity, email := mutationArgs(tt.args)
			assert.Equal(t, tt.wantActivity, activity)
			assert.Equal(t, tt.wantEmail, email)
		})
	}
}

// scriptedClient is an in-memory stand-in for the REST client. Mutations
// apply to its catalog so a follow-up fetch observes them, the way the real
// backend behaves.
type scriptedClient struct {
	mu      sync.Mutex
	catalog map[string]*model.Activity

	failSignups   int
	signupErr     error
	unregisterErr error

	fetches     int
	signups     int
	unregisters int
}

func (c *scriptedClient) FetchActivities(ctx context.Context) (map[string]*model.Activity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fetches++
	out := make(map[string]*model.Activity, len(c.catalog))
	for name, activity := range c.catalog {
		clone := *activity
		clone.Participants = append([]string{}, activity.Participants...)
		out[name] = &clone
	}
	return out, nil
}

func (c *scriptedClient) Signup(ctx context.Context, activity, email string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.signups++
	if c.failSignups > 0 {
		c.failSignups--
		return "", c.signupErr
	}

	c.catalog[activity].Participants = append(c.catalog[activity].Participants, email)
	return fmt.Sprintf("Signed up %s for %s", email, activity), nil
}

func (c *scriptedClient) Unregister(ctx context.Context, activity, email string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.unregisters++
	if c.unregisterErr != nil {
		return "", c.unregisterErr
	}

	participants := c.catalog[activity].Participants
	if i := slices.Index(participants, email); i >= 0 {
		c.catalog[activity].Participants = slices.Delete(participants, i, i+1)
	}
	return fmt.Sprintf("Unregistered %s from %s", email, activity), nil
}

func newRunnerFixture(input string) (*Runner, *scriptedClient, *bytes.Buffer) {
	cl := &scriptedClient{
		catalog: map[string]*model.Activity{
			"Art Workshop": {
				Name:            "Art Workshop",
				Description:     "Develop your artistic skills in painting, drawing, and sculpture",
				Schedule:        "Fridays, 3:30 PM - 5:00 PM",
				MaxParticipants: 20,
				Participants:    []string{},
			},
			"Chess Club": {
				Name:            "Chess Club",
				Description:     "Learn strategies and compete in chess tournaments",
				Schedule:        "Fridays, 3:30 PM - 5:00 PM",
				MaxParticipants: 12,
				Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
			},
		},
	}

	out := &bytes.Buffer{}
	terminal := New(strings.NewReader(input), out)
	b := board.New(cl, terminal, terminal, time.Minute)
	return NewRunner(terminal, b), cl, out
}

func TestRunner(t *testing.T) {
	t.Parallel()

	t.Run("SignupThenRemoveThenQuit", func(t *testing.T) {
		runner, cl, out := newRunnerFixture(
			"signup amelia@mergington.edu Art Workshop\n" +
				"remove amelia@mergington.edu Art Workshop\n" +
				"y\n" +
				"quit\n")

		require.NoError(t, runner.Run(context.Background()))

		assert.Equal(t, 3, cl.fetches, "boot, post-signup and post-remove reloads")
		assert.Equal(t, 1, cl.signups)
		assert.Equal(t, 1, cl.unregisters)

		assert.Contains(t, out.String(),
			"Are you sure you want to remove amelia@mergington.edu from Art Workshop? [y/N] ")

		frame := lastFrame(out)
		assert.Contains(t, frame, "[ok] Unregistered amelia@mergington.edu from Art Workshop")
		assert.NotContains(t, frame, "Signup form:", "a successful signup resets the form")
		assert.NotContains(t, frame, "- amelia@mergington.edu", "removed student no longer listed")
	})

	t.Run("RejectedSignupKeepsFormForRetry", func(t *testing.T) {
		runner, cl, out := newRunnerFixture(
			"signup michael@mergington.edu Art Workshop\n" +
				"signup\n" +
				"quit\n")
		cl.failSignups = 1
		cl.signupErr = &client.RejectionError{
			StatusCode: fiber.StatusBadRequest,
			Detail:     "Student michael@mergington.edu is already signed up for Art Workshop",
		}

		require.NoError(t, runner.Run(context.Background()))

		assert.Equal(t, 2, cl.signups, "the bare signup retries the retained form")
		assert.Equal(t, 2, cl.fetches, "only the successful attempt reloads")

		frame := lastFrame(out)
		assert.Contains(t, frame, "[ok] Signed up michael@mergington.edu for Art Workshop")
		assert.NotContains(t, frame, "Signup form:")
	})

	t.Run("DeclinedRemoveLeavesBoardUntouched", func(t *testing.T) {
		runner, cl, out := newRunnerFixture(
			"remove michael@mergington.edu Chess Club\n" +
				"n\n" +
				"quit\n")

		require.NoError(t, runner.Run(context.Background()))

		assert.Zero(t, cl.unregisters)
		assert.Equal(t, 1, cl.fetches)
		assert.Contains(t, lastFrame(out), "- michael@mergington.edu")
	})

	t.Run("HelpUsageAndUnknownCommands", func(t *testing.T) {
		runner, _, out := newRunnerFixture(
			"bogus\n" +
				"help\n" +
				"remove onlyemail@mergington.edu\n" +
				"quit\n")

		require.NoError(t, runner.Run(context.Background()))

		assert.Contains(t, out.String(), `unknown command "bogus"; try "help"`)
		assert.Contains(t, out.String(), "refresh the board from the backend")
		assert.Contains(t, out.String(), "usage: remove <email> <activity name>")
	})
}
