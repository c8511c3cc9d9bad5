package board

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	linq "github.com/ahmetb/go-linq/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"mergington.dev/activities/internal/client"
	"mergington.dev/activities/internal/model"
)

// Severity of a transient board message.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

const (
	loadErrorText        = "Failed to load activities. Please try again later."
	signupFailedText     = "Failed to sign up. Please try again."
	unregisterFailedText = "Failed to unregister. Please try again."
	genericErrorText     = "An error occurred"
	missingInputText     = "Please provide both your email and an activity."
)

// Card is the view model of one rendered activity. SpotsLeft is derived
// during the card build and never stored anywhere that outlives a render
// pass.
type Card struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
	SpotsLeft       int
}

// Screen is the surface the board renders onto. Every call carries a full
// replacement of the respective section; the board never issues incremental
// updates.
type Screen interface {
	// RenderActivities replaces the whole activity list.
	RenderActivities(cards []Card)

	// RenderLoadError replaces the activity list with a static placeholder.
	RenderLoadError(text string)

	// SetOptions replaces the selection option set.
	SetOptions(names []string)

	ShowMessage(text string, severity Severity)
	ClearMessage()

	// ResetSignupForm clears the signup inputs.
	ResetSignupForm()
}

// Prompter asks for interactive confirmation before a removal.
type Prompter interface {
	Confirm(prompt string) bool
}

// Client is the transport the board loads and mutates activities through.
type Client interface {
	FetchActivities(ctx context.Context) (map[string]*model.Activity, error)
	Signup(ctx context.Context, activity, email string) (string, error)
	Unregister(ctx context.Context, activity, email string) (string, error)
}

// Board synchronizes the screen with the backend: every mutation is a round
// trip followed by a full reload, and the backend stays the only source of
// truth. Between renders the board retains nothing but the set of loaded
// activity names, which it uses to validate signup input.
type Board struct {
	client   Client
	screen   Screen
	prompter Prompter

	messageTTL time.Duration

	// mu guards screen updates and board-held view state. It is never held
	// across network I/O, so mutations and reloads may overlap freely; the
	// last reload to complete wins the rendered state.
	mu        sync.Mutex
	loaded    map[string]struct{}
	hideGen   uint64
	hideTimer *time.Timer
}

func New(client Client, screen Screen, prompter Prompter, messageTTL time.Duration) *Board {
	return &Board{
		client:     client,
		screen:     screen,
		prompter:   prompter,
		messageTTL: messageTTL,
		loaded:     make(map[string]struct{}),
	}
}

// Reload rebuilds the rendered activity list and the selection options from a
// fresh backend fetch. On failure the list is replaced with a static
// placeholder: stale cards never survive a failed reload. Safe to call
// concurrently; there is no retry.
func (b *Board) Reload(ctx context.Context) {
	activities, err := b.client.FetchActivities(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load activities")

		b.mu.Lock()
		defer b.mu.Unlock()
		b.screen.RenderLoadError(loadErrorText)
		return
	}

	cards := buildCards(activities)
	names := make([]string, 0, len(cards))
	loaded := make(map[string]struct{}, len(cards))
	for _, card := range cards {
		names = append(names, card.Name)
		loaded[card.Name] = struct{}{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.loaded = loaded
	b.screen.RenderActivities(cards)
	b.screen.SetOptions(names)
}

// Signup validates the inputs locally, signs email up for the activity, and
// reloads on success. A rejected or failed signup keeps the form as it is so
// the student can correct it, and never triggers a reload.
func (b *Board) Signup(ctx context.Context, activity, email string) {
	email = strings.TrimSpace(email)
	if email == "" || activity == "" {
		b.showMessage(missingInputText, SeverityError)
		return
	}

	b.mu.Lock()
	_, known := b.loaded[activity]
	b.mu.Unlock()
	if !known {
		b.showMessage(fmt.Sprintf("Unknown activity: %s", activity), SeverityError)
		return
	}

	message, err := b.client.Signup(ctx, activity, email)
	if err != nil {
		log.Warn().Err(err).Str("activity", activity).Msg("signup failed")
		b.showMessage(mutationErrorText(err, signupFailedText), SeverityError)
		return
	}
	if message == "" {
		message = fmt.Sprintf("Signed up %s for %s", email, activity)
	}

	b.mu.Lock()
	b.screen.ResetSignupForm()
	b.mu.Unlock()

	b.showMessage(message, SeveritySuccess)
	b.Reload(ctx)
}

// Unregister removes (activity, email) after interactive confirmation. A
// declined prompt aborts silently: no request, no render, no message.
func (b *Board) Unregister(ctx context.Context, activity, email string) {
	if !b.prompter.Confirm(fmt.Sprintf("Are you sure you want to remove %s from %s?", email, activity)) {
		return
	}

	message, err := b.client.Unregister(ctx, activity, email)
	if err != nil {
		log.Warn().Err(err).Str("activity", activity).Msg("unregister failed")
		b.showMessage(mutationErrorText(err, unregisterFailedText), SeverityError)
		return
	}
	if message == "" {
		message = fmt.Sprintf("Removed %s from %s", email, activity)
	}

	b.showMessage(message, SeveritySuccess)
	b.Reload(ctx)
}

// showMessage displays a transient message and (re)arms the hide timer. The
// generation check keeps a stale timer that already fired from clearing a
// newer message.
func (b *Board) showMessage(text string, severity Severity) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.hideTimer != nil {
		b.hideTimer.Stop()
	}
	b.hideGen++
	gen := b.hideGen

	b.screen.ShowMessage(text, severity)

	b.hideTimer = time.AfterFunc(b.messageTTL, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.hideGen != gen {
			return
		}
		b.screen.ClearMessage()
	})
}

// buildCards derives the render model from a catalog response, ordered by
// name so the rendering is deterministic.
func buildCards(activities map[string]*model.Activity) []Card {
	cards := make([]Card, 0, len(activities))
	linq.From(activities).
		SelectT(func(kv linq.KeyValue) Card {
			activity := kv.Value.(*model.Activity)
			return Card{
				Name:            kv.Key.(string),
				Description:     activity.Description,
				Schedule:        activity.Schedule,
				MaxParticipants: activity.MaxParticipants,
				Participants:    activity.Participants,
				SpotsLeft:       activity.MaxParticipants - len(activity.Participants),
			}
		}).
		OrderByT(func(card Card) string { return card.Name }).
		ToSlice(&cards)
	return cards
}

// mutationErrorText picks the transient message for a failed mutation: the
// server's detail when the rejection carried one, the generic text otherwise.
func mutationErrorText(err error, transportText string) string {
	var rej *client.RejectionError
	if errors.As(err, &rej) {
		if rej.Detail != "" {
			return rej.Detail
		}
		return genericErrorText
	}
	return transportText
}
