// Package prompt implements the interactive search and checkbox prompts on
// top of tview.
package prompt

import (
	"context"

	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const defaultPageSize = 10

// Terminal is a resolver.Prompter drawing full screen tview prompts.
type Terminal struct {
	PageSize int

	// NewApplication builds the tview application for each prompt, tests swap
	// in one drawing on a tcell simulation screen.
	NewApplication func() *tview.Application
}

func NewTerminal(pageSize int) *Terminal {
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	return &Terminal{
		PageSize:       pageSize,
		NewApplication: tview.NewApplication,
	}
}

// run blocks until the application is stopped, either by a key handler or
// by ctx being cancelled. A context cancelled before the UI starts returns
// straight away as if the prompt had been dismissed.
func (t *Terminal) run(ctx context.Context, app *tview.Application, root tview.Primitive, focus tview.Primitive) error {
	if ctx.Err() != nil {
		log.Debug().Msg("Prompt context cancelled before start")
		return nil
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			log.Debug().Msg("Prompt context cancelled")
			// Queued so the stop lands even if the event loop has not started yet
			app.QueueUpdate(app.Stop)
		case <-done:
		}
	}()

	return app.SetRoot(root, true).SetFocus(focus).Run()
}

func (t *Terminal) application() *tview.Application {
	if t.NewApplication == nil {
		return tview.NewApplication()
	}

	return t.NewApplication()
}

func (t *Terminal) pageSize() int {
	if t.PageSize < 1 {
		return defaultPageSize
	}

	return t.PageSize
}

// moveSelection clamps current+delta into the list bounds.
func moveSelection(current int, delta int, count int) int {
	if count == 0 {
		return 0
	}

	next := current + delta
	if next < 0 {
		return 0
	}
	if next >= count {
		return count - 1
	}

	return next
}
