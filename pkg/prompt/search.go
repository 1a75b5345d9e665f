package prompt

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/travigo/departures/pkg/resolver"
)

// Search shows an input field above a candidate list refreshed on every
// keystroke. Enter picks the highlighted candidate, Escape cancels.
func (t *Terminal) Search(ctx context.Context, message string, source resolver.SourceFunc) (string, error) {
	app := t.application()

	var candidates []resolver.Candidate
	var chosen string

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	status := tview.NewTextView().
		SetTextColor(tcell.ColorGray)

	refresh := func(input string) {
		candidates = source(input)

		list.Clear()
		for _, candidate := range candidates {
			list.AddItem(tview.Escape(candidate.Label), tview.Escape(candidate.Description), 0, nil)
		}

		status.SetText(fmt.Sprintf("%d matches, ↑/↓ to move, Enter to choose, Esc to cancel", len(candidates)))
	}

	input := tview.NewInputField().
		SetLabel(message + " ").
		SetFieldWidth(0).
		SetChangedFunc(refresh)

	input.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		pageSize := t.pageSize()

		switch event.Key() {
		case tcell.KeyUp:
			list.SetCurrentItem(moveSelection(list.GetCurrentItem(), -1, len(candidates)))
		case tcell.KeyDown:
			list.SetCurrentItem(moveSelection(list.GetCurrentItem(), 1, len(candidates)))
		case tcell.KeyPgUp:
			list.SetCurrentItem(moveSelection(list.GetCurrentItem(), -pageSize, len(candidates)))
		case tcell.KeyPgDn:
			list.SetCurrentItem(moveSelection(list.GetCurrentItem(), pageSize, len(candidates)))
		case tcell.KeyEnter:
			if current := list.GetCurrentItem(); current >= 0 && current < len(candidates) {
				chosen = candidates[current].Value
				app.Stop()
			}
		case tcell.KeyEscape:
			app.Stop()
		default:
			return event
		}

		return nil
	})

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(input, 1, 0, true).
		AddItem(list, t.pageSize(), 0, false).
		AddItem(status, 1, 0, false).
		AddItem(tview.NewBox(), 0, 1, false)

	refresh("")

	if err := t.run(ctx, app, layout, input); err != nil {
		return "", err
	}

	return chosen, nil
}
