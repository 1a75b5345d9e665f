package prompt

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/travigo/departures/pkg/resolver"
)

// MultiSelect shows a checkbox list. Space toggles the highlighted entry,
// 'a' toggles all of them, Enter confirms and Escape cancels with nothing
// selected.
func (t *Terminal) MultiSelect(ctx context.Context, message string, candidates []resolver.Candidate) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	app := t.application()
	checked := make([]bool, len(candidates))
	confirmed := false

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	list.SetBorder(true).
		SetTitle(message).
		SetTitleAlign(tview.AlignLeft)

	for i, candidate := range candidates {
		list.AddItem(checkboxLabel(candidate.Label, checked[i]), tview.Escape(candidate.Description), 0, nil)
	}

	redraw := func(i int) {
		list.SetItemText(i, checkboxLabel(candidates[i].Label, checked[i]), tview.Escape(candidates[i].Description))
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyRune && event.Rune() == ' ':
			current := list.GetCurrentItem()
			checked[current] = !checked[current]
			redraw(current)
		case event.Key() == tcell.KeyRune && event.Rune() == 'a':
			toggleAll(checked)
			for i := range candidates {
				redraw(i)
			}
		case event.Key() == tcell.KeyEnter:
			confirmed = true
			app.Stop()
		case event.Key() == tcell.KeyEscape:
			app.Stop()
		default:
			return event
		}

		return nil
	})

	help := tview.NewTextView().
		SetTextColor(tcell.ColorGray).
		SetText("Space to toggle, a to toggle all, Enter to confirm, Esc to cancel")

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(list, len(candidates)+2, 0, true).
		AddItem(help, 1, 0, false).
		AddItem(tview.NewBox(), 0, 1, false)

	if err := t.run(ctx, app, layout, list); err != nil {
		return nil, err
	}

	if !confirmed {
		return nil, nil
	}

	return selectedValues(candidates, checked), nil
}

func checkboxLabel(label string, checked bool) string {
	mark := " "
	if checked {
		mark = "x"
	}

	return tview.Escape(fmt.Sprintf("[%s] %s", mark, label))
}

// toggleAll checks everything unless everything is already checked.
func toggleAll(checked []bool) {
	allChecked := true
	for _, c := range checked {
		if !c {
			allChecked = false
			break
		}
	}

	for i := range checked {
		checked[i] = !allChecked
	}
}

func selectedValues(candidates []resolver.Candidate, checked []bool) []string {
	var values []string

	for i, candidate := range candidates {
		if checked[i] {
			values = append(values, candidate.Value)
		}
	}

	return values
}
