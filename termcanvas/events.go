package termcanvas

import (
	"github.com/gdamore/tcell/v2"
)

// EventKind classifies terminal events the field host reacts to.
type EventKind uint8

const (
	EventNone EventKind = iota
	EventResize
	EventVisibility
	EventQuit
)

// Event is a translated terminal event.
type Event struct {
	Kind    EventKind
	Visible bool // EventVisibility only
}

// Translate maps a tcell event to a host event. Focus changes stand in for
// page visibility.
func Translate(ev tcell.Event) Event {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return Event{Kind: EventResize}
	case *tcell.EventFocus:
		return Event{Kind: EventVisibility, Visible: ev.Focused}
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return Event{Kind: EventQuit}
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return Event{Kind: EventQuit}
			}
		}
	}
	return Event{Kind: EventNone}
}

// Poll forwards translated events from the screen until the screen is
// finalized or done is closed. Run it in its own goroutine.
func Poll(screen tcell.Screen, out chan<- Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		e := Translate(ev)
		if e.Kind == EventNone {
			continue
		}
		select {
		case out <- e:
		case <-done:
			return
		}
	}
}
