package core

import platformcore "github.com/vovakirdan/bopdrop/internal/core"

// Event is published by the Machine to presentation subscribers.
type Event interface {
	isEvent()
}

type (
	GameStarted struct{}

	BallDropped struct {
		X    float64
		Rank int
		Next int // New on-deck rank
	}

	BallsMerged struct {
		Rank    int
		NewRank int
		Pos     platformcore.Vec
	}

	BopAchieved struct {
		Pos platformcore.Vec
	}

	GameOver struct {
		FinalScore int
	}

	GameRestarted struct{}
)

func (GameStarted) isEvent()   {}
func (BallDropped) isEvent()   {}
func (BallsMerged) isEvent()   {}
func (BopAchieved) isEvent()   {}
func (GameOver) isEvent()      {}
func (GameRestarted) isEvent() {}

// Subscription is a registered event handler. Cancel is idempotent.
type Subscription struct {
	bus *bus
	id  int
}

// Cancel stops delivery to the handler.
func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.remove(s.id)
	s.bus = nil
}

type handler struct {
	id int
	fn func(Event)
}

type bus struct {
	last     int
	handlers []handler
}

func (b *bus) subscribe(fn func(Event)) *Subscription {
	b.last++
	b.handlers = append(b.handlers, handler{id: b.last, fn: fn})
	return &Subscription{bus: b, id: b.last}
}

func (b *bus) remove(id int) {
	for i, h := range b.handlers {
		if h.id == id {
			b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
			return
		}
	}
}

func (b *bus) publish(e Event) {
	handlers := append([]handler(nil), b.handlers...)
	for _, h := range handlers {
		h.fn(e)
	}
}

func (b *bus) close() {
	b.handlers = nil
}
