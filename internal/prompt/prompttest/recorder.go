// Package prompttest provides an in-memory prompt.Terminal for tests
package prompttest

import (
	"github.com/MikeBiancalana/dateprompt/internal/prompt"
)

// Frame is one call to Render
type Frame struct {
	Content string
	Bottom  string
}

// Recorder records every frame and lifecycle call. Events are fed through a
// buffered channel; call Close once all events are queued.
type Recorder struct {
	Frames        []Frame
	DoneCalls     int
	CursorHidden  bool
	CursorToggles int
	events        chan prompt.Event
}

// NewRecorder creates a recorder with room for n queued events
func NewRecorder(n int) *Recorder {
	return &Recorder{events: make(chan prompt.Event, n)}
}

func (r *Recorder) Render(content, bottom string) {
	r.Frames = append(r.Frames, Frame{Content: content, Bottom: bottom})
}

func (r *Recorder) Done() {
	r.DoneCalls++
}

func (r *Recorder) Hide() {
	r.CursorHidden = true
	r.CursorToggles++
}

func (r *Recorder) Show() {
	r.CursorHidden = false
	r.CursorToggles++
}

func (r *Recorder) Events() <-chan prompt.Event {
	return r.events
}

// Send queues events for a later Loop
func (r *Recorder) Send(events ...prompt.Event) {
	for _, ev := range events {
		r.events <- ev
	}
}

// Close ends the event stream
func (r *Recorder) Close() {
	close(r.events)
}

// Last returns the most recent frame, or a zero Frame if nothing was rendered
func (r *Recorder) Last() Frame {
	if len(r.Frames) == 0 {
		return Frame{}
	}
	return r.Frames[len(r.Frames)-1]
}

var _ prompt.Terminal = (*Recorder)(nil)
