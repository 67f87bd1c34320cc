package touchviz

import (
	"errors"

	"github.com/gogpu/gg"
)

// TouchDownEvent reports a new contact.
type TouchDownEvent struct {
	ID int32

	// Pos is normalized to the active output: (0,0) is its top-left
	// corner and (1,1) its bottom-right.
	Pos gg.Point
}

// TouchMotionEvent reports a contact moving.
type TouchMotionEvent struct {
	ID  int32
	Pos gg.Point
}

// TouchUpEvent reports a contact lifting.
type TouchUpEvent struct {
	ID int32
}

// mapPoint converts a normalized point to output space using the host's
// active output at the time of the call.
func (v *Visualizer) mapPoint(p gg.Point) gg.Point {
	out, ok := v.host.ActiveOutput()
	if !ok {
		Logger().Debug("touchviz: no active output, using raw position", "x", p.X, "y", p.Y)
		return p
	}
	return out.Map(p)
}

// OnTouchDown starts tracking a contact and schedules a frame.
//
// A down for an id that is already tracked returns ErrDuplicateContact. With
// DuplicateReset the old marker is flushed and the contact restarts at
// the new position; with DuplicateReject the event is dropped.
func (v *Visualizer) OnTouchDown(ev TouchDownEvent) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}

	pos := v.mapPoint(ev.Pos)
	err := v.store.Insert(ev.ID, pos)
	if errors.Is(err, ErrDuplicateContact) {
		Logger().Warn("touchviz: duplicate touch down", "id", ev.ID, "policy", v.opts.policy)
		if v.opts.policy == DuplicateReject {
			return err
		}
		if prev, replaced := v.store.Reset(ev.ID, pos); replaced {
			v.tracker.Flush(prev, v.host)
		}
	}

	v.host.ScheduleFrame()
	return err
}

// OnTouchMotion moves a tracked contact and schedules a frame.
// Motion for an unknown id is logged and returns ErrUnknownContact.
func (v *Visualizer) OnTouchMotion(ev TouchMotionEvent) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}

	if err := v.store.Update(ev.ID, v.mapPoint(ev.Pos)); err != nil {
		Logger().Warn("touchviz: touch motion dropped", "id", ev.ID, "err", err)
		return err
	}
	v.host.ScheduleFrame()
	return nil
}

// OnTouchUp flushes a contact's markers, stops tracking it and schedules
// a frame. Up for an unknown id is logged and returns ErrUnknownContact.
func (v *Visualizer) OnTouchUp(ev TouchUpEvent) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}

	c, err := v.store.Remove(ev.ID)
	if err != nil {
		Logger().Warn("touchviz: touch up dropped", "id", ev.ID, "err", err)
		return err
	}
	v.tracker.Flush(c, v.host)
	v.host.ScheduleFrame()
	return nil
}
