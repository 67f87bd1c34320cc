// Package touchviz draws a marker under every active touch contact on top
// of a host compositor's output, damaging only the regions that change.
//
// # Overview
//
// A Visualizer is embedded in a host's render loop and touch event stream.
// The host delivers down, motion and up events; before each frame the
// Visualizer submits damage for every contact, and during composition it
// draws a precomputed marker texture at each contact's position:
//
//	v, err := touchviz.New(host)
//	if err != nil {
//	    return err // the marker texture could not be uploaded
//	}
//	defer v.Close()
//
//	// input stream
//	v.OnTouchDown(touchviz.TouchDownEvent{ID: id, Pos: gg.Pt(x, y)})
//
//	// render loop
//	v.OnPreRender()
//	// ... host composes the frame ...
//	v.OnRender()
//
// The host implements render.Host: damage submission, frame scheduling,
// the active output's geometry and texture upload and blit.
// render.SoftwareHost is a complete CPU implementation.
//
// # Damage
//
// A marker drawn in one frame stays visible until its pixels are repainted,
// and a host with several buffers may show content of older frames. Each
// contact therefore keeps the positions of its last DefaultHistoryDepth
// rendered frames, and every frame damages all of them plus the current
// position. When a contact lifts, its positions keep being damaged for a
// few frames, until every buffer that may still hold them was repainted.
//
// # Errors
//
// Events for unknown ids and duplicate down events are logged and dropped
// (see DuplicatePolicy); they never fail the host. Only a failed texture
// upload in New is a hard error.
//
// # Thread Safety
//
// All Visualizer and Store methods are safe for concurrent use. Nothing in
// this package blocks or starts goroutines.
package touchviz
