// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package tcellhost runs a touchviz overlay in a terminal.
//
// Host implements render.Host on a tcell.Screen, treating every cell as one
// output pixel. Damaged cells are reset to the background before markers
// are drawn, so the terminal shows exactly what a compositor with a single
// retained buffer would.
//
// Run maps mouse buttons to touch contacts: pressing a button is a touch
// down, dragging is motion and releasing is touch up.
//
//	screen, _ := tcell.NewScreen()
//	_ = screen.Init()
//	defer screen.Fini()
//
//	host, _ := tcellhost.New(screen)
//	v, _ := touchviz.New(host, touchviz.WithRadius(3))
//	_ = host.Run(ctx, v)
package tcellhost
