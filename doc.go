// Package cursorfx exposes the pointer position and a hover-driven fade as
// named style variables on a live tree of elements, for effects such as a glow
// that follows the cursor.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates an [Ebitengine]
// window and game loop for you:
//
//	scene := cursorfx.NewScene(640, 480)
//	card := cursorfx.NewElement("card", cursorfx.DefaultMarker)
//	card.SetBounds(100, 100, 200, 120)
//	card.SetStyle("--cursor-fade-in-time: 200ms; --cursor-fade-out-time: 400ms")
//	scene.Body().AddChild(card)
//	cursorfx.Run(scene, cursorfx.RunConfig{Title: "glow", Width: 640, Height: 480})
//
// Headless hosts and tests drive the scene with [Scene.InjectMove] and
// [Scene.Advance] instead.
//
// # Variables
//
// Every element carrying a tracked class (by default "follow-cursor-vars")
// receives, while it is hovered or fading:
//
//	--cursor-pos-x-px, --cursor-pos-y-px                  offset inside the bounding box
//	--cursor-pos-x-fraction, --cursor-pos-y-fraction      offset / box size, not clamped
//	--cursor-pos-x-percentage, --cursor-pos-y-percentage  fraction * 100, with %
//	--cursor-pos-fade-fraction, --cursor-pos-fade-percentage
//
// The html element uses the --cursor-window-pos- prefix and is measured
// against the window. Fade timing comes from the computed style properties
// --cursor-fade-in-time, --cursor-fade-out-time and --cursor-fade-function.
//
// # Engine
//
// [Engine] is the state machine underneath [Scene]. It consumes events
// ([PointerMoved], [HoverEntered], [HoverLeft], [MutationBatch],
// [MarkersChanged], [FrameTick]) through [Engine.Apply] and returns the
// variable writes each one produced, so it can run against any [Host].
//
// Reversing a fade mid-flight never makes the value jump: the new timeline
// starts where the old one was. An element that loses its tracked class
// while hovered keeps fading out after it stops being observed.
//
// [Ebitengine]: https://ebitengine.org
package cursorfx
