// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the events produced by the display event loop
// and delivered to window listeners and wait tokens.
package events

import (
	"fmt"
	"image"
	"time"

	"github.com/imview/imview/events/key"
)

// Types determines the type of event, and is the level at which
// listeners can select which events to receive.
type Types int32

const (
	// UnknownType is the zero value, an unknown event type.
	UnknownType Types = iota

	// KeyDown happens when a key is pressed (or auto-repeated).
	KeyDown

	// KeyUp happens when a key is released.
	KeyUp

	// MouseDown happens when a mouse button is pressed.
	MouseDown

	// MouseUp happens when a mouse button is released.
	MouseUp

	// MouseMove happens when the cursor moves within the window.
	MouseMove

	// Scroll is a mouse wheel or gesture scroll event.
	Scroll

	// WinResize happens when the window client area has been resized.
	WinResize

	// WinShow happens when the window becomes visible.
	WinShow

	// WinFocus happens when the window gains keyboard focus.
	WinFocus

	// WinFocusLost happens when the window loses keyboard focus.
	WinFocusLost

	// WinCloseReq happens when the user or OS requests that the window
	// close. Whether the window is then actually destroyed is governed
	// by the window's close policy.
	WinCloseReq

	// WinClose happens when the window has been destroyed. It is the
	// last event delivered for a window.
	WinClose

	// SaveReq happens when the save shortcut is pressed; it carries the
	// currently displayed image buffer for an external collaborator
	// to encode and write somewhere.
	SaveReq

	// Custom is a user-defined event with arbitrary data.
	Custom

	TypesN
)

var typeNames = map[Types]string{
	UnknownType:  "Unknown",
	KeyDown:      "KeyDown",
	KeyUp:        "KeyUp",
	MouseDown:    "MouseDown",
	MouseUp:      "MouseUp",
	MouseMove:    "MouseMove",
	Scroll:       "Scroll",
	WinResize:    "WinResize",
	WinShow:      "WinShow",
	WinFocus:     "WinFocus",
	WinFocusLost: "WinFocusLost",
	WinCloseReq:  "WinCloseReq",
	WinClose:     "WinClose",
	SaveReq:      "SaveReq",
	Custom:       "Custom",
}

func (t Types) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Types(%d)", int32(t))
}

// Event is the interface satisfied by all event types.
// Events are immutable values apart from the Handled flag.
type Event interface {
	// Type returns the type of the event.
	Type() Types

	// Time returns the time at which the event was generated.
	Time() time.Time

	// IsHandled returns whether the event has been marked as handled.
	IsHandled() bool

	// SetHandled marks the event as handled, stopping any further
	// listener processing.
	SetHandled()

	// String satisfies fmt.Stringer for debugging.
	String() string
}

// Base is the base implementation embedded in all event structs.
type Base struct {
	// Typ is the type of the event.
	Typ Types

	// GenTime is when the event was generated.
	GenTime time.Time

	handled bool
}

// NewBase returns a Base of the given type, stamped with the current time.
func NewBase(typ Types) Base {
	return Base{Typ: typ, GenTime: time.Now()}
}

func (ev *Base) Type() Types     { return ev.Typ }
func (ev *Base) Time() time.Time { return ev.GenTime }
func (ev *Base) IsHandled() bool { return ev.handled }
func (ev *Base) SetHandled()     { ev.handled = true }

func (ev *Base) String() string {
	return fmt.Sprintf("%v{Time: %v}", ev.Typ, ev.GenTime.Format("04:05"))
}

// Key is a keyboard event: [KeyDown] or [KeyUp].
type Key struct {
	Base

	// Rune is the character produced by the key, if any,
	// under the current layout and modifiers.
	Rune rune

	// Code identifies the physical key.
	Code key.Codes

	// Mods are the modifiers held when the event was generated.
	Mods key.Modifiers
}

// NewKey returns a new key event of the given type.
func NewKey(typ Types, rn rune, code key.Codes, mods key.Modifiers) *Key {
	return &Key{Base: NewBase(typ), Rune: rn, Code: code, Mods: mods}
}

// Chord returns the canonical chord string for the event, e.g. "Control+S".
func (ev *Key) Chord() key.Chord {
	return key.NewChord(ev.Rune, ev.Code, ev.Mods)
}

func (ev *Key) String() string {
	return fmt.Sprintf("%v{Chord: %v, Rune: %d, Code: %d, Time: %v}",
		ev.Typ, ev.Chord(), ev.Rune, ev.Code, ev.GenTime.Format("04:05"))
}

// Buttons is a mouse button.
type Buttons int32

const (
	NoButton Buttons = iota
	Left
	Middle
	Right
)

// Mouse is a mouse button or motion event:
// [MouseDown], [MouseUp], or [MouseMove].
type Mouse struct {
	Base

	// Button is the button involved, or NoButton for pure motion.
	Button Buttons

	// Where is the cursor position in window pixel coordinates.
	Where image.Point

	// Prev is the previous cursor position, for motion events.
	Prev image.Point

	// Mods are the modifiers held when the event was generated.
	Mods key.Modifiers
}

// NewMouse returns a new mouse event of the given type.
func NewMouse(typ Types, but Buttons, where image.Point, mods key.Modifiers) *Mouse {
	return &Mouse{Base: NewBase(typ), Button: but, Where: where, Mods: mods}
}

func (ev *Mouse) String() string {
	return fmt.Sprintf("%v{Button: %d, Pos: %v, Time: %v}",
		ev.Typ, ev.Button, ev.Where, ev.GenTime.Format("04:05"))
}

// MouseScroll is a [Scroll] event.
type MouseScroll struct {
	Mouse

	// Delta is the amount scrolled, in scroll units.
	Delta image.Point
}

// NewScroll returns a new scroll event.
func NewScroll(where, delta image.Point, mods key.Modifiers) *MouseScroll {
	return &MouseScroll{
		Mouse: Mouse{Base: NewBase(Scroll), Where: where, Mods: mods},
		Delta: delta,
	}
}

// WindowEvent is a window lifecycle or geometry event:
// [WinResize], [WinShow], [WinFocus], [WinFocusLost],
// [WinCloseReq], or [WinClose].
type WindowEvent struct {
	Base

	// Size is the window client area size in pixels, for [WinResize].
	Size image.Point
}

// NewWindow returns a new window event of the given type.
func NewWindow(typ Types) *WindowEvent {
	return &WindowEvent{Base: NewBase(typ)}
}

// NewResize returns a new [WinResize] event with the given pixel size.
func NewResize(size image.Point) *WindowEvent {
	return &WindowEvent{Base: NewBase(WinResize), Size: size}
}

// Save is a [SaveReq] event, carrying the currently displayed image
// buffer. Image is a *system.Buffer; it is typed as any here to keep
// this package independent of the system package.
type Save struct {
	Base

	// Image is the currently displayed *system.Buffer.
	Image any
}

// NewSave returns a new save-request event carrying the given buffer.
func NewSave(img any) *Save {
	return &Save{Base: NewBase(SaveReq), Image: img}
}

// CustomEvent is a user-defined [Custom] event with arbitrary data.
type CustomEvent struct {
	Base

	// Data is whatever the sender attached.
	Data any
}

// NewCustom returns a new custom event with the given data.
func NewCustom(data any) *CustomEvent {
	return &CustomEvent{Base: NewBase(Custom), Data: data}
}
