// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen

package desktop

import (
	"image"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/imview/imview/events"
	"github.com/imview/imview/events/key"
)

// ConnectEvents connects the glfw window callbacks to event dispatch.
// Callbacks fire inside glfw.WaitEventsTimeout on the event loop
// thread, so they dispatch directly.
func (w *Window) ConnectEvents() {
	w.Glw.SetKeyCallback(w.KeyEvent)
	w.Glw.SetMouseButtonCallback(w.MouseButtonEvent)
	w.Glw.SetCursorPosCallback(w.CursorPosEvent)
	w.Glw.SetScrollCallback(w.ScrollEvent)
	w.Glw.SetFramebufferSizeCallback(w.FramebufferSizeEvent)
	w.Glw.SetCloseCallback(w.CloseReqEvent)
	w.Glw.SetFocusCallback(w.FocusEvent)
}

func (w *Window) KeyEvent(gw *glfw.Window, k glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	code := glfwKeyCode(k)
	if code == key.CodeUnknown {
		return
	}
	typ := events.KeyDown
	if action == glfw.Release {
		typ = events.KeyUp
	}
	w.Dispatch(events.NewKey(typ, key.CodeRuneMap[code], code, glfwMods(mods)))
}

func (w *Window) MouseButtonEvent(gw *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	typ := events.MouseDown
	if action == glfw.Release {
		typ = events.MouseUp
	}
	w.Dispatch(events.NewMouse(typ, glfwButton(button), w.cursorPos(gw), glfwMods(mods)))
}

func (w *Window) CursorPosEvent(gw *glfw.Window, x, y float64) {
	w.Dispatch(events.NewMouse(events.MouseMove, events.NoButton, image.Pt(int(x), int(y)), 0))
}

func (w *Window) ScrollEvent(gw *glfw.Window, xoff, yoff float64) {
	w.Dispatch(events.NewScroll(w.cursorPos(gw), image.Pt(int(xoff), int(yoff)), 0))
}

func (w *Window) FramebufferSizeEvent(gw *glfw.Window, width, height int) {
	w.Dispatch(events.NewResize(image.Pt(width, height)))
}

func (w *Window) CloseReqEvent(gw *glfw.Window) {
	// the close policy decides; glfw must not destroy on its own
	gw.SetShouldClose(false)
	w.CloseReq()
}

func (w *Window) FocusEvent(gw *glfw.Window, focused bool) {
	typ := events.WinFocus
	if !focused {
		typ = events.WinFocusLost
	}
	w.Dispatch(events.NewWindow(typ))
}

func (w *Window) cursorPos(gw *glfw.Window) image.Point {
	x, y := gw.GetCursorPos()
	return image.Pt(int(x), int(y))
}

func glfwMods(m glfw.ModifierKey) key.Modifiers {
	var mods key.Modifiers
	mods.SetFlag(m&glfw.ModShift != 0, key.Shift)
	mods.SetFlag(m&glfw.ModControl != 0, key.Control)
	mods.SetFlag(m&glfw.ModAlt != 0, key.Alt)
	mods.SetFlag(m&glfw.ModSuper != 0, key.Meta)
	return mods
}

func glfwButton(b glfw.MouseButton) events.Buttons {
	switch b {
	case glfw.MouseButtonLeft:
		return events.Left
	case glfw.MouseButtonMiddle:
		return events.Middle
	case glfw.MouseButtonRight:
		return events.Right
	}
	return events.NoButton
}

var glfwKeyCodes = map[glfw.Key]key.Codes{
	glfw.KeyA:            key.CodeA,
	glfw.KeyB:            key.CodeB,
	glfw.KeyC:            key.CodeC,
	glfw.KeyD:            key.CodeD,
	glfw.KeyE:            key.CodeE,
	glfw.KeyF:            key.CodeF,
	glfw.KeyG:            key.CodeG,
	glfw.KeyH:            key.CodeH,
	glfw.KeyI:            key.CodeI,
	glfw.KeyJ:            key.CodeJ,
	glfw.KeyK:            key.CodeK,
	glfw.KeyL:            key.CodeL,
	glfw.KeyM:            key.CodeM,
	glfw.KeyN:            key.CodeN,
	glfw.KeyO:            key.CodeO,
	glfw.KeyP:            key.CodeP,
	glfw.KeyQ:            key.CodeQ,
	glfw.KeyR:            key.CodeR,
	glfw.KeyS:            key.CodeS,
	glfw.KeyT:            key.CodeT,
	glfw.KeyU:            key.CodeU,
	glfw.KeyV:            key.CodeV,
	glfw.KeyW:            key.CodeW,
	glfw.KeyX:            key.CodeX,
	glfw.KeyY:            key.CodeY,
	glfw.KeyZ:            key.CodeZ,
	glfw.Key1:            key.Code1,
	glfw.Key2:            key.Code2,
	glfw.Key3:            key.Code3,
	glfw.Key4:            key.Code4,
	glfw.Key5:            key.Code5,
	glfw.Key6:            key.Code6,
	glfw.Key7:            key.Code7,
	glfw.Key8:            key.Code8,
	glfw.Key9:            key.Code9,
	glfw.Key0:            key.Code0,
	glfw.KeyEnter:        key.CodeReturnEnter,
	glfw.KeyEscape:       key.CodeEscape,
	glfw.KeyBackspace:    key.CodeBackspace,
	glfw.KeyTab:          key.CodeTab,
	glfw.KeySpace:        key.CodeSpacebar,
	glfw.KeyMinus:        key.CodeHyphenMinus,
	glfw.KeyEqual:        key.CodeEqualSign,
	glfw.KeyLeftBracket:  key.CodeLeftSquareBracket,
	glfw.KeyRightBracket: key.CodeRightSquareBracket,
	glfw.KeyBackslash:    key.CodeBackslash,
	glfw.KeySemicolon:    key.CodeSemicolon,
	glfw.KeyApostrophe:   key.CodeApostrophe,
	glfw.KeyGraveAccent:  key.CodeGraveAccent,
	glfw.KeyComma:        key.CodeComma,
	glfw.KeyPeriod:       key.CodeFullStop,
	glfw.KeySlash:        key.CodeSlash,
	glfw.KeyCapsLock:     key.CodeCapsLock,
	glfw.KeyF1:           key.CodeF1,
	glfw.KeyF2:           key.CodeF2,
	glfw.KeyF3:           key.CodeF3,
	glfw.KeyF4:           key.CodeF4,
	glfw.KeyF5:           key.CodeF5,
	glfw.KeyF6:           key.CodeF6,
	glfw.KeyF7:           key.CodeF7,
	glfw.KeyF8:           key.CodeF8,
	glfw.KeyF9:           key.CodeF9,
	glfw.KeyF10:          key.CodeF10,
	glfw.KeyF11:          key.CodeF11,
	glfw.KeyF12:          key.CodeF12,
	glfw.KeyInsert:       key.CodeInsert,
	glfw.KeyHome:         key.CodeHome,
	glfw.KeyPageUp:       key.CodePageUp,
	glfw.KeyDelete:       key.CodeDelete,
	glfw.KeyEnd:          key.CodeEnd,
	glfw.KeyPageDown:     key.CodePageDown,
	glfw.KeyRight:        key.CodeRightArrow,
	glfw.KeyLeft:         key.CodeLeftArrow,
	glfw.KeyDown:         key.CodeDownArrow,
	glfw.KeyUp:           key.CodeUpArrow,
	glfw.KeyLeftControl:  key.CodeLeftControl,
	glfw.KeyLeftShift:    key.CodeLeftShift,
	glfw.KeyLeftAlt:      key.CodeLeftAlt,
	glfw.KeyLeftSuper:    key.CodeLeftMeta,
	glfw.KeyRightControl: key.CodeRightControl,
	glfw.KeyRightShift:   key.CodeRightShift,
	glfw.KeyRightAlt:     key.CodeRightAlt,
	glfw.KeyRightSuper:   key.CodeRightMeta,
}

func glfwKeyCode(k glfw.Key) key.Codes {
	return glfwKeyCodes[k]
}
