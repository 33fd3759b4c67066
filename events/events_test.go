// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imview/imview/events/key"
)

func TestListenersOrder(t *testing.T) {
	var ls Listeners
	var got []int
	ls.Add(KeyDown, func(ev Event) { got = append(got, 1) })
	ls.Add(KeyDown, func(ev Event) { got = append(got, 2) })
	ls.Call(NewKey(KeyDown, 'a', key.CodeA, 0))
	// last added runs first
	assert.Equal(t, []int{2, 1}, got)
}

func TestListenersHandled(t *testing.T) {
	var ls Listeners
	var got []int
	ls.Add(KeyDown, func(ev Event) { got = append(got, 1) })
	ls.Add(KeyDown, func(ev Event) {
		got = append(got, 2)
		ev.SetHandled()
	})
	ev := NewKey(KeyDown, 'a', key.CodeA, 0)
	ls.Call(ev)
	assert.Equal(t, []int{2}, got)

	// an already-handled event is not delivered at all
	ls.Call(ev)
	assert.Equal(t, []int{2}, got)
}

func TestKeyChord(t *testing.T) {
	ev := NewKey(KeyDown, 's', key.CodeS, key.Control)
	assert.Equal(t, key.Chord("Control+S"), ev.Chord())
	assert.Equal(t, KeyDown, ev.Type())
	assert.False(t, ev.Time().IsZero())
}

func TestTypesString(t *testing.T) {
	assert.Equal(t, "KeyDown", KeyDown.String())
	assert.Equal(t, "WinCloseReq", WinCloseReq.String())
	assert.Equal(t, "Types(99)", Types(99).String())
}

func TestEventConstructors(t *testing.T) {
	me := NewMouse(MouseDown, Left, image.Pt(3, 4), 0)
	assert.Equal(t, MouseDown, me.Type())
	assert.Equal(t, image.Pt(3, 4), me.Where)

	se := NewScroll(image.Pt(1, 1), image.Pt(0, -2), 0)
	assert.Equal(t, Scroll, se.Type())
	assert.Equal(t, image.Pt(0, -2), se.Delta)

	re := NewResize(image.Pt(640, 480))
	assert.Equal(t, WinResize, re.Type())
	assert.Equal(t, image.Pt(640, 480), re.Size)

	ce := NewCustom("hi")
	assert.Equal(t, Custom, ce.Type())
	assert.Equal(t, "hi", ce.Data)
}
