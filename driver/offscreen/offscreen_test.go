// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package offscreen

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imview/imview/driver/base"
	"github.com/imview/imview/events"
	"github.com/imview/imview/system"
)

// newTestApp returns an isolated app with its loop running on its own
// goroutine, so loop lifecycle can be tested without the process-wide
// instance.
func newTestApp(t *testing.T) *App {
	t.Helper()
	a := &App{App: base.NewApp(), wake: make(chan struct{}, 1)}
	a.This = a
	go a.MainLoop()
	return a
}

func send(t *testing.T, a *App, cmd *system.Command) system.Result {
	t.Helper()
	cmd.Ack = make(chan system.Result, 1)
	require.NoError(t, a.Send(cmd))
	select {
	case res := <-cmd.Ack:
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("command not acknowledged")
		return system.Result{}
	}
}

func TestLoopStopsAfterLastWindow(t *testing.T) {
	a := newTestApp(t)
	res := send(t, a, &system.Command{Op: system.CreateWindow})
	require.NoError(t, res.Err)
	require.NotZero(t, res.Window)
	assert.Equal(t, 1, a.NWindows())

	res = send(t, a, &system.Command{Op: system.Close, Window: res.Window})
	require.NoError(t, res.Err)

	select {
	case <-a.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop after last window closed")
	}
	assert.Equal(t, system.Stopped, a.State())

	cmd := &system.Command{Op: system.NoOp, Ack: make(chan system.Result, 1)}
	assert.ErrorIs(t, a.Send(cmd), system.ErrEventLoopClosed)
}

func TestKeepAlive(t *testing.T) {
	a := newTestApp(t)
	a.SetKeepAlive(true)
	res := send(t, a, &system.Command{Op: system.CreateWindow})
	require.NoError(t, res.Err)
	send(t, a, &system.Command{Op: system.Close, Window: res.Window})

	select {
	case <-a.Done():
		t.Fatal("keep-alive loop stopped with the last window")
	case <-time.After(50 * time.Millisecond):
	}

	a.StopMain()
	select {
	case <-a.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestStopDrainsWindowsAndWaiters(t *testing.T) {
	a := newTestApp(t)
	res := send(t, a, &system.Command{Op: system.CreateWindow})
	require.NoError(t, res.Err)

	wt := system.NewWaiter(nil)
	send(t, a, &system.Command{Op: system.AddWaiter, Window: res.Window, Waiter: wt})

	send(t, a, &system.Command{Op: system.Stop})
	select {
	case <-a.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}
	assert.Equal(t, 0, a.NWindows())

	// the draining loop dispatched WinClose into the waiter before
	// shutting it down
	ev, ok := <-wt.C
	if ok {
		assert.Equal(t, events.WinClose, ev.Type())
	}
}

func TestCommandsOnClosedWindow(t *testing.T) {
	a := newTestApp(t)
	a.SetKeepAlive(true)
	res := send(t, a, &system.Command{Op: system.CreateWindow})
	require.NoError(t, res.Err)
	id := res.Window
	send(t, a, &system.Command{Op: system.Close, Window: id})

	res = send(t, a, &system.Command{Op: system.SetTitle, Window: id, Title: "x"})
	assert.ErrorIs(t, res.Err, system.ErrWindowClosed)

	// a waiter aimed at a dead window is shut down, not leaked
	wt := system.NewWaiter(nil)
	res = send(t, a, &system.Command{Op: system.AddWaiter, Window: id, Waiter: wt})
	assert.ErrorIs(t, res.Err, system.ErrWindowClosed)
	_, ok := <-wt.C
	assert.False(t, ok)

	a.StopMain()
	<-a.Done()
}

func TestOneEventSatisfiesAllWaiters(t *testing.T) {
	a := newTestApp(t)
	a.SetKeepAlive(true)
	res := send(t, a, &system.Command{Op: system.CreateWindow})
	require.NoError(t, res.Err)
	id := res.Window

	isKey := func(ev events.Event) bool { return ev.Type() == events.KeyDown }
	w1 := system.NewWaiter(isKey)
	w2 := system.NewWaiter(isKey)
	send(t, a, &system.Command{Op: system.AddWaiter, Window: id, Waiter: w1})
	send(t, a, &system.Command{Op: system.AddWaiter, Window: id, Waiter: w2})

	ke := events.NewKey(events.KeyDown, 'a', 0, 0)
	send(t, a, &system.Command{Op: system.PostEvent, Window: id, Event: ke})

	got1, ok := <-w1.C
	require.True(t, ok)
	got2, ok := <-w2.C
	require.True(t, ok)
	assert.Same(t, events.Event(ke), got1)
	assert.Same(t, events.Event(ke), got2)

	a.StopMain()
	<-a.Done()
}

func TestRunOnLoop(t *testing.T) {
	a := newTestApp(t)
	a.SetKeepAlive(true)
	ran := false
	send(t, a, &system.Command{Op: system.Run, Func: func() { ran = true }})
	assert.True(t, ran)
	a.StopMain()
	<-a.Done()
}

func TestWindowFrame(t *testing.T) {
	a := newTestApp(t)
	opts := system.NewWindowOptions("frame", 8, 8)
	opts.Background = color.RGBA{R: 255, A: 255}
	res := send(t, a, &system.Command{Op: system.CreateWindow, Options: opts})
	require.NoError(t, res.Err)

	b := system.NewBuffer(system.Gray8, 8, 8)
	res = send(t, a, &system.Command{Op: system.SetImage, Window: res.Window, Image: b})
	require.NoError(t, res.Err)

	w := a.WindowByID(res.Window).(*Window)
	var frameSize int
	send(t, a, &system.Command{Op: system.Run, Func: func() {
		if fr := w.Frame(); fr != nil {
			frameSize = fr.Rect.Max.X
		}
	}})
	assert.Equal(t, 8, frameSize)

	a.StopMain()
	<-a.Done()
}

func TestSendFromLoopThread(t *testing.T) {
	a := newTestApp(t)
	a.SetKeepAlive(true)
	var id system.WindowID
	send(t, a, &system.Command{Op: system.Run, Func: func() {
		// a send from the loop goroutine is applied directly; the
		// ack is buffered and readable inline
		cmd := &system.Command{Op: system.CreateWindow, Ack: make(chan system.Result, 1)}
		if err := a.Send(cmd); err != nil {
			t.Error(err)
			return
		}
		select {
		case res := <-cmd.Ack:
			id = res.Window
		default:
			t.Error("directly applied command left its ack unfulfilled")
		}
	}})
	require.NotZero(t, id)
	assert.Equal(t, 1, a.NWindows())

	a.StopMain()
	<-a.Done()
}

func TestMainLoopSecondCall(t *testing.T) {
	a := newTestApp(t)
	a.SetKeepAlive(true)
	send(t, a, &system.Command{Op: system.NoOp})

	returned := make(chan struct{})
	go func() {
		a.MainLoop()
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(5 * time.Second):
		t.Fatal("redundant MainLoop call did not return")
	}

	// the live loop must be unaffected
	res := send(t, a, &system.Command{Op: system.CreateWindow})
	require.NoError(t, res.Err)
	require.NotZero(t, res.Window)

	a.StopMain()
	<-a.Done()
}
