// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imview_test

import (
	"image"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/imview/imview"
	"github.com/imview/imview/events"
	"github.com/imview/imview/events/key"
	"github.com/imview/imview/system"
)

func TestMain(m *testing.M) {
	// all tests share the process-wide loop; it must survive each
	// test closing its windows
	imview.TheContext().SetKeepAlive(true)
	os.Exit(m.Run())
}

func newWindow(t *testing.T, opts *imview.WindowOptions) *imview.Window {
	t.Helper()
	win, err := imview.TheContext().NewWindow(opts)
	require.NoError(t, err)
	t.Cleanup(func() { win.Close() })
	return win
}

func TestCreateWindowsConcurrently(t *testing.T) {
	const goroutines, perG = 8, 4
	var mu sync.Mutex
	ids := map[system.WindowID]bool{}
	var g errgroup.Group
	for i := 0; i < goroutines; i++ {
		g.Go(func() error {
			for j := 0; j < perG; j++ {
				win, err := imview.TheContext().NewWindow(nil)
				if err != nil {
					return err
				}
				mu.Lock()
				ids[win.ID()] = true
				mu.Unlock()
				if err := win.Close(); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Len(t, ids, goroutines*perG, "window ids are never reused")
}

func TestWindowBasics(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("basics", 320, 240))
	assert.Equal(t, "basics", win.Title())
	assert.Equal(t, image.Pt(320, 240), win.Size())
	assert.True(t, win.IsVisible())
	assert.False(t, win.IsClosed())

	require.NoError(t, win.SetTitle("renamed"))
	assert.Equal(t, "renamed", win.Title())

	require.NoError(t, win.SetVisible(false))
	assert.False(t, win.IsVisible())
	require.NoError(t, win.SetVisible(true))
	assert.True(t, win.IsVisible())
}

func TestStartHidden(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("hidden", 100, 100).SetStartHidden(true))
	assert.False(t, win.IsVisible())

	var shown bool
	require.NoError(t, win.On(events.WinShow, func(ev events.Event) { shown = true }))
	require.NoError(t, win.SetVisible(true))
	require.NoError(t, imview.TheContext().RunOnLoop(func() {}))
	assert.True(t, shown)
}

func TestSetImage(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("img", 100, 100))
	b := imview.NewBuffer(imview.RGBA8, 10, 10)
	require.NoError(t, win.SetImage(b))

	got, err := win.Image()
	require.NoError(t, err)
	assert.Same(t, b, got, "last displayed buffer is retained as-is")
}

func TestSetImageInvalidKeepsPrevious(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("img", 100, 100))
	good := imview.NewBuffer(imview.Gray8, 4, 4)
	require.NoError(t, win.SetImage(good))

	bad := imview.NewBuffer(imview.Gray8, 4, 4)
	bad.Stride = 1 // shorter than a row
	err := win.SetImage(bad)
	assert.ErrorIs(t, err, imview.ErrInvalidBuffer)

	got, err := win.Image()
	require.NoError(t, err)
	assert.Same(t, good, got)
}

func TestAutoSizeToFirstImage(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("auto", 0, 0))
	require.NoError(t, win.SetImage(imview.NewBuffer(imview.RGBA8, 123, 77)))
	assert.Equal(t, image.Pt(123, 77), win.Size())

	// only the first image resizes the window
	require.NoError(t, win.SetImage(imview.NewBuffer(imview.RGBA8, 50, 50)))
	assert.Equal(t, image.Pt(123, 77), win.Size())
}

func TestShow(t *testing.T) {
	im := image.NewRGBA(image.Rect(0, 0, 20, 10))
	win, err := imview.Show("shown", im)
	require.NoError(t, err)
	defer win.Close()

	assert.Equal(t, image.Pt(20, 10), win.Size())
	got, err := win.Image()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, image.Pt(20, 10), got.Size())
}

func TestWaitKeyTimeout(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("wait", 100, 100))
	start := time.Now()
	ke, err := win.WaitKey(20 * time.Millisecond)
	assert.NoError(t, err)
	assert.Nil(t, ke)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestWaitKey(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("wait", 100, 100))
	got := make(chan *events.Key, 1)
	go func() {
		ke, err := win.WaitKey(10 * time.Second)
		if err == nil {
			got <- ke
		}
	}()

	// the waiter registers asynchronously; keep pressing until it
	// reports in
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ke := <-got:
			require.NotNil(t, ke)
			assert.Equal(t, 'q', ke.Rune)
			assert.Equal(t, key.CodeQ, ke.Code)
			return
		case <-deadline:
			t.Fatal("waiter never satisfied")
		case <-time.After(10 * time.Millisecond):
			require.NoError(t, win.PostEvent(events.NewKey(events.KeyDown, 'q', key.CodeQ, 0)))
		}
	}
}

func TestWaitCloseOnClosedWindow(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("wc", 100, 100))

	done := make(chan bool, 1)
	go func() { done <- win.WaitClose(10 * time.Second) }()
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, win.Close())
	select {
	case closed := <-done:
		assert.True(t, closed)
	case <-time.After(5 * time.Second):
		t.Fatal("WaitClose did not return")
	}

	// waiting on an already-destroyed window returns immediately
	assert.True(t, win.WaitClose(10*time.Second))
}

func TestCloseRequestDestroysByDefault(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("close", 100, 100))
	require.NoError(t, win.PostEvent(events.NewWindow(events.WinCloseReq)))
	assert.True(t, win.IsClosed())
}

func TestCloseRequestForwarded(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("close", 100, 100).SetForwardCloseRequests(true))
	var requested bool
	require.NoError(t, win.On(events.WinCloseReq, func(ev events.Event) { requested = true }))

	require.NoError(t, win.PostEvent(events.NewWindow(events.WinCloseReq)))
	assert.True(t, requested)
	assert.False(t, win.IsClosed(), "forwarded close requests leave the decision to listeners")

	require.NoError(t, win.Close())
	assert.True(t, win.IsClosed())
}

func TestCloseRequestVetoedByListener(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("close", 100, 100))
	require.NoError(t, win.On(events.WinCloseReq, func(ev events.Event) { ev.SetHandled() }))
	require.NoError(t, win.PostEvent(events.NewWindow(events.WinCloseReq)))
	assert.False(t, win.IsClosed())
}

func TestSaveShortcut(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("save", 100, 100))
	b := imview.NewBuffer(imview.RGBA8, 5, 5)
	require.NoError(t, win.SetImage(b))

	var saved *imview.Buffer
	require.NoError(t, win.On(events.SaveReq, func(ev events.Event) {
		saved = ev.(*events.Save).Image.(*imview.Buffer)
	}))

	require.NoError(t, win.PostEvent(events.NewKey(events.KeyDown, 's', key.CodeS, key.Control)))
	assert.Same(t, b, saved)
}

func TestOperationsAfterClose(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("gone", 100, 100))
	require.NoError(t, win.Close())
	assert.True(t, win.IsClosed())

	assert.ErrorIs(t, win.SetTitle("x"), imview.ErrWindowClosed)
	assert.ErrorIs(t, win.SetImage(imview.NewBuffer(imview.Gray8, 1, 1)), imview.ErrWindowClosed)
	assert.ErrorIs(t, win.Close(), imview.ErrWindowClosed)

	_, err := win.WaitKey(time.Second)
	assert.ErrorIs(t, err, imview.ErrWindowClosed)
}

func TestCustomEvents(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("custom", 100, 100))
	var all []events.Types
	require.NoError(t, win.OnAny(func(ev events.Event) {
		all = append(all, ev.Type())
	}))

	require.NoError(t, win.PostEvent(events.NewCustom(42)))
	require.NoError(t, win.PostEvent(events.NewKey(events.KeyUp, 'a', key.CodeA, 0)))
	assert.Equal(t, []events.Types{events.Custom, events.KeyUp}, all)
}

func TestSetOptions(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("opts", 100, 100))
	opts := imview.NewWindowOptions("retitled", 100, 100).SetFit(imview.Stretch)
	require.NoError(t, win.SetOptions(opts))
	assert.Equal(t, "retitled", win.Title())
}

func TestRunOnLoopOrdering(t *testing.T) {
	ctx := imview.TheContext()
	var n int
	for i := 0; i < 10; i++ {
		require.NoError(t, ctx.RunOnLoop(func() { n++ }))
	}
	assert.Equal(t, 10, n)
}

func TestListenerClosesOwnWindow(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("self-close", 100, 100))
	var closeErr error
	require.NoError(t, win.On(events.KeyDown, func(ev events.Event) {
		// handle methods called on the loop thread must not queue
		// behind the command being applied
		closeErr = win.Close()
	}))

	posted := make(chan error, 1)
	go func() {
		posted <- win.PostEvent(events.NewKey(events.KeyDown, 0, key.CodeEscape, 0))
	}()
	select {
	case err := <-posted:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("event delivery never completed")
	}
	assert.NoError(t, closeErr)
	assert.True(t, win.IsClosed())
}

func TestListenerUsesHandleMethods(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("busy-listener", 100, 100))
	var titleErr, imgErr error
	require.NoError(t, win.On(events.Custom, func(ev events.Event) {
		titleErr = win.SetTitle("renamed")
		imgErr = win.SetImage(imview.NewBuffer(imview.Gray8, 4, 4))
	}))

	posted := make(chan error, 1)
	go func() {
		posted <- win.PostEvent(events.NewCustom(nil))
	}()
	select {
	case err := <-posted:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("event delivery never completed")
	}
	assert.NoError(t, titleErr)
	assert.NoError(t, imgErr)
	assert.Equal(t, "renamed", win.Title())
}

func TestCloseListenerClosesAgain(t *testing.T) {
	win := newWindow(t, imview.NewWindowOptions("re-close", 100, 100))
	calls := 0
	require.NoError(t, win.On(events.WinClose, func(ev events.Event) {
		calls++
		win.Close()
	}))
	require.NoError(t, win.Close())
	assert.Equal(t, 1, calls)
	assert.True(t, win.IsClosed())
}
