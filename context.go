// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imview

import (
	"runtime"
	"sync"
	"sync/atomic"

	_ "github.com/imview/imview/driver" // installs the display driver
	"github.com/imview/imview/system"
)

// Context is the handle to the global display event loop. All windows
// belong to it. It is created lazily by [TheContext] or explicitly by
// [Main]; there is exactly one per process.
type Context struct {
	app system.App
}

var (
	theContext  *Context
	contextOnce sync.Once
	loopOnce    sync.Once
	mainStarted atomic.Bool
)

// TheContext returns the global context, starting the event loop on a
// dedicated locked OS thread if it is not running yet.
//
// On macOS the OS requires windowing to happen on the first thread of
// the process, which a spawned goroutine thread is not; programs that
// target macOS should use [Main] instead. On other platforms the lazy
// loop thread works fine.
func TheContext() *Context {
	contextOnce.Do(func() {
		theContext = &Context{app: system.TheApp}
		if !mainStarted.Load() {
			go func() {
				// the loop owns all windowing state and must keep
				// its OS thread for its whole life
				runtime.LockOSThread()
				loopOnce.Do(theContext.app.MainLoop)
			}()
		}
	})
	return theContext
}

// Main runs the event loop on the calling goroutine, which must be the
// program's main goroutine, and runs f on a new goroutine. When f
// returns, the loop drains and Main returns. Call it from main():
//
//	func main() {
//		imview.Main(run)
//	}
//
// If [TheContext] already started the loop on its own thread, Main
// does not start a second one; it just runs f and waits for the
// existing loop to stop.
func Main(f func()) {
	mainStarted.Store(true)
	app := system.TheApp
	go func() {
		defer app.StopMain()
		defer func() { system.HandleRecover(recover()) }()
		f()
	}()
	loopOnce.Do(app.MainLoop)
	<-app.Done()
}

// send enqueues the command with a fresh acknowledgment slot and
// blocks until the loop has applied it or stopped.
func (c *Context) send(cmd *system.Command) (system.Result, error) {
	cmd.Ack = make(chan system.Result, 1)
	if err := c.app.Send(cmd); err != nil {
		return system.Result{}, err
	}
	select {
	case res := <-cmd.Ack:
		return res, res.Err
	case <-c.app.Done():
		// the ack may have been fulfilled just before the loop stopped
		select {
		case res := <-cmd.Ack:
			return res, res.Err
		default:
			return system.Result{}, system.ErrEventLoopClosed
		}
	}
}

// post enqueues the command without waiting for it to be applied.
func (c *Context) post(cmd *system.Command) error {
	return c.app.Send(cmd)
}

// NewWindow creates a window with the given options (nil for
// defaults) and returns its handle. The window is fully created, and
// visible unless StartHidden was set, when NewWindow returns.
func (c *Context) NewWindow(opts *WindowOptions) (*Window, error) {
	res, err := c.send(&system.Command{Op: system.CreateWindow, Options: opts})
	if err != nil {
		return nil, err
	}
	return &Window{ctx: c, id: res.Window}, nil
}

// RunOnLoop runs f on the event loop thread and waits for it to
// return. It is the way to touch loop-owned state, such as the
// driver-side windows, from another goroutine.
func (c *Context) RunOnLoop(f func()) error {
	_, err := c.send(&system.Command{Op: system.Run, Func: f})
	return err
}

// SetKeepAlive sets whether the event loop keeps running after the
// last window closes. The default is to drain and stop.
func (c *Context) SetKeepAlive(on bool) {
	c.app.SetKeepAlive(on)
}

// NWindows returns the number of live windows.
func (c *Context) NWindows() int {
	return c.app.NWindows()
}

// Stop requests that the event loop destroy all windows, drain, and
// stop. It does not wait; use [Context.Wait] for that.
func (c *Context) Stop() {
	c.app.StopMain()
}

// Done returns the channel closed once the event loop has stopped.
func (c *Context) Done() <-chan struct{} {
	return c.app.Done()
}

// Wait blocks until the event loop has stopped, which with keep-alive
// unset happens when the last window closes.
func (c *Context) Wait() {
	<-c.app.Done()
}
