// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imview displays images in windows from any goroutine.
//
// All windowing and GPU state is owned by a single event loop running
// on one OS thread; the rest of the program talks to it through
// thread-safe [Window] handles. A typical program:
//
//	func main() {
//		imview.Main(run)
//	}
//
//	func run() {
//		win, err := imview.Show("fractal", img)
//		if err != nil {
//			log.Fatal(err)
//		}
//		for {
//			ke, err := win.WaitKey(0)
//			if err != nil {
//				return // window closed
//			}
//			if ke.Code == key.CodeEscape {
//				win.Close()
//				return
//			}
//		}
//	}
//
// [Main] must run on the main goroutine on macOS; on other platforms
// the loop can also be started lazily by the first use of
// [TheContext]. Under `go test` a headless driver with a software
// renderer is installed automatically, so the full API is testable
// without a display.
package imview
