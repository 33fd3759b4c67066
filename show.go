// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imview

import "image"

// Show opens a window sized to img, displays img in it, and returns
// the window handle. It is the one-liner for "just show me the image":
//
//	win, err := imview.Show("result", img)
//	...
//	win.WaitClose(0)
func Show(title string, img image.Image) (*Window, error) {
	win, err := TheContext().NewWindow(NewWindowOptions(title, 0, 0))
	if err != nil {
		return nil, err
	}
	if err := win.Show(img); err != nil {
		win.Close()
		return nil, err
	}
	return win, nil
}
