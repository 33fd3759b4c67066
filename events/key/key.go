// Copyright (c) 2026, The imview Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package key defines the physical key codes and modifier flags used
// in keyboard events, independent of any windowing backend.
package key

import "strings"

// Codes is the identity of a physical key on the keyboard, independent
// of the rune it produces under the current layout and modifiers.
// The numbering loosely follows USB HID usage codes.
type Codes uint32

const (
	CodeUnknown Codes = 0

	CodeA Codes = 4 + iota - 1
	CodeB
	CodeC
	CodeD
	CodeE
	CodeF
	CodeG
	CodeH
	CodeI
	CodeJ
	CodeK
	CodeL
	CodeM
	CodeN
	CodeO
	CodeP
	CodeQ
	CodeR
	CodeS
	CodeT
	CodeU
	CodeV
	CodeW
	CodeX
	CodeY
	CodeZ

	Code1 // 30
	Code2
	Code3
	Code4
	Code5
	Code6
	Code7
	Code8
	Code9
	Code0

	CodeReturnEnter // 40
	CodeEscape
	CodeBackspace
	CodeTab
	CodeSpacebar
	CodeHyphenMinus
	CodeEqualSign
	CodeLeftSquareBracket
	CodeRightSquareBracket
	CodeBackslash
	_ // 50: non-US hash
	CodeSemicolon
	CodeApostrophe
	CodeGraveAccent
	CodeComma
	CodeFullStop
	CodeSlash
	CodeCapsLock

	CodeF1 // 58
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12

	_ // 70: PrintScreen
	_ // 71: ScrollLock
	_ // 72: Pause
	CodeInsert
	CodeHome
	CodePageUp
	CodeDelete
	CodeEnd
	CodePageDown
	CodeRightArrow
	CodeLeftArrow
	CodeDownArrow
	CodeUpArrow

	CodeLeftControl Codes = 224 + iota - 80
	CodeLeftShift
	CodeLeftAlt
	CodeLeftMeta
	CodeRightControl
	CodeRightShift
	CodeRightAlt
	CodeRightMeta
)

// IsModifier returns whether the code is for a modifier key.
func (c Codes) IsModifier() bool {
	return c >= CodeLeftControl && c <= CodeRightMeta
}

// CodeRuneMap gives the rune for each code that produces one
// without any modifiers, for synthesizing key events.
var CodeRuneMap = map[Codes]rune{
	CodeA: 'a', CodeB: 'b', CodeC: 'c', CodeD: 'd', CodeE: 'e',
	CodeF: 'f', CodeG: 'g', CodeH: 'h', CodeI: 'i', CodeJ: 'j',
	CodeK: 'k', CodeL: 'l', CodeM: 'm', CodeN: 'n', CodeO: 'o',
	CodeP: 'p', CodeQ: 'q', CodeR: 'r', CodeS: 's', CodeT: 't',
	CodeU: 'u', CodeV: 'v', CodeW: 'w', CodeX: 'x', CodeY: 'y',
	CodeZ: 'z',

	Code1: '1', Code2: '2', Code3: '3', Code4: '4', Code5: '5',
	Code6: '6', Code7: '7', Code8: '8', Code9: '9', Code0: '0',

	CodeReturnEnter:        '\n',
	CodeTab:                '\t',
	CodeSpacebar:           ' ',
	CodeHyphenMinus:        '-',
	CodeEqualSign:          '=',
	CodeLeftSquareBracket:  '[',
	CodeRightSquareBracket: ']',
	CodeBackslash:          '\\',
	CodeSemicolon:          ';',
	CodeApostrophe:         '\'',
	CodeGraveAccent:        '`',
	CodeComma:              ',',
	CodeFullStop:           '.',
	CodeSlash:              '/',
}

// RuneCodeMap is the inverse of [CodeRuneMap].
var RuneCodeMap = func() map[rune]Codes {
	m := make(map[rune]Codes, len(CodeRuneMap))
	for c, r := range CodeRuneMap {
		m[r] = c
	}
	return m
}()

// Modifiers are the currently-held modifier keys, as a bitmask.
type Modifiers int32

const (
	Shift Modifiers = 1 << iota
	Control
	Alt
	Meta // command key on macOS, windows key on Windows
)

// HasAny returns whether any of the given modifiers are held.
func (m Modifiers) HasAny(mods ...Modifiers) bool {
	for _, mod := range mods {
		if m&mod != 0 {
			return true
		}
	}
	return false
}

// SetFlag sets or clears the given modifier bits.
func (m *Modifiers) SetFlag(on bool, mods ...Modifiers) {
	for _, mod := range mods {
		if on {
			*m |= mod
		} else {
			*m &^= mod
		}
	}
}

// modNames is in canonical chord order: Shift, Control, Alt, Meta.
var modNames = []struct {
	mod  Modifiers
	name string
}{
	{Shift, "Shift"},
	{Control, "Control"},
	{Alt, "Alt"},
	{Meta, "Meta"},
}

// String returns the "+"-joined names of the held modifiers,
// in canonical order, with a trailing "+" if any are held.
func (m Modifiers) String() string {
	var sb strings.Builder
	for _, mn := range modNames {
		if m&mn.mod != 0 {
			sb.WriteString(mn.name)
			sb.WriteString("+")
		}
	}
	return sb.String()
}

// Chord represents a key chord such as "Control+S", as the
// canonical modifier string followed by the key rune (uppercased)
// or, for non-rune keys, the code's printed name.
type Chord string

// codeNames are printed names for keys that produce no rune.
var codeNames = map[Codes]string{
	CodeEscape:     "Escape",
	CodeBackspace:  "Backspace",
	CodeDelete:     "Delete",
	CodeInsert:     "Insert",
	CodeHome:       "Home",
	CodeEnd:        "End",
	CodePageUp:     "PageUp",
	CodePageDown:   "PageDown",
	CodeUpArrow:    "Up",
	CodeDownArrow:  "Down",
	CodeLeftArrow:  "Left",
	CodeRightArrow: "Right",
	CodeF1:         "F1",
	CodeF2:         "F2",
	CodeF3:         "F3",
	CodeF4:         "F4",
	CodeF5:         "F5",
	CodeF6:         "F6",
	CodeF7:         "F7",
	CodeF8:         "F8",
	CodeF9:         "F9",
	CodeF10:        "F10",
	CodeF11:        "F11",
	CodeF12:        "F12",
}

// NewChord returns the chord for the given rune, code, and modifiers.
func NewChord(rn rune, code Codes, mods Modifiers) Chord {
	if rn == 0 {
		rn = CodeRuneMap[code]
	}
	s := mods.String()
	switch {
	case rn != 0:
		s += strings.ToUpper(string(rn))
	default:
		s += codeNames[code]
	}
	return Chord(s)
}
