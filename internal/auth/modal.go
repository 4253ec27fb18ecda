// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

// ModalKind identifies the overlay dialog open in a session.
type ModalKind string

// Modal kinds. ModalNone is the zero value.
const (
	ModalNone     ModalKind = ""
	ModalLogin    ModalKind = "login"
	ModalRegister ModalKind = "register"
	ModalPricing  ModalKind = "pricing"
)

// ModalKinds lists every openable dialog.
var ModalKinds = []ModalKind{ModalLogin, ModalRegister, ModalPricing}

// ParseModalKind converts a form or session value to a ModalKind.
// Unknown values report false.
func ParseModalKind(s string) (ModalKind, bool) {
	switch k := ModalKind(s); k {
	case ModalLogin, ModalRegister, ModalPricing:
		return k, true
	case ModalNone, "none":
		return ModalNone, true
	}
	return ModalNone, false
}

// Open returns the state after opening k. Any state may move to any kind.
func (m ModalKind) Open(k ModalKind) ModalKind {
	return k
}

// Close returns the state after closing the active dialog.
func (m ModalKind) Close() ModalKind {
	return ModalNone
}

// IsOpen reports whether a dialog is showing.
func (m ModalKind) IsOpen() bool {
	return m != ModalNone
}

// String returns "none" for ModalNone.
func (m ModalKind) String() string {
	if m == ModalNone {
		return "none"
	}
	return string(m)
}
