package session

import "unicode"

// KeyKind classifies a keystroke.
type KeyKind int

// Key kinds understood by the session.
const (
	KeyOther KeyKind = iota
	KeyRune
	KeyBackspace
)

// Key is one keystroke event.
type Key struct {
	Kind KeyKind
	Rune rune
	Ctrl bool
	Alt  bool
	Meta bool
}

// RuneKey returns an unmodified character keystroke.
func RuneKey(r rune) Key {
	return Key{Kind: KeyRune, Rune: r}
}

// BackspaceKey returns an unmodified backspace keystroke.
func BackspaceKey() Key {
	return Key{Kind: KeyBackspace}
}

// HasModifier reports whether the key is part of a modifier chord.
func (k Key) HasModifier() bool {
	return k.Ctrl || k.Alt || k.Meta
}

// Printable reports whether the key is a single printable character.
func (k Key) Printable() bool {
	return k.Kind == KeyRune && unicode.IsPrint(k.Rune)
}
