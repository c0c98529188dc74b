package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a chord specification.
//
// Supported formats:
//   - Single character: "b", "B", "1", "@"
//   - Special keys: "Enter", "Escape", "Tab", "Backspace", "Space", "F5"
//   - With modifiers: "Ctrl+N", "Alt+F4", "Ctrl+Shift+Z", "Ctrl++"
//   - Modifier only: "Ctrl", "Shift", "Alt+Shift"
//   - Bracketed: "<C-n>", "<A-f>", "<C-S-z>", "<CR>", "<Esc>"
func Parse(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseBracketed(spec[1 : len(spec)-1])
	}

	return parsePlusStyle(spec)
}

// parsePlusStyle parses "Ctrl+Shift+Z" style notation.
func parsePlusStyle(spec string) (Chord, error) {
	var modPart, keyPart string
	switch {
	case spec == "+":
		keyPart = "+"
	case strings.HasSuffix(spec, "++"):
		modPart = spec[:len(spec)-2]
		keyPart = "+"
	default:
		if i := strings.LastIndex(spec, "+"); i >= 0 {
			modPart, keyPart = spec[:i], spec[i+1:]
		} else {
			keyPart = spec
		}
	}

	var mods Modifier
	if modPart != "" {
		for _, p := range strings.Split(modPart, "+") {
			mod := ModifierFromName(p)
			if mod == ModNone {
				return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, strings.TrimSpace(p))
			}
			mods = mods.With(mod)
		}
	}

	keyPart = strings.TrimSpace(keyPart)
	if mod := ModifierFromName(keyPart); mod != ModNone {
		return Chord{Modifiers: mods.With(mod)}, nil
	}
	return parseKeyPart(keyPart, mods)
}

// parseBracketed parses notation like "C-s", "A-F4", "CR", "Esc".
func parseBracketed(inner string) (Chord, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Chord{}, ErrInvalidSpec
	}

	var keyPart string
	var modParts []string
	if strings.HasSuffix(inner, "--") {
		keyPart = "-"
		modParts = strings.Split(inner[:len(inner)-2], "-")
	} else {
		parts := strings.Split(inner, "-")
		keyPart = parts[len(parts)-1]
		modParts = parts[:len(parts)-1]
	}

	var mods Modifier
	for _, p := range modParts {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			mods = mods.With(ModCtrl)
		case "a":
			mods = mods.With(ModAlt)
		case "s":
			mods = mods.With(ModShift)
		case "m", "d":
			mods = mods.With(ModMeta)
		default:
			mod := ModifierFromName(p)
			if mod == ModNone {
				return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
			}
			mods = mods.With(mod)
		}
	}

	return parseKeyPart(keyPart, mods)
}

// parseKeyPart parses a key part with already-known modifiers.
func parseKeyPart(keyPart string, mods Modifier) (Chord, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Chord{}, fmt.Errorf("%w: missing key", ErrInvalidSpec)
	}

	lower := strings.ToLower(keyPart)
	if k := KeyFromName(lower); k != KeyNone {
		return Chord{Key: k, Modifiers: mods}, nil
	}
	if r, ok := runeNames[lower]; ok {
		return Chord{Key: KeyRune, Rune: r, Modifiers: mods}, nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		// Letters name keys, not characters.
		return Chord{Key: KeyRune, Rune: unicode.ToLower(runes[0]), Modifiers: mods}, nil
	}

	return Chord{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a chord specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Chord {
	c, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return c
}

// NormalizeSpec parses and re-formats a chord specification to its
// canonical form.
func NormalizeSpec(spec string) (string, error) {
	c, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}
