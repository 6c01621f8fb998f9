// Package caesar implements the Caesar substitution cipher over a fixed
// alphabet of the 26 Latin letters plus space. Case is handled with a single
// case-insensitive table: lookups lowercase the input and the original case
// is re-applied to the substituted symbol. Characters outside the alphabet
// pass through unchanged.
package caesar

import (
	"errors"
	"fmt"
	"strings"
)

// An Alphabet is an ordered string of distinct symbols subject to
// substitution. Order is significant: a symbol's index is its position in
// the string.
type Alphabet string

// Lowercase is the canonical 27 symbol alphabet, the lowercase letters
// followed by space.
const Lowercase Alphabet = "abcdefghijklmnopqrstuvwxyz "

var (
	// ErrMethod is returned when the method selector is not one of the
	// defined Method values.
	ErrMethod = errors.New("caesar: unknown method")

	// ErrDirection is returned when the direction selector is not one of the
	// defined Direction values.
	ErrDirection = errors.New("caesar: unknown direction")
)

// Method selects how the substituted symbol is computed. Both methods
// produce identical output for identical inputs.
type Method int

const (
	// MethodRotation computes the cipher through a pre-rotated copy of the
	// alphabet.
	MethodRotation Method = iota

	// MethodModular computes the cipher through index arithmetic modulo the
	// alphabet size.
	MethodModular
)

// ParseMethod maps the textual selector used by the CLI and the config file
// to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "rotation":
		return MethodRotation, nil
	case "modular":
		return MethodModular, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrMethod, s)
}

func (m Method) String() string {
	switch m {
	case MethodRotation:
		return "rotation"
	case MethodModular:
		return "modular"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// Direction selects between encryption and decryption. Decrypting with the
// same shift inverts encryption exactly.
type Direction int

const (
	Encrypt Direction = iota
	Decrypt
)

func (d Direction) String() string {
	switch d {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// A Cipher holds an immutable alphabet table and its index map. It has no
// mutable state and is safe for concurrent use.
type Cipher struct {
	symbols []rune
	index   [128]int8
}

// New builds a Cipher over the given alphabet. The alphabet must be
// non-empty ASCII with distinct symbols and no uppercase letters; uppercase
// input is folded onto the lowercase table during lookup.
func New(alphabet Alphabet) (*Cipher, error) {
	if alphabet == "" {
		return nil, fmt.Errorf("caesar: alphabet is empty")
	}

	c := &Cipher{symbols: []rune(string(alphabet))}
	for i := range c.index {
		c.index[i] = -1
	}

	for i, r := range c.symbols {
		if r >= 128 {
			return nil, fmt.Errorf("caesar: symbol %q is not ASCII", r)
		}
		if 'A' <= r && r <= 'Z' {
			return nil, fmt.Errorf("caesar: alphabet must not contain uppercase %q", r)
		}
		if c.index[r] >= 0 {
			return nil, fmt.Errorf("caesar: duplicate symbol %q", r)
		}
		c.index[r] = int8(i)
	}

	return c, nil
}

// Default is a Cipher over the canonical Lowercase alphabet.
var Default = func() *Cipher {
	c, err := New(Lowercase)
	if err != nil {
		panic(err)
	}
	return c
}()

// Transform applies the Default cipher.
func Transform(message string, shift int, method Method, direction Direction) (string, error) {
	return Default.Transform(message, shift, method, direction)
}

// Transform maps message under the chosen method and direction. Every
// in-alphabet character is substituted, everything else is copied verbatim,
// so the output always has the same length as the input. Any integer shift
// is accepted; only its value modulo the alphabet size matters.
func (c *Cipher) Transform(message string, shift int, method Method, direction Direction) (string, error) {
	switch direction {
	case Encrypt:
	case Decrypt:
		shift = -shift
	default:
		return "", fmt.Errorf("%w: %d", ErrDirection, int(direction))
	}

	n := len(c.symbols)
	shift = ((shift % n) + n) % n

	switch method {
	case MethodRotation:
		return c.rotation(message, shift), nil
	case MethodModular:
		return c.modular(message, shift), nil
	}
	return "", fmt.Errorf("%w: %d", ErrMethod, int(method))
}

// rotation substitutes through a copy of the alphabet rotated left by shift
// positions: the symbol at index i is replaced by the rotated table's symbol
// at index i.
func (c *Cipher) rotation(message string, shift int) string {
	n := len(c.symbols)
	rotated := make([]rune, n)
	for i := range rotated {
		rotated[i] = c.symbols[(i+shift)%n]
	}

	out := &strings.Builder{}
	out.Grow(len(message))
	for _, r := range message {
		i := c.lookup(r)
		if i < 0 {
			out.WriteRune(r)
			continue
		}
		out.WriteRune(recase(r, rotated[i]))
	}
	return out.String()
}

// modular substitutes by index arithmetic: the symbol at index i is replaced
// by the symbol at (i + shift) mod n. The shift has already been normalized
// to [0, n), which covers negative shifts and decryption.
func (c *Cipher) modular(message string, shift int) string {
	n := len(c.symbols)

	out := &strings.Builder{}
	out.Grow(len(message))
	for _, r := range message {
		i := c.lookup(r)
		if i < 0 {
			out.WriteRune(r)
			continue
		}
		out.WriteRune(recase(r, c.symbols[(i+shift)%n]))
	}
	return out.String()
}

// lookup returns the alphabet index of r, folding uppercase onto the
// lowercase table, or -1 when r is not in the alphabet.
func (c *Cipher) lookup(r rune) int {
	if 'A' <= r && r <= 'Z' {
		r = r - 'A' + 'a'
	}
	if r < 0 || r >= 128 {
		return -1
	}
	return int(c.index[r])
}

// recase re-applies the case of the input rune to the substituted symbol.
func recase(in, out rune) rune {
	if 'A' <= in && in <= 'Z' && 'a' <= out && out <= 'z' {
		return out - 'a' + 'A'
	}
	return out
}
