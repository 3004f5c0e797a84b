// Draws bar lines: the vertical separators between measures,
// including the final bar and repeat signs.
package barline

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a bar line name or value
// is not recognized.
var ErrUnknownKind = errors.New("unknown bar line kind")

// Kind is the type of a bar line.
type Kind uint8

const (
	Single Kind = iota // default value
	Double
	End // final bar
	RepeatBegin
	RepeatEnd
	RepeatBoth
	None // no visible line
)

// kindNames is the name table used by ParseKind and String
var kindNames = [...]string{
	Single:      "single",
	Double:      "double",
	End:         "end",
	RepeatBegin: "repeatBegin",
	RepeatEnd:   "repeatEnd",
	RepeatBoth:  "repeatBoth",
	None:        "none",
}

// Valid returns true if `k` is one of the defined kinds.
func (k Kind) Valid() bool { return int(k) < len(kindNames) }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("<unknown Kind %d>", k)
	}
	return kindNames[k]
}

// ParseKind resolves a bar line name, as returned by String.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
