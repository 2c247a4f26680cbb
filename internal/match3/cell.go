package match3

import (
	"fmt"
	"strings"
)

type CellID uint64

type TokenType int8

const NoToken TokenType = -1

const (
	Ruby TokenType = iota
	Amber
	Topaz
	Emerald
	Sapphire
	Amethyst
	Diamond
	Onyx
	Prism // wildcard kind, never drawn from the random pool
)

// OrdinaryTypes lists every non-wildcard token type in unlock order.
var OrdinaryTypes = []TokenType{
	Ruby, Amber, Topaz, Emerald, Sapphire, Amethyst, Diamond, Onyx,
}

var tokenNames = [...]string{
	"ruby", "amber", "topaz", "emerald", "sapphire", "amethyst", "diamond", "onyx", "prism",
}

var tokenLetters = [...]byte{'R', 'A', 'T', 'E', 'S', 'M', 'D', 'O', 'P'}

func (t TokenType) Valid() bool {
	return Ruby <= t && t <= Prism
}

func (t TokenType) Ordinary() bool {
	return Ruby <= t && t <= Onyx
}

func (t TokenType) String() string {
	if !t.Valid() {
		return "none"
	}
	return tokenNames[t]
}

// Letter is the single-character code used by [ParseBoard] and [Board.String].
func (t TokenType) Letter() byte {
	if !t.Valid() {
		return '.'
	}
	return tokenLetters[t]
}

func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TokenType) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	if s == "none" {
		*t = NoToken
		return nil
	}
	for i, name := range tokenNames {
		if name == s {
			*t = TokenType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown token type %q", text)
}

func tokenFromLetter(b byte) (TokenType, bool) {
	if b == '.' {
		return NoToken, true
	}
	for i, l := range tokenLetters {
		if l == b {
			return TokenType(i), true
		}
	}
	return NoToken, false
}

type SpecialKind int8

const (
	None SpecialKind = iota
	RowClear
	ColumnClear
	AreaClear
	Wildcard
)

var specialNames = [...]string{"none", "row-clear", "column-clear", "area-clear", "wildcard"}

func (k SpecialKind) String() string {
	if k < None || k > Wildcard {
		return "invalid"
	}
	return specialNames[k]
}

func (k SpecialKind) IsLine() bool {
	return k == RowClear || k == ColumnClear
}

func (k SpecialKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type Status int8

const (
	Idle Status = iota
	Swapping
	Matched
	Dropping
	Empty
	Created
)

var statusNames = [...]string{"idle", "swapping", "matched", "dropping", "empty", "created"}

func (s Status) String() string {
	if s < Idle || s > Created {
		return "invalid"
	}
	return statusNames[s]
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Vacant reports whether the slot holds no live token.
func (s Status) Vacant() bool {
	return s == Matched || s == Empty
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

func (p Position) Adjacent(q Position) bool {
	return absDiff(p.Row, q.Row)+absDiff(p.Col, q.Col) == 1
}

type Cell struct {
	ID      CellID      `json:"id"`
	Type    TokenType   `json:"type"`
	Special SpecialKind `json:"special"`
	Status  Status      `json:"status"`
	Row     int         `json:"row"`
	Col     int         `json:"col"`
}

func (c Cell) Pos() Position {
	return Position{Row: c.Row, Col: c.Col}
}

func (c Cell) String() string {
	if c.Special == None {
		return fmt.Sprintf("#%d %s@%d:%d", c.ID, c.Type, c.Row, c.Col)
	}
	return fmt.Sprintf("#%d %s/%s@%d:%d", c.ID, c.Type, c.Special, c.Row, c.Col)
}
