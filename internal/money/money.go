package money

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places kept in finalized amounts.
const Places = 2

// ParseError reports an amount that could not be read as a decimal number.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid amount %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Amount is an exact decimal money value. The zero value is 0.
type Amount struct {
	d decimal.Decimal
}

// Parse reads an amount from its string form. Empty input is zero.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, &ParseError{Input: s, Err: err}
	}
	return Amount{d: d}, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromDecimal wraps d as an Amount.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{d: d}
}

func (a Amount) Add(b Amount) Amount {
	return Amount{d: a.d.Add(b.d)}
}

func (a Amount) Decimal() decimal.Decimal { return a.d }

func (a Amount) IsZero() bool { return a.d.IsZero() }

func (a Amount) String() string { return a.d.String() }

// Cents rounds the amount to two decimal places, half away from zero.
func (a Amount) Cents() Fixed {
	return Fixed{d: a.d.Round(Places)}
}

// MarshalJSON encodes the amount as an unquoted JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.String()), nil
}

// UnmarshalJSON accepts a quoted string, a bare number, null or "".
func (a *Amount) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Fixed is an amount rounded to cents. It always renders with exactly two
// decimals, both as text and as a JSON number.
type Fixed struct {
	d decimal.Decimal
}

// ParseFixed parses s and rounds it to cents.
func ParseFixed(s string) (Fixed, error) {
	a, err := Parse(s)
	if err != nil {
		return Fixed{}, err
	}
	return a.Cents(), nil
}

func (f Fixed) Decimal() decimal.Decimal { return f.d }

// Add sums two rounded amounts. The result is still exact to the cent.
func (f Fixed) Add(g Fixed) Fixed {
	return Fixed{d: f.d.Add(g.d)}
}

func (f Fixed) String() string { return f.d.StringFixed(Places) }

// Float64 returns the nearest float64. Only meant for display and tests.
func (f Fixed) Float64() float64 {
	v, _ := f.d.Float64()
	return v
}

func (f Fixed) MarshalJSON() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Fixed) UnmarshalJSON(data []byte) error {
	var a Amount
	if err := a.UnmarshalJSON(data); err != nil {
		return err
	}
	*f = a.Cents()
	return nil
}

func unquote(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		if len(data) < 2 || data[len(data)-1] != '"' {
			return "", &ParseError{Input: string(data), Err: fmt.Errorf("unterminated string")}
		}
		return string(data[1 : len(data)-1]), nil
	}
	return string(data), nil
}
