package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// BigNum signed arbitrary-precision integer for uint256-derived amounts.
// The zero value is 0. Values may go negative since nothing is clamped.
type BigNum struct {
	i *big.Int
}

// NewBigNum copy x into a BigNum (nil is treated as 0)
func NewBigNum(x *big.Int) BigNum {
	if x == nil {
		return BigNum{}
	}
	return BigNum{i: new(big.Int).Set(x)}
}

// BigNumFromInt64 build a BigNum from an int64
func BigNumFromInt64(v int64) BigNum {
	return BigNum{i: big.NewInt(v)}
}

// ParseBigNum parse a base-10 string
func ParseBigNum(s string) (BigNum, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return BigNum{}, nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return BigNum{}, fmt.Errorf("invalid integer %q", s)
	}
	return BigNum{i: v}, nil
}

func (b BigNum) value() *big.Int {
	if b.i == nil {
		return new(big.Int)
	}
	return b.i
}

// Int returns a copy of the underlying value
func (b BigNum) Int() *big.Int {
	return new(big.Int).Set(b.value())
}

func (b BigNum) Add(o BigNum) BigNum {
	return BigNum{i: new(big.Int).Add(b.value(), o.value())}
}

func (b BigNum) Sub(o BigNum) BigNum {
	return BigNum{i: new(big.Int).Sub(b.value(), o.value())}
}

func (b BigNum) Cmp(o BigNum) int {
	return b.value().Cmp(o.value())
}

func (b BigNum) Sign() int {
	return b.value().Sign()
}

func (b BigNum) IsZero() bool {
	return b.Sign() == 0
}

func (b BigNum) String() string {
	return b.value().String()
}

// MarshalJSON encodes as a decimal string so uint256 values survive JS clients
func (b BigNum) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON accepts both a decimal string and a bare JSON number
func (b *BigNum) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		*b = BigNum{}
		return nil
	}
	v, err := ParseBigNum(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Value implements driver.Valuer
func (b BigNum) Value() (driver.Value, error) {
	return b.String(), nil
}

// Scan implements sql.Scanner
func (b *BigNum) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*b = BigNum{}
		return nil
	case string:
		return b.scanString(v)
	case []byte:
		return b.scanString(string(v))
	case int64:
		*b = BigNumFromInt64(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into BigNum", src)
	}
}

func (b *BigNum) scanString(s string) error {
	v, err := ParseBigNum(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// GormDataType column type used by gorm migrations
func (BigNum) GormDataType() string {
	return "string"
}
