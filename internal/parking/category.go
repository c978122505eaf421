package parking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCategory = errors.New("unknown vehicle category")
	ErrUnknownStrategy = errors.New("unknown parking strategy")
)

// Category partitions spots and vehicles into compatibility classes.
type Category string

const (
	TwoWheeler  Category = "TWO"
	FourWheeler Category = "FOUR"
)

func Categories() []Category {
	return []Category{TwoWheeler, FourWheeler}
}

func (c Category) String() string {
	return string(c)
}

func (c Category) Valid() bool {
	return c == TwoWheeler || c == FourWheeler
}

func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "two", "2", "two_wheeler", "twowheeler":
		return TwoWheeler, nil
	case "four", "4", "four_wheeler", "fourwheeler":
		return FourWheeler, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// PriceTable maps a category to its fixed parking fee.
type PriceTable map[Category]int

var DefaultPrices = PriceTable{
	TwoWheeler:  50,
	FourWheeler: 100,
}

func (pt PriceTable) For(c Category) int {
	return pt[c]
}
