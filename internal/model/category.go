// Package model defines the hexagon dataset records and schema shared by
// the selection methods.
package model

// Category is a municipal ordinal rating on a 1-4 scale. The zero value is
// CategoryUnknown, which is outside the valid range and never compares as
// satisfying a threshold.
type Category int

const (
	CategoryUnknown Category = 0
	CategoryLow     Category = 1 // "B"
	CategoryMedium  Category = 2 // "M"
	CategoryHigh    Category = 3 // "A"
	CategoryTop     Category = 4 // "A+"
)

// categoryLabels is the fixed source vocabulary.
var categoryLabels = map[string]Category{
	"B":  CategoryLow,
	"M":  CategoryMedium,
	"A":  CategoryHigh,
	"A+": CategoryTop,
}

// ParseCategory maps a source label to its ordinal value. Labels outside
// the vocabulary return CategoryUnknown; unknown is valid data, not an
// error, so no error is returned.
func ParseCategory(label string) Category {
	if c, ok := categoryLabels[label]; ok {
		return c
	}
	return CategoryUnknown
}

// Known reports whether the category holds a real 1-4 rating.
func (c Category) Known() bool {
	return c >= CategoryLow && c <= CategoryTop
}

// AtLeast reports whether the category satisfies a minimum threshold.
// Unknown categories never satisfy a threshold.
func (c Category) AtLeast(min int) bool {
	return c.Known() && int(c) >= min
}

func (c Category) String() string {
	switch c {
	case CategoryLow:
		return "B"
	case CategoryMedium:
		return "M"
	case CategoryHigh:
		return "A"
	case CategoryTop:
		return "A+"
	default:
		return "unknown"
	}
}
