package tile

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind

// Kind names one of the seven catalog shapes.
type Kind uint8

const (
	KindI Kind = iota
	KindO
	KindJ
	KindL
	KindS
	KindT
	KindZ

	NumKinds = int(KindZ) + 1
)

var ErrInvalidKind = errors.New("tile: invalid kind")

type catalogEntry struct {
	shape  Shape
	colour color.RGBA
}

var catalog = [NumKinds]catalogEntry{
	KindI: {MustShape([][]int{
		{0, 1, 0, 0},
		{0, 1, 0, 0},
		{0, 1, 0, 0},
		{0, 1, 0, 0},
	}), rgb(0x0092ff)},
	KindO: {MustShape([][]int{
		{1, 1},
		{1, 1},
	}), rgb(0x4900ff)},
	KindJ: {MustShape([][]int{
		{0, 1, 0},
		{0, 1, 0},
		{1, 1, 0},
	}), rgb(0xff0000)},
	KindL: {MustShape([][]int{
		{1, 0, 0},
		{1, 0, 0},
		{1, 1, 0},
	}), rgb(0x49ff00)},
	KindS: {MustShape([][]int{
		{0, 1, 1},
		{1, 1, 0},
		{0, 0, 0},
	}), rgb(0x00ff92)},
	KindT: {MustShape([][]int{
		{1, 1, 1},
		{0, 1, 0},
		{0, 0, 0},
	}), rgb(0xffdb00)},
	KindZ: {MustShape([][]int{
		{1, 1, 0},
		{0, 1, 1},
		{0, 0, 0},
	}), rgb(0xff00db)},
}

func rgb(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// KindAt returns the catalog kind with index i.
func KindAt(i int) (Kind, error) {
	if i < 0 || i >= NumKinds {
		return 0, fmt.Errorf("%w: %d", ErrInvalidKind, i)
	}
	return Kind(i), nil
}

// RandomKind picks a kind uniformly from the catalog.
func RandomKind(rng *rand.Rand) Kind {
	k, err := KindAt(rng.IntN(NumKinds))
	if err != nil {
		panic(err)
	}
	return k
}

// ParseKind resolves a kind by its letter, as printed by Kind.String.
func ParseKind(name string) (Kind, error) {
	for i := range NumKinds {
		if Kind(i).String() == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, name)
}

// Kinds returns every catalog kind in order.
func Kinds() []Kind {
	kinds := make([]Kind, NumKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Valid reports whether k is in the catalog.
func (k Kind) Valid() bool {
	return int(k) < NumKinds
}

// Shape returns the spawn orientation of k, or an empty shape if k is not
// in the catalog.
func (k Kind) Shape() Shape {
	if !k.Valid() {
		return Shape{}
	}
	return catalog[k].shape
}

// Colour returns the colour of k, or transparent black if k is not in the
// catalog.
func (k Kind) Colour() color.RGBA {
	if !k.Valid() {
		return color.RGBA{}
	}
	return catalog[k].colour
}
