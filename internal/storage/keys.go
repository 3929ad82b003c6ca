package storage

import "fmt"

const (
	seedNumberMin = 1000
	seedNumberMax = 9999
)

// ObjectKey is the name of a generated object, e.g. test_1234.txt.
type ObjectKey struct {
	Prefix    string
	Number    int
	Extension string
}

func (k ObjectKey) Key() string {
	return fmt.Sprintf("%s_%d.%s", k.Prefix, k.Number, k.Extension)
}

// NewSeedKey draws a four digit key using intN, which must return a value in [0, n).
// Keys are not checked for collisions.
func NewSeedKey(intN func(n int) int) ObjectKey {
	return ObjectKey{
		Prefix:    "test",
		Number:    seedNumberMin + intN(seedNumberMax-seedNumberMin+1),
		Extension: "txt",
	}
}
