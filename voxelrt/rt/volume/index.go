package volume

import (
	"errors"
	"fmt"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// Flatten maps a grid coordinate to its row-major linear index (x fastest).
// pos must satisfy InBounds; use FlattenChecked at API boundaries.
func Flatten(pos, dims [3]int) int {
	return pos[0] + dims[0]*(pos[1]+pos[2]*dims[1])
}

// Expand is the inverse of Flatten for idx in [0, dims.x*dims.y*dims.z).
func Expand(idx int, dims [3]int) [3]int {
	return [3]int{
		idx % dims[0],
		(idx / dims[0]) % dims[1],
		idx / (dims[0] * dims[1]),
	}
}

func InBounds(pos, dims [3]int) bool {
	for i := 0; i < 3; i++ {
		if pos[i] < 0 || pos[i] >= dims[i] {
			return false
		}
	}
	return true
}

func FlattenChecked(pos, dims [3]int) (int, error) {
	if !InBounds(pos, dims) {
		return 0, fmt.Errorf("position %v outside %v: %w", pos, dims, ErrIndexOutOfRange)
	}
	return Flatten(pos, dims), nil
}
