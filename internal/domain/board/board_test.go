package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	valid := [][2]int{{0, 0}, {14, 14}, {0, 14}, {14, 0}, {7, 7}}
	for _, c := range valid {
		assert.True(t, Validate(c[0], c[1]), "(%d,%d) should be on the board", c[0], c[1])
	}

	invalid := [][2]int{{-1, 0}, {0, -1}, {15, 0}, {0, 15}, {15, 15}, {-1, -1}, {100, 7}}
	for _, c := range invalid {
		assert.False(t, Validate(c[0], c[1]), "(%d,%d) should be off the board", c[0], c[1])
	}
}
