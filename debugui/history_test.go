package debugui_test

import (
	"testing"

	"github.com/plus3/handtris/debugui"
	"github.com/stretchr/testify/assert"
)

func TestHistory(t *testing.T) {
	h := debugui.NewHistory(4)
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, float32(0), h.Average())
	assert.Equal(t, []float32{0, 0, 0, 0}, h.Ordered())

	h.Push(1)
	h.Push(3)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, float32(2), h.Average())
	assert.Equal(t, []float32{0, 0, 1, 3}, h.Ordered())

	h.Push(5)
	h.Push(7)
	h.Push(9)
	assert.Equal(t, 4, h.Len())
	assert.Equal(t, []float32{3, 5, 7, 9}, h.Ordered())
	assert.Equal(t, float32(6), h.Average())
	assert.Equal(t, float32(9), h.Max())
}
