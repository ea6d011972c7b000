package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundAverage(t *testing.T) {
	assert.Equal(t, 4.3, RoundAverage(4.333333))
	assert.Equal(t, 4.7, RoundAverage(4.666666))
	assert.Equal(t, 3.5, RoundAverage(3.45))
	assert.Equal(t, 0.0, RoundAverage(0))
	assert.Equal(t, 5.0, RoundAverage(5))
}

func TestIsAuthor(t *testing.T) {
	rev := &Review{Username: "ada"}
	assert.True(t, rev.IsAuthor("ada"))
	assert.False(t, rev.IsAuthor("grace"))

	reply := &Reply{Username: "grace"}
	assert.True(t, reply.IsAuthor("grace"))
	assert.False(t, reply.IsAuthor("ada"))
}
