package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("soon", time.Hour))
}

func TestNilIfBlank(t *testing.T) {
	assert.Nil(t, NilIfBlank("   "))
	got := NilIfBlank(" ama ")
	if assert.NotNil(t, got) {
		assert.Equal(t, "ama", *got)
	}
	assert.Equal(t, "", Deref(nil))
	assert.Equal(t, "x", Deref(NilIfBlank("x")))
}
