package mytime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpiry(t *testing.T) {
	deadline := MinutesFromNow(ExampleTime, 30)

	assert.Equal(t, ExampleTime.Add(30*time.Minute), deadline)
	assert.False(t, IsExpired(ExampleTime, deadline))
	assert.False(t, IsExpired(deadline, deadline))
	assert.True(t, IsExpired(deadline.Add(time.Second), deadline))
}
