package httpmiddleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPLimiterExhaustsAndRefills(t *testing.T) {
	l := NewIPLimiter(2, 60)
	now := time.Now()

	assert.True(t, l.allow("1.2.3.4", now))
	assert.True(t, l.allow("1.2.3.4", now))
	assert.False(t, l.allow("1.2.3.4", now))

	// One token per second at 60/min.
	assert.True(t, l.allow("1.2.3.4", now.Add(time.Second)))
}

func TestIPLimiterIsolatesClients(t *testing.T) {
	l := NewIPLimiter(1, 60)
	now := time.Now()

	assert.True(t, l.allow("1.2.3.4", now))
	assert.False(t, l.allow("1.2.3.4", now))
	assert.True(t, l.allow("5.6.7.8", now))
}
