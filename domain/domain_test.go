package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInstanceContext_Uptime(t *testing.T) {
	start := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	i := InstanceContext{InstanceID: "app-1", Hostname: "h", StartTime: start}

	assert.Equal(t, time.Duration(0), i.Uptime(start))
	assert.Equal(t, 90*time.Second, i.Uptime(start.Add(90*time.Second)))
	// clock stepped backwards
	assert.Equal(t, time.Duration(0), i.Uptime(start.Add(-time.Second)))
}

func TestInstanceRecord_Key(t *testing.T) {
	assert.Equal(t, "app-1@host-a", InstanceRecord{InstanceID: "app-1", Hostname: "host-a"}.Key())
	assert.NotEqual(t,
		InstanceRecord{InstanceID: "1", Hostname: "a"}.Key(),
		InstanceRecord{InstanceID: "1", Hostname: "b"}.Key(),
	)
}
