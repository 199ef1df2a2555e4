package domain

import "time"

// InstanceContext identifies the running process. Built once in cmd/main and never mutated.
type InstanceContext struct {
	InstanceID string    // label from INSTANCE_ID
	Hostname   string    // os.Hostname at startup
	StartTime  time.Time // UTC
}

// Uptime returns the time elapsed since StartTime, never negative.
func (i InstanceContext) Uptime(now time.Time) time.Duration {
	d := now.Sub(i.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

// InstanceRecord is what an instance publishes to the registry on every heartbeat.
type InstanceRecord struct {
	InstanceID      string    `json:"instance_id"`
	Hostname        string    `json:"hostname"`
	Address         string    `json:"address"`
	StartedAt       time.Time `json:"started_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	RequestsHandled int64     `json:"requests_handled"`
}

// Key returns the registry key for the record. Hostname is included so that
// two processes started with the same INSTANCE_ID do not overwrite each other.
func (r InstanceRecord) Key() string {
	return r.InstanceID + "@" + r.Hostname
}
