package handlers

import (
	"sort"
	"time"

	"instanceresponder/domain"
)

// toInstancesResponse converts registry records to the API response, sorted by key.
func toInstancesResponse(self string, records []domain.InstanceRecord) InstancesResponse {
	sort.Slice(records, func(i, j int) bool { return records[i].Key() < records[j].Key() })

	out := make([]InstanceInfo, 0, len(records))
	for _, r := range records {
		out = append(out, InstanceInfo{
			InstanceId:      r.InstanceID,
			Hostname:        r.Hostname,
			Address:         r.Address,
			StartedAt:       r.StartedAt.UTC().Format(time.RFC3339Nano),
			UpdatedAt:       r.UpdatedAt.UTC().Format(time.RFC3339Nano),
			RequestsHandled: r.RequestsHandled,
		})
	}
	return InstancesResponse{InstanceId: self, Instances: out}
}
