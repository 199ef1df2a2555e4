package handlers

import "encoding/json"

// IdentityResponse is the common payload that tells which instance answered.
type IdentityResponse struct {
	Message         string `json:"message"`
	InstanceId      string `json:"instanceId"`
	Hostname        string `json:"hostname"`
	RequestsHandled int64  `json:"requestsHandled"`
	Timestamp       string `json:"timestamp"`
}

type HealthResponse struct {
	Status        string  `json:"status"`
	InstanceId    string  `json:"instanceId"`
	Hostname      string  `json:"hostname"`
	UptimeSeconds float64 `json:"uptimeSeconds"`
}

type RequestInfo struct {
	ClientIp string            `json:"clientIp"`
	Method   string            `json:"method"`
	Path     string            `json:"path"`
	Query    string            `json:"query,omitempty"`
	Headers  map[string]string `json:"headers"`
}

type InfoResponse struct {
	InstanceId string      `json:"instanceId"`
	Hostname   string      `json:"hostname"`
	Timestamp  string      `json:"timestamp"`
	Request    RequestInfo `json:"request"`
}

type DataItem struct {
	Id    int    `json:"id"`
	Value string `json:"value"`
}

type DataResponse struct {
	Data            []DataItem `json:"data"`
	InstanceId      string     `json:"instanceId"`
	Hostname        string     `json:"hostname"`
	RequestsHandled int64      `json:"requestsHandled"`
	Timestamp       string     `json:"timestamp"`
}

// ReceivedResponse echoes a POST body. Received is written out as submitted (compacted).
type ReceivedResponse struct {
	Message         string          `json:"message"`
	Received        json.RawMessage `json:"received"`
	InstanceId      string          `json:"instanceId"`
	Hostname        string          `json:"hostname"`
	RequestsHandled int64           `json:"requestsHandled"`
	Timestamp       string          `json:"timestamp"`
}

type SlowResponse struct {
	IdentityResponse
	DelaySeconds float64 `json:"delaySeconds"`
}

// SimulatedErrorResponse is the fixed body of GET /error.
type SimulatedErrorResponse struct {
	Error    string `json:"error"`
	Instance string `json:"instance"`
}

type User struct {
	Id       int    `json:"id"`
	Name     string `json:"name"`
	Instance string `json:"instance"`
}

type UsersResponse struct {
	Users      []User `json:"users"`
	Total      int    `json:"total"`
	InstanceId string `json:"instanceId"`
}

type Order struct {
	Id       int    `json:"id"`
	Product  string `json:"product"`
	Status   string `json:"status"`
	Instance string `json:"instance"`
}

type OrdersResponse struct {
	Orders     []Order `json:"orders"`
	InstanceId string  `json:"instanceId"`
}

type InstanceInfo struct {
	InstanceId      string `json:"instanceId"`
	Hostname        string `json:"hostname"`
	Address         string `json:"address"`
	StartedAt       string `json:"startedAt"`
	UpdatedAt       string `json:"updatedAt"`
	RequestsHandled int64  `json:"requestsHandled"`
}

type InstancesResponse struct {
	InstanceId string         `json:"instanceId"`
	Instances  []InstanceInfo `json:"instances"`
}
