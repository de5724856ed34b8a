package api

import (
	"github.com/veesix-networks/hostnet/pkg/hieradata"
)

type Status struct {
	State         string `json:"state"`
	ListenAddress string `json:"listen_address"`
	Running       bool   `json:"running"`
}

type HostsResponse struct {
	Hosts []string `json:"hosts"`
}

type ResolveResponse struct {
	Host      string            `json:"host"`
	RequestID string            `json:"request_id"`
	Config    *hieradata.Config `json:"config"`
}

type InterfaceSummary struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	NetworkTypes []string `json:"network_types,omitempty"`
	OSName       string   `json:"os_name"`
	Platform     bool     `json:"platform"`
	Data         bool     `json:"data"`
	NeedsConfig  bool     `json:"needs_config"`
	Master       string   `json:"master,omitempty"`
}

type InterfacesResponse struct {
	Host       string             `json:"host"`
	Interfaces []InterfaceSummary `json:"interfaces"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
