package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/veesix-networks/hostnet/pkg/classify"
	"github.com/veesix-networks/hostnet/pkg/events"
	"github.com/veesix-networks/hostnet/pkg/hieradata"
	"github.com/veesix-networks/hostnet/pkg/ifmgr"
	"github.com/veesix-networks/hostnet/pkg/inventory"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
	"github.com/veesix-networks/hostnet/pkg/netconfig"
	"github.com/veesix-networks/hostnet/pkg/resolver"
)

const (
	requestIDHeader = "X-Request-ID"
	cacheHeader     = "X-Cache"
)

func (c *Component) handleHosts(w http.ResponseWriter, r *http.Request) {
	hosts, err := c.inventory.Hosts(r.Context())
	if err != nil {
		c.logger.Error("list hosts failed", "error", err)
		c.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if hosts == nil {
		hosts = []string{}
	}

	c.writeJSON(w, HostsResponse{Hosts: hosts})
}

func (c *Component) handleResolveHost(w http.ResponseWriter, r *http.Request) {
	host := r.PathValue("host")
	requestID := c.requestID(w, r)

	if c.cache != nil {
		if cfg, ok := c.cache.get(r.Context(), host); ok {
			w.Header().Set(cacheHeader, "hit")
			c.publishResolved(host, requestID, true, nil)
			c.writeJSON(w, ResolveResponse{Host: host, RequestID: requestID, Config: cfg})
			return
		}
		w.Header().Set(cacheHeader, "miss")
	}

	snap, err := c.inventory.Snapshot(r.Context(), host)
	if err != nil {
		c.writeError(w, statusFor(err), err.Error())
		return
	}

	cfg, ok := c.resolve(w, r, requestID, snap)
	if ok && c.cache != nil {
		c.cache.put(r.Context(), host, cfg)
	}
}

func (c *Component) handleResolve(w http.ResponseWriter, r *http.Request) {
	snap, ok := c.readSnapshot(w, r)
	if !ok {
		return
	}

	c.resolve(w, r, c.requestID(w, r), snap)
}

func (c *Component) handlePutHost(w http.ResponseWriter, r *http.Request) {
	if c.store == nil {
		c.writeError(w, http.StatusMethodNotAllowed, "inventory is read-only")
		return
	}

	host := r.PathValue("host")
	snap, ok := c.readSnapshot(w, r)
	if !ok {
		return
	}

	if snap.Host.Hostname == "" {
		snap.Host.Hostname = host
	}
	if snap.Host.Hostname != host {
		c.writeError(w, http.StatusBadRequest, fmt.Sprintf("snapshot is for %s, not %s", snap.Host.Hostname, host))
		return
	}
	if err := snap.Validate(); err != nil {
		c.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := c.store.Put(r.Context(), snap); err != nil {
		c.logger.Error("store snapshot failed", "host", host, "error", err)
		c.writeError(w, statusFor(err), err.Error())
		return
	}
	if c.cache != nil {
		c.cache.invalidate(r.Context(), host)
	}

	c.logger.Info("stored snapshot", "host", host)
	w.WriteHeader(http.StatusNoContent)
}

func (c *Component) handleDeleteHost(w http.ResponseWriter, r *http.Request) {
	if c.store == nil {
		c.writeError(w, http.StatusMethodNotAllowed, "inventory is read-only")
		return
	}

	host := r.PathValue("host")
	if err := c.store.Delete(r.Context(), host); err != nil {
		c.writeError(w, statusFor(err), err.Error())
		return
	}
	if c.cache != nil {
		c.cache.invalidate(r.Context(), host)
	}

	c.logger.Info("deleted snapshot", "host", host)
	w.WriteHeader(http.StatusNoContent)
}

// readSnapshot reads a size-limited JSON body and checks it against the
// snapshot schema before decoding it.
func (c *Component) readSnapshot(w http.ResponseWriter, r *http.Request) (*topology.Snapshot, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, c.maxRequestSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.writeError(w, http.StatusRequestEntityTooLarge, err.Error())
			return nil, false
		}
		c.writeError(w, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		c.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	if err := c.snapshotSchema.VisitJSON(doc); err != nil {
		c.writeError(w, http.StatusUnprocessableEntity, "snapshot does not match schema: "+err.Error())
		return nil, false
	}

	var snap topology.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		c.writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return &snap, true
}

func (c *Component) requestID(w http.ResponseWriter, r *http.Request) string {
	requestID := r.Header.Get(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, requestID)
	return requestID
}

func (c *Component) resolve(w http.ResponseWriter, r *http.Request, requestID string, snap *topology.Snapshot) (*hieradata.Config, bool) {
	ctx := resolver.WithRequestID(r.Context(), requestID)
	cfg, err := c.resolver.Resolve(ctx, snap)
	c.publishResolved(snap.Host.Hostname, requestID, false, err)
	if err != nil {
		c.logger.Warn("resolve failed", "host", snap.Host.Hostname, "request_id", requestID, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusFor(err))
		c.writeJSON(w, ErrorResponse{Error: err.Error(), RequestID: requestID})
		return nil, false
	}

	c.writeJSON(w, ResolveResponse{
		Host:      snap.Host.Hostname,
		RequestID: requestID,
		Config:    cfg,
	})
	return cfg, true
}

func (c *Component) publishResolved(host, requestID string, cached bool, err error) {
	if c.events == nil {
		return
	}
	ev := events.ResolvedEvent{Hostname: host, RequestID: requestID, Cached: cached}
	if err != nil {
		ev.Error = err.Error()
	}
	c.events.Publish(events.TopicHostResolved, events.Event{Source: Namespace, Data: ev})
}

func (c *Component) handleInterfaces(w http.ResponseWriter, r *http.Request) {
	host := r.PathValue("host")

	snap, err := c.inventory.Snapshot(r.Context(), host)
	if err != nil {
		c.writeError(w, statusFor(err), err.Error())
		return
	}

	idx, err := ifmgr.Build(snap, ifmgr.WithLogger(c.logger))
	if err != nil {
		c.writeError(w, statusFor(err), err.Error())
		return
	}
	cl := classify.New(idx)

	resp := InterfacesResponse{Host: host, Interfaces: []InterfaceSummary{}}
	for _, iface := range idx.Ordered() {
		master, _ := cl.Master(iface)
		resp.Interfaces = append(resp.Interfaces, InterfaceSummary{
			Name:         iface.Name,
			Type:         iface.Type,
			NetworkTypes: iface.NetworkTypes,
			OSName:       cl.OSName(iface),
			Platform:     cl.IsPlatform(iface),
			Data:         cl.IsData(iface),
			NeedsConfig:  cl.NeedsConfig(iface),
			Master:       master,
		})
	}

	c.writeJSON(w, resp)
}

func (c *Component) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, c.spec)
}

func (c *Component) handleStatus(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, c.GetStatus())
}

// statusFor maps resolution errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		validation *topology.ValidationError
		cycle      *ifmgr.CycleError
		missing    *netconfig.MissingAddressError
	)

	switch {
	case errors.Is(err, inventory.ErrHostNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &cycle), errors.As(err, &missing),
		errors.Is(err, ifmgr.ErrUnknownInterface), errors.Is(err, ifmgr.ErrVLANLower):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (c *Component) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	c.writeJSON(w, ErrorResponse{Error: message})
}

func (c *Component) writeJSON(w http.ResponseWriter, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.Encode(v)
}
