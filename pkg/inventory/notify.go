package inventory

import (
	"context"

	"github.com/veesix-networks/hostnet/pkg/events"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
)

const eventSource = "inventory"

// Notifying publishes an InventoryEvent after every successful write to the
// wrapped store.
type Notifying struct {
	Store
	bus events.Bus
}

func WithEvents(store Store, bus events.Bus) *Notifying {
	return &Notifying{Store: store, bus: bus}
}

func (n *Notifying) Put(ctx context.Context, snap *topology.Snapshot) error {
	if err := n.Store.Put(ctx, snap); err != nil {
		return err
	}
	n.publish(snap.Host.Hostname, events.InventoryActionPut)
	return nil
}

func (n *Notifying) Delete(ctx context.Context, hostname string) error {
	if err := n.Store.Delete(ctx, hostname); err != nil {
		return err
	}
	n.publish(hostname, events.InventoryActionDelete)
	return nil
}

func (n *Notifying) publish(hostname, action string) {
	n.bus.Publish(events.TopicInventoryUpdated, events.Event{
		Source: eventSource,
		Data:   events.InventoryEvent{Hostname: hostname, Action: action},
	})
}
