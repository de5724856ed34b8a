package topology

import (
	"errors"
	"fmt"

	"inet.af/netaddr"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks the structural invariants of a snapshot. All violations are
// returned joined together.
func (s *Snapshot) Validate() error {
	var errs []error

	if s.Host.Hostname == "" {
		errs = append(errs, invalid("host.hostname", "required"))
	}

	names := make(map[string]struct{}, len(s.Interfaces))
	portsByIface := make(map[int64]int, len(s.Ports))
	for _, p := range s.Ports {
		portsByIface[p.InterfaceID]++
	}

	for i := range s.Interfaces {
		iface := &s.Interfaces[i]
		field := fmt.Sprintf("interfaces[%d]", i)

		if iface.Name == "" {
			errs = append(errs, invalid(field+".name", "required"))
			continue
		}
		field = fmt.Sprintf("interfaces.%s", iface.Name)

		if _, dup := names[iface.Name]; dup {
			errs = append(errs, invalid(field, "duplicate interface name"))
		}
		names[iface.Name] = struct{}{}

		switch iface.Type {
		case InterfaceTypeEthernet:
			if n := portsByIface[iface.ID]; n != 1 {
				errs = append(errs, invalid(field, "ethernet interface has %d ports, want 1", n))
			}
		case InterfaceTypeAE:
			if iface.MAC == "" {
				errs = append(errs, invalid(field+".mac", "required for ae interface"))
			}
		case InterfaceTypeVLAN:
			if len(iface.Uses) != 1 {
				errs = append(errs, invalid(field+".uses", "vlan interface uses %d interfaces, want 1", len(iface.Uses)))
			}
			if iface.VLANID < 1 || iface.VLANID > 4094 {
				errs = append(errs, invalid(field+".vlan_id", "%d out of range 1-4094", iface.VLANID))
			}
		default:
			errs = append(errs, invalid(field+".type", "unknown interface type %q", iface.Type))
		}
	}

	for i, a := range s.Addresses {
		if _, err := netaddr.ParseIP(a.Address); err != nil {
			errs = append(errs, invalid(fmt.Sprintf("addresses[%d].address", i), "%v", err))
		}
	}

	for i, r := range s.Routes {
		ip, err := netaddr.ParseIP(r.Network)
		if err != nil {
			errs = append(errs, invalid(fmt.Sprintf("routes[%d].network", i), "%v", err))
			continue
		}
		if r.Prefix < 0 || r.Prefix > int(ip.BitLen()) {
			errs = append(errs, invalid(fmt.Sprintf("routes[%d].prefix", i), "%d out of range", r.Prefix))
		}
	}

	return errors.Join(errs...)
}
