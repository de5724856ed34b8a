package dhcp

import (
	"encoding/hex"
	"fmt"
	"net"
	"strings"

	"github.com/google/gopacket/layers"

	"github.com/veesix-networks/hostnet/pkg/models/topology"
)

// hardwareTypeEthernet prefixes a bare MAC client identifier (RFC 2132 9.14).
const hardwareTypeEthernet = "01"

// ClientID builds the DHCP client identifier a host presents on a platform
// network. mgmt and infra can run over the same device, so the infra id is
// prefixed with the hex encoded "<hostname>:<network type>" to keep the two
// leases apart.
func ClientID(hostname, networkType, mac string) (string, error) {
	hw, err := net.ParseMAC(strings.TrimSpace(mac))
	if err != nil {
		return "", fmt.Errorf("client id for %s: %w", hostname, err)
	}

	switch networkType {
	case topology.NetworkTypeMgmt:
		return hardwareTypeEthernet + ":" + hw.String(), nil
	case topology.NetworkTypeInfra:
		if hostname == "" {
			return "", fmt.Errorf("client id for %s network requires a hostname", networkType)
		}
		return colonHex([]byte(hostname+":"+networkType)) + ":" + hw.String(), nil
	default:
		return "", fmt.Errorf("no client id format for %s network", networkType)
	}
}

// ClientIDOption encodes a colon separated client identifier as DHCP
// option 61.
func ClientIDOption(cid string) (layers.DHCPOption, error) {
	data, err := hex.DecodeString(strings.ReplaceAll(cid, ":", ""))
	if err != nil {
		return layers.DHCPOption{}, fmt.Errorf("decode client id: %w", err)
	}
	if len(data) < 2 || len(data) > 255 {
		return layers.DHCPOption{}, fmt.Errorf("client id length %d outside 2-255", len(data))
	}
	return layers.NewDHCPOption(layers.DHCPOptClientID, data), nil
}

func colonHex(b []byte) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = hex.EncodeToString([]byte{c})
	}
	return strings.Join(parts, ":")
}
