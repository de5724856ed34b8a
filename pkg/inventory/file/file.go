// Package file reads host snapshots from a directory of <hostname>.yaml
// files.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/veesix-networks/hostnet/pkg/config"
	"github.com/veesix-networks/hostnet/pkg/inventory"
	"github.com/veesix-networks/hostnet/pkg/models/topology"
)

const ext = ".yaml"

func init() {
	inventory.Register(config.InventoryDriverFile, func(path string) (inventory.Source, error) {
		return Open(path)
	})
}

type Store struct {
	dir string
}

func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(hostname string) (string, error) {
	if hostname == "" || strings.ContainsAny(hostname, `/\`) || strings.HasPrefix(hostname, ".") {
		return "", fmt.Errorf("invalid hostname %q", hostname)
	}
	return filepath.Join(s.dir, hostname+ext), nil
}

func (s *Store) Hosts(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var hosts []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		hosts = append(hosts, strings.TrimSuffix(e.Name(), ext))
	}
	sort.Strings(hosts)
	return hosts, nil
}

func (s *Store) Snapshot(ctx context.Context, hostname string) (*topology.Snapshot, error) {
	path, err := s.path(hostname)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", hostname, inventory.ErrHostNotFound)
	}
	if err != nil {
		return nil, err
	}

	var snap topology.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	switch snap.Host.Hostname {
	case "":
		snap.Host.Hostname = hostname
	case hostname:
	default:
		return nil, fmt.Errorf("%s holds snapshot for %s", path, snap.Host.Hostname)
	}
	return &snap, nil
}

func (s *Store) Put(ctx context.Context, snap *topology.Snapshot) error {
	path, err := s.path(snap.Host.Hostname)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *Store) Delete(ctx context.Context, hostname string) error {
	path, err := s.path(hostname)
	if err != nil {
		return err
	}
	if err := os.Remove(path); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", hostname, inventory.ErrHostNotFound)
	} else if err != nil {
		return err
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}
