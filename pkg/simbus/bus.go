package simbus

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/owbinding/onewire-go/pkg/classify"
	"github.com/owbinding/onewire-go/pkg/owserver"
	"github.com/owbinding/onewire-go/pkg/sensor"
)

// Bus errors.
var (
	// ErrNotFound is returned for paths that do not exist on the bus.
	ErrNotFound = errors.New("path not found")

	// ErrUnreachable is returned when listing a branch marked as failing.
	ErrUnreachable = errors.New("branch unreachable")

	// ErrDuplicateID is returned when a topology lists a device twice.
	ErrDuplicateID = errors.New("duplicate device id")
)

// Bus is an in-memory bus built from a Topology. It is safe for concurrent
// use.
type Bus struct {
	dirs    map[string][]sensor.ID
	failing map[string]bool
	values  map[string]string
	pages   map[string]sensor.PageBuffer

	mu    sync.Mutex
	calls []string
}

// New builds a bus from t.
func New(t *Topology) (*Bus, error) {
	b := &Bus{
		dirs:    make(map[string][]sensor.ID),
		failing: make(map[string]bool),
		values:  make(map[string]string),
		pages:   make(map[string]sensor.PageBuffer),
	}
	seen := make(map[string]bool)
	if err := b.add("/", t.Devices, seen); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bus) add(dir string, devices []Device, seen map[string]bool) error {
	b.dirs[dir] = nil
	for _, d := range devices {
		id, err := sensor.ParseID(dir + d.ID)
		if err != nil {
			return err
		}
		key := strings.ToUpper(id.ID())
		if seen[key] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id.ID())
		}
		seen[key] = true
		b.dirs[dir] = append(b.dirs[dir], id)

		b.values[id.FullPath()+"/type"] = d.Type
		if d.DeviceType != "" {
			b.values[id.FullPath()+"/device_type"] = d.DeviceType
		}
		if len(d.Pages) > 0 || len(d.Associated) > 0 {
			pages, err := buildPages(d)
			if err != nil {
				return fmt.Errorf("%s: %w", id.ID(), err)
			}
			b.pages[id.FullPath()] = pages
		}

		if d.hasBranches() {
			if err := b.add(id.Branch(sensor.BranchMain), d.Main, seen); err != nil {
				return err
			}
			if err := b.add(id.Branch(sensor.BranchAux), d.Aux, seen); err != nil {
				return err
			}
			b.failing[id.Branch(sensor.BranchMain)] = d.FailMain
			b.failing[id.Branch(sensor.BranchAux)] = d.FailAux
		}
	}
	return nil
}

func buildPages(d Device) (sensor.PageBuffer, error) {
	var pages sensor.PageBuffer
	for n, raw := range d.Pages {
		data, err := hex.DecodeString(strings.Join(strings.Fields(raw), ""))
		if err != nil {
			return pages, fmt.Errorf("page %d: %w", n, err)
		}
		if err := pages.SetPage(n, data); err != nil {
			return pages, err
		}
	}
	for i, assoc := range d.Associated {
		if err := classify.EncodeAssociation(&pages, 5+i, assoc); err != nil {
			return pages, err
		}
	}
	return pages, nil
}

// Dir lists the devices in path. Empty branches behave like owserver: they
// report ErrEmptyDirectory.
func (b *Bus) Dir(ctx context.Context, path string) ([]sensor.ID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path = dirKey(path)

	b.mu.Lock()
	b.calls = append(b.calls, path)
	b.mu.Unlock()

	if b.failing[path] {
		return nil, fmt.Errorf("%w: %s", ErrUnreachable, path)
	}
	ids, ok := b.dirs[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s", owserver.ErrEmptyDirectory, path)
	}
	return append([]sensor.ID(nil), ids...), nil
}

// ReadString returns a device property such as "/10.AAA/type".
func (b *Bus) ReadString(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, ok := b.values[path]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return v, nil
}

// ReadPages returns the memory pages of a device. Devices without configured
// pages read as zeroes.
func (b *Bus) ReadPages(ctx context.Context, id sensor.ID) (sensor.PageBuffer, error) {
	if err := ctx.Err(); err != nil {
		return sensor.PageBuffer{}, err
	}
	if _, ok := b.values[id.FullPath()+"/type"]; !ok {
		return sensor.PageBuffer{}, fmt.Errorf("%w: %s", ErrNotFound, id.FullPath())
	}
	return b.pages[id.FullPath()], nil
}

// DirCalls returns the directory paths listed so far, in order.
func (b *Bus) DirCalls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func dirKey(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
