package bridge

import (
	"context"
	"log/slog"
	"net"
	"slices"

	"github.com/enbility/zeroconf/v3"
)

// Config configures a Browser.
type Config struct {
	// Interface restricts browsing to one network interface.
	// Empty means all interfaces.
	Interface string

	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger
}

// Browser browses for owserver instances.
type Browser struct {
	config Config
}

// NewBrowser creates a Browser.
func NewBrowser(config Config) *Browser {
	return &Browser{config: config}
}

// Browse reports owserver instances until ctx is done. The returned channel
// is closed when browsing stops.
func (b *Browser) Browse(ctx context.Context) (<-chan Event, error) {
	out := make(chan Event)
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	go func() {
		defer close(out)
		agg := newAggregator()

		for {
			var (
				ev Event
				ok bool
			)
			select {
			case entry, open := <-entries:
				if !open {
					return
				}
				ev, ok = agg.add(recordFromEntry(entry))
			case entry, open := <-removed:
				if !open {
					removed = nil
					continue
				}
				ev, ok = agg.remove(recordFromEntry(entry))
			case <-ctx.Done():
				return
			}
			if !ok {
				continue
			}
			b.debugLog("owserver "+ev.Type.String(), "instance", ev.Service.Instance, "addresses", ev.Service.Addresses)
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		if err := zeroconf.Browse(ctx, ServiceType, Domain, entries, removed, b.options()...); err != nil {
			b.debugLog("browse failed", "error", err)
		}
	}()

	return out, nil
}

// FindAll browses until ctx is done and returns the instances still present,
// ordered by instance name. A context that expires without results is not an
// error.
func (b *Browser) FindAll(ctx context.Context) ([]Service, error) {
	events, err := b.Browse(ctx)
	if err != nil {
		return nil, err
	}

	found := make(map[string]Service)
	for ev := range events {
		if ev.Type == EventRemoved {
			delete(found, ev.Service.Instance)
			continue
		}
		found[ev.Service.Instance] = ev.Service
	}

	out := make([]Service, 0, len(found))
	for _, svc := range found {
		out = append(out, svc)
	}
	slices.SortFunc(out, func(a, b Service) int {
		switch {
		case a.Instance < b.Instance:
			return -1
		case a.Instance > b.Instance:
			return 1
		}
		return 0
	})
	return out, nil
}

func (b *Browser) options() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption
	if b.config.Interface != "" {
		iface, err := net.InterfaceByName(b.config.Interface)
		if err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		} else {
			b.debugLog("ignoring unknown interface", "interface", b.config.Interface, "error", err)
		}
	}
	return opts
}

func (b *Browser) debugLog(msg string, args ...any) {
	if b.config.Logger != nil {
		b.config.Logger.Debug(msg, args...)
	}
}
