package bridge

import "github.com/enbility/zeroconf/v3"

// record is the part of a DNS-SD entry the browser uses.
type record struct {
	instance  string
	host      string
	port      int
	text      []string
	addresses []string
}

func recordFromEntry(entry *zeroconf.ServiceEntry) record {
	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}
	return record{
		instance:  entry.Instance,
		host:      entry.HostName,
		port:      entry.Port,
		text:      entry.Text,
		addresses: addrs,
	}
}

// aggregator tracks services by instance name across interfaces.
type aggregator struct {
	services map[string]*Service
}

func newAggregator() *aggregator {
	return &aggregator{services: make(map[string]*Service)}
}

// add merges r and reports whether anything observable changed.
func (a *aggregator) add(r record) (Event, bool) {
	if r.instance == "" {
		return Event{}, false
	}

	existing, found := a.services[r.instance]
	if !found {
		svc := &Service{
			Instance:  r.instance,
			Host:      r.host,
			Port:      uint16(r.port),
			Addresses: mergeAddresses(nil, r.addresses),
			Text:      r.text,
		}
		a.services[r.instance] = svc
		return Event{Type: EventAdded, Service: svc.clone()}, true
	}

	before := len(existing.Addresses)
	existing.Addresses = mergeAddresses(existing.Addresses, r.addresses)
	if len(existing.Addresses) == before {
		return Event{}, false
	}
	return Event{Type: EventUpdated, Service: existing.clone()}, true
}

// remove drops the addresses of r. The service is removed with its last
// address.
func (a *aggregator) remove(r record) (Event, bool) {
	existing, found := a.services[r.instance]
	if !found {
		return Event{}, false
	}

	existing.Addresses = removeAddresses(existing.Addresses, r.addresses)
	if len(existing.Addresses) > 0 {
		return Event{Type: EventUpdated, Service: existing.clone()}, true
	}
	delete(a.services, r.instance)
	return Event{Type: EventRemoved, Service: existing.clone()}, true
}

func (s *Service) clone() Service {
	c := *s
	c.Addresses = append([]string(nil), s.Addresses...)
	c.Text = append([]string(nil), s.Text...)
	return c
}

// mergeAddresses appends the addresses not yet in existing.
func mergeAddresses(existing, add []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, addr := range existing {
		seen[addr] = true
	}
	for _, addr := range add {
		if !seen[addr] {
			existing = append(existing, addr)
			seen[addr] = true
		}
	}
	return existing
}

func removeAddresses(addresses, remove []string) []string {
	drop := make(map[string]bool, len(remove))
	for _, addr := range remove {
		drop[addr] = true
	}
	out := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if !drop[addr] {
			out = append(out, addr)
		}
	}
	return out
}
