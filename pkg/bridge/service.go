package bridge

import (
	"net"
	"strconv"
	"strings"
	"unicode"

	"github.com/owbinding/onewire-go/pkg/owserver"
)

// DNS-SD parameters of owserver.
const (
	ServiceType = "_owserver._tcp"
	Domain      = "local."
)

// Service is an owserver instance found on the network.
type Service struct {
	Instance  string
	Host      string
	Port      uint16
	Addresses []string
	Text      []string
}

// BridgeID derives a uid segment from the instance name: lower case, with
// every character outside [a-z0-9] replaced by '_'.
func (s *Service) BridgeID() string {
	var b strings.Builder
	for _, r := range strings.ToLower(s.Instance) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}

// Address returns a dialable host:port, preferring IPv4.
func (s *Service) Address() string {
	port := int(s.Port)
	if port == 0 {
		port = owserver.DefaultPort
	}
	host := strings.TrimSuffix(s.Host, ".")
	if len(s.Addresses) > 0 {
		host = s.Addresses[0]
	}
	for _, addr := range s.Addresses {
		if ip := net.ParseIP(addr); ip != nil && ip.To4() != nil {
			host = addr
			break
		}
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// EventType tells whether a service appeared, changed or went away.
type EventType uint8

const (
	EventAdded EventType = iota
	EventUpdated
	EventRemoved
)

func (t EventType) String() string {
	switch t {
	case EventAdded:
		return "added"
	case EventUpdated:
		return "updated"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event reports a change of a service.
type Event struct {
	Type    EventType
	Service Service
}
