package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Endpoint is a parsed "host:port" entry.
type Endpoint struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

// String returns the endpoint in host:port form.
func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// MalformedEndpointError reports a "host:port" entry that cannot be split or
// whose port is not a number.
type MalformedEndpointError struct {
	Value  string
	Reason string
}

func (e *MalformedEndpointError) Error() string {
	return fmt.Sprintf("config: malformed endpoint %q: %s", e.Value, e.Reason)
}

// ParseEndpoint splits s on its first colon into host and port.
func ParseEndpoint(s string) (Endpoint, error) {
	host, portStr, ok := strings.Cut(s, ":")
	if !ok {
		return Endpoint{}, &MalformedEndpointError{Value: s, Reason: "missing port separator"}
	}
	if host == "" {
		return Endpoint{}, &MalformedEndpointError{Value: s, Reason: "empty host"}
	}
	if strings.HasPrefix(portStr, "+") || strings.HasPrefix(portStr, "-") {
		return Endpoint{}, &MalformedEndpointError{Value: s, Reason: "port is not a number"}
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return Endpoint{}, &MalformedEndpointError{Value: s, Reason: "port is not a number"}
	}
	if port < 1 || port > 65535 {
		return Endpoint{}, &MalformedEndpointError{Value: s, Reason: fmt.Sprintf("port must be 1-65535, got %d", port)}
	}
	return Endpoint{Host: host, Port: port}, nil
}
