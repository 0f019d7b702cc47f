package config

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Table is the deployment configuration table shared by every chat server
// and API process. Modes are top-level keys of the document, mixed in with
// the mode-independent entries below.
type Table struct {
	AppHostname                string `yaml:"AppHostname,omitempty"`                // where the site's app server lives
	SiteBridgeScriptName       string `yaml:"SiteBridgeScriptName,omitempty"`       // script the chat server calls on the app server
	MaxMessagesInBacklog       int    `yaml:"MaxMessagesInBacklog,omitempty"`       // entries kept per room
	NumMessagesToShowOnConnect int    `yaml:"NumMessagesToShowOnConnect,omitempty"` // entries replayed to a joining client
	ChatCommunicationToken     string `yaml:"ChatCommunicationToken,omitempty"`

	Modes map[string]ModeConfig `yaml:"-"`
}

// ModeConfig holds the server layout for one deployment mode
// ("prod", "dev", "preview", "verify", ...).
type ModeConfig struct {
	ChatHost        string                  `yaml:"ChatHost,omitempty"`
	MainChatServers map[string]EndpointList `yaml:"MainChatServers,omitempty"`
	APIChatServers  map[string]EndpointList `yaml:"ApiChatServers,omitempty"`
	RedisServer     map[string]EndpointList `yaml:"RedisServer,omitempty"`
	ProxyServer     string                  `yaml:"ProxyServer,omitempty"`
}

// EndpointList is an ordered list of "host:port" strings, one per instance.
// A list decoded from a single scalar is shared by every instance.
type EndpointList struct {
	Items  []string
	Shared bool
}

// Len returns the number of configured endpoints.
func (l EndpointList) Len() int { return len(l.Items) }

// At returns the endpoint serving the 0-based instance index.
func (l EndpointList) At(index int) (string, bool) {
	if l.Shared && len(l.Items) == 1 {
		return l.Items[0], index >= 0
	}
	if index < 0 || index >= len(l.Items) {
		return "", false
	}
	return l.Items[index], true
}

// UnmarshalYAML accepts both a sequence and a single scalar.
func (l *EndpointList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*l = EndpointList{Items: []string{s}, Shared: true}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = EndpointList{Items: items}
		return nil
	default:
		return fmt.Errorf("line %d: endpoint list must be a string or a list of strings", node.Line)
	}
}

// MarshalYAML writes shared lists back as a scalar.
func (l EndpointList) MarshalYAML() (any, error) {
	if l.Shared && len(l.Items) == 1 {
		return l.Items[0], nil
	}
	return l.Items, nil
}

// globalKeys are the mode-independent top-level entries.
var globalKeys = map[string]bool{
	"AppHostname":                true,
	"SiteBridgeScriptName":       true,
	"MaxMessagesInBacklog":       true,
	"NumMessagesToShowOnConnect": true,
	"ChatCommunicationToken":     true,
}

// UnmarshalYAML splits the document into global entries and modes. Any
// top-level mapping that is not a known global entry is a mode.
func (t *Table) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: config document must be a mapping", node.Line)
	}

	type plain Table
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	p.Modes = make(map[string]ModeConfig)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if globalKeys[key.Value] || val.Kind != yaml.MappingNode {
			continue
		}
		var mc ModeConfig
		if err := val.Decode(&mc); err != nil {
			return fmt.Errorf("mode %q: %w", key.Value, err)
		}
		p.Modes[key.Value] = mc
	}

	*t = Table(p)
	return nil
}

// Mode returns the configuration for a deployment mode.
func (t *Table) Mode(name string) (ModeConfig, bool) {
	if t == nil {
		return ModeConfig{}, false
	}
	mc, ok := t.Modes[name]
	return mc, ok
}

// ModeNames returns the configured mode names in sorted order.
func (t *Table) ModeNames() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.Modes))
	for name := range t.Modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BasketNames returns the baskets with chat servers configured, sorted.
func (m ModeConfig) BasketNames() []string {
	names := make([]string, 0, len(m.MainChatServers))
	for name := range m.MainChatServers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
