// Package topology resolves which slot of the chat server topology the
// current process occupies.
//
// A deployment is split into modes (prod, dev, ...). Each mode has baskets:
// pools of numbered instances, each with its own chat, API and store
// endpoints. Switching the active basket moves all traffic to another pool.
package topology

import (
	"fmt"

	"github.com/soyeahso/chatbasket/internal/config"
	"github.com/soyeahso/chatbasket/internal/logging"
)

// PolicyPortBase is the auxiliary listener port of instance 1. Instance n
// listens on PolicyPortBase + n - 1.
const PolicyPortBase = 10843

// DefaultLogLevel is used when Params.LogLevel is empty.
const DefaultLogLevel = logging.DefaultLevel

// Server list names, as they appear in the configuration table.
const (
	ListChat  = "MainChatServers"
	ListAPI   = "ApiChatServers"
	ListStore = "RedisServer"
)

// Params selects a slot in the topology.
type Params struct {
	Mode     string
	Basket   string
	Instance int // 1-based
	LogLevel string
}

// Resolve computes the identity for p from the configuration table. Any
// missing or malformed entry is an error; nothing is defaulted except the
// log level.
func Resolve(table *config.Table, p Params) (*Identity, error) {
	if table == nil {
		return nil, &ConfigMissingError{What: "table"}
	}
	mc, ok := table.Mode(p.Mode)
	if !ok {
		return nil, &ConfigMissingError{What: "mode", Mode: p.Mode}
	}
	chatList, ok := mc.MainChatServers[p.Basket]
	if !ok {
		return nil, &ConfigMissingError{What: "basket", Mode: p.Mode, Basket: p.Basket}
	}

	count := chatList.Len()
	index := p.Instance - 1
	if index < 0 || index >= count {
		return nil, &IndexOutOfRangeError{List: ListChat, Basket: p.Basket, Instance: p.Instance, Count: count}
	}

	chat, err := selectEndpoint(p, ListChat, chatList, index)
	if err != nil {
		return nil, err
	}
	apiList, ok := mc.APIChatServers[p.Basket]
	if !ok {
		return nil, &ConfigMissingError{What: ListAPI, Mode: p.Mode, Basket: p.Basket}
	}
	api, err := selectEndpoint(p, ListAPI, apiList, index)
	if err != nil {
		return nil, err
	}
	storeList, ok := mc.RedisServer[p.Basket]
	if !ok {
		return nil, &ConfigMissingError{What: ListStore, Mode: p.Mode, Basket: p.Basket}
	}
	store, err := selectEndpoint(p, ListStore, storeList, index)
	if err != nil {
		return nil, err
	}

	level := p.LogLevel
	if level == "" {
		level = DefaultLogLevel
	}

	return &Identity{
		Mode:               p.Mode,
		Basket:             p.Basket,
		Instance:           p.Instance,
		InstanceCount:      count,
		ChatHost:           mc.ChatHost,
		Chat:               chat,
		API:                api,
		Store:              store,
		PolicyPort:         PolicyPortBase + index,
		AppServerHost:      table.AppHostname,
		SiteBridgeScript:   table.SiteBridgeScriptName,
		ProxyServer:        mc.ProxyServer,
		Token:              table.ChatCommunicationToken,
		BacklogSize:        table.MaxMessagesInBacklog,
		ConnectPreviewSize: table.NumMessagesToShowOnConnect,
		LogLevel:           level,
	}, nil
}

func selectEndpoint(p Params, name string, list config.EndpointList, index int) (config.Endpoint, error) {
	raw, ok := list.At(index)
	if !ok {
		return config.Endpoint{}, &IndexOutOfRangeError{List: name, Basket: p.Basket, Instance: p.Instance, Count: list.Len()}
	}
	ep, err := config.ParseEndpoint(raw)
	if err != nil {
		return config.Endpoint{}, fmt.Errorf("topology: %s.%s.%s[%d]: %w", p.Mode, name, p.Basket, index, err)
	}
	return ep, nil
}

// InstanceCount returns the number of instances configured for a basket.
func InstanceCount(table *config.Table, mode, basket string) (int, error) {
	if table == nil {
		return 0, &ConfigMissingError{What: "table"}
	}
	mc, ok := table.Mode(mode)
	if !ok {
		return 0, &ConfigMissingError{What: "mode", Mode: mode}
	}
	list, ok := mc.MainChatServers[basket]
	if !ok {
		return 0, &ConfigMissingError{What: "basket", Mode: mode, Basket: basket}
	}
	return list.Len(), nil
}
