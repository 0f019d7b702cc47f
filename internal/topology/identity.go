package topology

import (
	"github.com/rs/zerolog"

	"github.com/soyeahso/chatbasket/internal/config"
	"github.com/soyeahso/chatbasket/internal/keys"
)

// Identity is a process's resolved place in the server topology. It is
// built once by Resolve and then shared read-only. Resolving the same slot
// from the same table always yields an equal value, so identities compare
// with ==.
type Identity struct {
	Mode          string `yaml:"mode"`
	Basket        string `yaml:"basket"`
	Instance      int    `yaml:"instance"` // 1-based
	InstanceCount int    `yaml:"instanceCount"`

	ChatHost   string          `yaml:"chatHost"` // public hostname clients connect to
	Chat       config.Endpoint `yaml:"chat"`
	API        config.Endpoint `yaml:"api"`
	Store      config.Endpoint `yaml:"store"`
	PolicyPort int             `yaml:"policyPort"`

	AppServerHost    string `yaml:"appServerHost"`
	SiteBridgeScript string `yaml:"siteBridgeScript"`
	ProxyServer      string `yaml:"proxyServer"`
	Token            string `yaml:"-"`

	BacklogSize        int    `yaml:"backlogSize"`
	ConnectPreviewSize int    `yaml:"connectPreviewSize"`
	LogLevel           string `yaml:"logLevel"`
}

// Index returns the 0-based instance index.
func (id *Identity) Index() int { return id.Instance - 1 }

// Keys returns the key namespace bound to this instance. It fails only for
// identities not produced by Resolve, whose instance may be below 1.
func (id *Identity) Keys() (*keys.Namespace, error) {
	return keys.NewNamespace(id.Instance)
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler. The token is
// never logged.
func (id *Identity) MarshalZerologObject(e *zerolog.Event) {
	e.Str("mode", id.Mode).
		Str("basket", id.Basket).
		Int("instance", id.Instance).
		Int("instanceCount", id.InstanceCount).
		Str("chat", id.Chat.String()).
		Str("api", id.API.String()).
		Str("store", id.Store.String()).
		Int("policyPort", id.PolicyPort)
}
