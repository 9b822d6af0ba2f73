// Package i18n resolves language keys into captions.
package i18n

import (
	"embed"
	"os"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

//go:embed messages/en_US.toml
var defaultMessages embed.FS

// Translator resolves language keys
type Translator interface {
	// Translate returns the caption of key, or key itself when unknown
	Translate(key string) string

	// Sub translates key and replaces its {0}, {1}, ... placeholders with the
	// translated args
	Sub(key string, args ...string) string
}

// Bundle is a Translator backed by an in-memory message table
type Bundle struct {
	messages map[string]string
}

var _ Translator = &Bundle{}

type bundleConfig struct {
	files    []string
	messages map[string]string
}

// Option configures a Bundle
type Option func(*bundleConfig)

// WithFile layers the messages of a TOML file on top of the defaults.
// Files are applied in the order given.
func WithFile(path string) Option {
	return func(c *bundleConfig) {
		c.files = append(c.files, path)
	}
}

// WithMessages layers messages on top of the defaults and files
func WithMessages(messages map[string]string) Option {
	return func(c *bundleConfig) {
		for k, v := range messages {
			c.messages[k] = v
		}
	}
}

// New builds a Bundle from the embedded English messages and opts
func New(opts ...Option) (*Bundle, error) {
	cfg := &bundleConfig{messages: make(map[string]string)}
	for _, opt := range opts {
		opt(cfg)
	}

	data, err := defaultMessages.ReadFile("messages/en_US.toml")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read default messages")
	}

	b := &Bundle{messages: make(map[string]string)}
	if err := b.merge(data); err != nil {
		return nil, goerr.Wrap(err, "failed to parse default messages")
	}

	for _, path := range cfg.files {
		// #nosec G304 - path is expected to be provided by CLI argument
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read messages file", goerr.V("path", path))
		}
		if err := b.merge(data); err != nil {
			return nil, goerr.Wrap(err, "failed to parse messages file", goerr.V("path", path))
		}
	}

	for k, v := range cfg.messages {
		b.messages[k] = v
	}

	return b, nil
}

func (b *Bundle) merge(data []byte) error {
	var messages map[string]string
	if err := toml.Unmarshal(data, &messages); err != nil {
		return err
	}
	for k, v := range messages {
		b.messages[k] = v
	}
	return nil
}

// Translate returns the caption of key, or key itself when unknown
func (b *Bundle) Translate(key string) string {
	if msg, ok := b.messages[key]; ok {
		return msg
	}
	return key
}

// Sub translates key and substitutes the translated args into it
func (b *Bundle) Sub(key string, args ...string) string {
	msg := b.Translate(key)
	for i, arg := range args {
		msg = strings.ReplaceAll(msg, "{"+strconv.Itoa(i)+"}", b.Translate(arg))
	}
	return msg
}

// Len returns the number of known keys
func (b *Bundle) Len() int {
	return len(b.messages)
}
