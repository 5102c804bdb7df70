// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package catalog

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/alekmarinov/avtv/internal/logging"
	"github.com/alekmarinov/avtv/internal/metrics"
)

// LinkTarget is the redirect destination of a channel alias.
type LinkTarget struct {
	Provider string `koanf:"provider"`
	Channel  string `koanf:"channel"`
}

// Links is the static channel alias table, provider → channel →
// target. It is loaded once at process start and immutable thereafter;
// the engine consults it before program-schedule lookups only, never
// for channel metadata.
type Links map[string]map[string]LinkTarget

// Resolve substitutes the alias target for (provider, channel) when the
// table has an entry, identity otherwise. Redirections are logged.
func (l Links) Resolve(provider, channel string) (string, string) {
	targets, ok := l[provider]
	if !ok {
		return provider, channel
	}
	target, ok := targets[channel]
	if !ok {
		return provider, channel
	}
	logging.Info().
		Str("provider", provider).
		Str("channel", channel).
		Str("target_provider", target.Provider).
		Str("target_channel", target.Channel).
		Msg("Channel link redirect")
	metrics.LinkRedirects.Inc()
	return target.Provider, target.Channel
}

// LoadLinks reads the alias table from a YAML file of the form:
//
//	links:
//	  <provider>:
//	    <channel>: {provider: <target>, channel: <target>}
//
// An empty path yields an empty table.
func LoadLinks(path string) (Links, error) {
	if path == "" {
		return Links{}, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("catalog: load links %q: %w", path, err)
	}

	var out struct {
		Links Links `koanf:"links"`
	}
	if err := k.Unmarshal("", &out); err != nil {
		return nil, fmt.Errorf("catalog: parse links %q: %w", path, err)
	}
	if out.Links == nil {
		out.Links = Links{}
	}
	return out.Links, nil
}
