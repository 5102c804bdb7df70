// AVTV - Broadcast and VOD Catalog Query Service
// Copyright (C) 2007-2015, Intelibo Ltd
// https://github.com/alekmarinov/avtv

package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		command string
		params  []string
	}{
		{
			name:    "simple command with params",
			path:    "channels/bulsat",
			command: "channels",
			params:  []string{"bulsat"},
		},
		{
			name:    "leading separator",
			path:    "/programs/bulsat/btv",
			command: "programs",
			params:  []string{"bulsat", "btv"},
		},
		{
			name:    "trailing separator stripped",
			path:    "vod/bulsat/",
			command: "vod",
			params:  []string{"bulsat"},
		},
		{
			name:    "repeated separators collapse",
			path:    "a//b/",
			command: "a",
			params:  []string{"b"},
		},
		{
			name:    "empty path",
			path:    "",
			command: "",
			params:  nil,
		},
		{
			name:    "separators only",
			path:    "///",
			command: "",
			params:  nil,
		},
		{
			name:    "parameter order preserved",
			path:    "vod/p/g/i",
			command: "vod",
			params:  []string{"p", "g", "i"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ParseQuery(tt.path, url.Values{})
			assert.Equal(t, tt.command, q.Command)
			assert.Equal(t, tt.params, q.Params)
			assert.Empty(t, q.Attrs)
		})
	}
}

func TestParseQueryAttrs(t *testing.T) {
	values := url.Values{"attr": []string{"genre,year"}}
	q := ParseQuery("channels/bulsat", values)
	assert.Equal(t, []string{"genre", "year"}, q.Attrs)

	q = ParseQuery("channels/bulsat", url.Values{})
	assert.Empty(t, q.Attrs)
}

func TestIntValue(t *testing.T) {
	assert.Equal(t, 1, intValue("", 1))
	assert.Equal(t, -2, intValue("-2", 1))
	assert.Equal(t, 1, intValue("junk", 1))
}

func TestInt64Value(t *testing.T) {
	assert.Nil(t, int64Value(""))
	assert.Nil(t, int64Value("junk"))
	if v := int64Value("1000"); assert.NotNil(t, v) {
		assert.Equal(t, int64(1000), *v)
	}
}
