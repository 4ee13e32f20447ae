package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"extend-xmlrpc/config"
	"extend-xmlrpc/xmlrpc"
)

func TestMethodFilters(t *testing.T) {
	cfg := config.XMLRPCConfig{Methods: []config.MethodConfig{
		{Name: "bdn.getPosts", Variant: "bdn"},
		{Name: "my.getPosts", Variant: "my"},
	}}
	filters, err := MethodFilters(cfg, newFakeHost())
	require.NoError(t, err)

	server := xmlrpc.NewServer(filters...)
	assert.Equal(t, []string{"bdn.getPosts", "demo.sayHello", "my.getPosts", "system.listMethods"}, server.MethodNames())
}

func TestNewHandlersRejectsBadConfig(t *testing.T) {
	tests := map[string][]config.MethodConfig{
		"unknown variant": {{Name: "x.getPosts", Variant: "rss"}},
		"missing name":    {{Variant: "bdn"}},
		"duplicate":       {{Name: "a", Variant: "bdn"}, {Name: "a", Variant: "my"}},
	}
	for name, methods := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewHandlers(config.XMLRPCConfig{Methods: methods}, newFakeHost())
			assert.Error(t, err)
		})
	}
}

func TestSiteOptionsFromConfig(t *testing.T) {
	cfg := config.AppConfig{
		Site: config.SiteConfig{
			URL:                "https://example.com",
			Timezone:           "Asia/Seoul",
			PermalinkStructure: "/%postname%/",
			PostsPerPage:       15,
		},
		XMLRPC: config.XMLRPCConfig{CoauthorsEnabled: true},
	}
	assert.Equal(t, SiteOptions{
		URL:                "https://example.com",
		Timezone:           "Asia/Seoul",
		PermalinkStructure: "/%postname%/",
		PostsPerPage:       15,
		CoauthorsEnabled:   true,
	}, SiteOptionsFromConfig(cfg))
}
