package services

import (
	"fmt"

	"extend-xmlrpc/config"
	"extend-xmlrpc/xmlrpc"
)

// SiteOptionsFromConfig copies the site section of the app config.
func SiteOptionsFromConfig(cfg config.AppConfig) SiteOptions {
	return SiteOptions{
		URL:                cfg.Site.URL,
		Timezone:           cfg.Site.Timezone,
		PermalinkStructure: cfg.Site.PermalinkStructure,
		PostsPerPage:       cfg.Site.PostsPerPage,
		CoauthorsEnabled:   cfg.XMLRPC.CoauthorsEnabled,
	}
}

// NewHandlers builds one GetPostsHandler per configured method.
func NewHandlers(cfg config.XMLRPCConfig, host Host) ([]*GetPostsHandler, error) {
	seen := make(map[string]bool, len(cfg.Methods))
	handlers := make([]*GetPostsHandler, 0, len(cfg.Methods))
	for _, m := range cfg.Methods {
		if m.Name == "" {
			return nil, fmt.Errorf("xmlrpc method with variant %q has no name", m.Variant)
		}
		if seen[m.Name] {
			return nil, fmt.Errorf("xmlrpc method %q configured twice", m.Name)
		}
		seen[m.Name] = true

		variant, err := VariantByName(m.Variant, cfg.PublicationTaxonomy)
		if err != nil {
			return nil, fmt.Errorf("xmlrpc method %q: %w", m.Name, err)
		}
		handlers = append(handlers, NewGetPostsHandler(m.Name, host, variant))
	}
	return handlers, nil
}

// MethodFilters returns the Register filters of the configured handlers.
func MethodFilters(cfg config.XMLRPCConfig, host Host) ([]xmlrpc.MethodsFilter, error) {
	handlers, err := NewHandlers(cfg, host)
	if err != nil {
		return nil, err
	}
	filters := make([]xmlrpc.MethodsFilter, 0, len(handlers))
	for _, h := range handlers {
		filters = append(filters, h.Register)
	}
	return filters, nil
}
