package service

import (
	"github.com/galactis/web/internal/adapters/cms/hygraph"
	"github.com/galactis/web/internal/adapters/crm/hubspot"
	"github.com/galactis/web/internal/config"
	"github.com/galactis/web/pkg/logger"
)

// OptionsFromConfig builds the HubSpot and Hygraph clients described by cfg
// and returns the options that wire them into a Service.
func OptionsFromConfig(cfg *config.Config, lg logger.Logger) []Option {
	if lg == nil {
		lg = logger.NewNop()
	}

	crm := hubspot.New(cfg.HubSpotPortalID, cfg.HubSpotFormID,
		hubspot.WithBaseURL(cfg.HubSpotBaseURL),
		hubspot.WithSiteURL(cfg.SiteURL),
		hubspot.WithSubscriptionTypeID(cfg.HubSpotSubscriptionTypeID),
		hubspot.WithDevelopment(cfg.IsDevelopment()),
		hubspot.WithLogger(lg.Named("hubspot")),
	)

	cms := hygraph.New(cfg.HygraphEndpoint,
		hygraph.WithToken(cfg.HygraphToken),
		hygraph.WithTimeout(cfg.HygraphTimeout),
		hygraph.WithLogger(lg.Named("hygraph")),
	)

	return []Option{
		WithLogger(lg),
		WithRateLimit(cfg.RateLimit, cfg.RateWindow),
		WithCRMTimeout(cfg.CRMTimeout),
		WithContentTTL(cfg.ContentTTL),
		WithCRM(crm),
		WithContentSource(cms),
	}
}
