package config_test

import (
	"testing"
	"time"

	"github.com/galactis/web/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.RateLimit, convey.ShouldEqual, 10)
			convey.So(cfg.RateWindow, convey.ShouldEqual, time.Hour)
			convey.So(cfg.CRMTimeout, convey.ShouldEqual, 5*time.Second)
			convey.So(cfg.HubSpotBaseURL, convey.ShouldEqual, "https://api.hsforms.com")
			convey.So(cfg.HubSpotSubscriptionTypeID, convey.ShouldEqual, 999)
			convey.So(cfg.BlogPostLimit, convey.ShouldEqual, 10)
			convey.So(cfg.IsDevelopment(), convey.ShouldBeFalse)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
