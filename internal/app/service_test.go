package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"

	service "github.com/galactis/web/internal/app"
	"github.com/galactis/web/internal/config"
	"github.com/galactis/web/internal/domain/model"
	"github.com/galactis/web/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type recordingCRM struct {
	mu    sync.Mutex
	leads []model.Lead
}

func (r *recordingCRM) Submit(_ context.Context, lead model.Lead) (model.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads = append(r.leads, lead)
	return model.Delivery{OK: true}, nil
}

func contact() model.GeneralContact {
	return model.GeneralContact{Name: "Ada", Email: "ada@example.com", Company: "Engines", Message: "Hi"}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["rateLimit"], ShouldEqual, 10)
			So(stats["rateWindowSeconds"], ShouldEqual, 3600)
			So(stats["crmConfigured"], ShouldEqual, false)
			So(stats["cmsConfigured"], ShouldEqual, false)
		})

		Convey("Then reads degrade without a CMS", func() {
			So(svc.ListPosts(context.Background(), 10), ShouldBeEmpty)
			So(svc.Slugs(context.Background()), ShouldBeEmpty)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithRateLimit(3, time.Minute),
			service.WithCRMTimeout(time.Second),
			service.WithContentTTL(time.Minute),
			service.WithLogger(logger.NewNop()),
		)

		Convey("Then they are applied", func() {
			So(svc.GetStats()["rateLimit"], ShouldEqual, 3)
			So(svc.Limiter().Window(), ShouldEqual, time.Minute)
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		So(svc.Start(context.Background()), ShouldBeNil)
		So(svc.Start(context.Background()), ShouldBeNil)

		So(svc.GetStats()["started"], ShouldEqual, true)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
			})

			Convey("And stopping again is harmless", func() {
				So(svc.Stop, ShouldNotPanic)
			})

			Convey("And it can be restarted", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
				svc.Stop()
			})
		})
	})
}

func TestService_Submissions(t *testing.T) {
	Convey("Given a service with a fake clock and a recording CRM", t, func() {
		fclock := fakeclock.NewFakeClock(time.Now())
		crm := &recordingCRM{}
		svc := service.New(
			service.WithClock(fclock),
			service.WithCRM(crm),
			service.WithRateLimit(2, time.Minute),
		)
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When a client exhausts its budget", func() {
			So(svc.SubmitContact(ctx, "1.1.1.1", contact()).OK(), ShouldBeTrue)
			So(svc.SubmitContact(ctx, "1.1.1.1", contact()).OK(), ShouldBeTrue)
			So(svc.SubmitContact(ctx, "1.1.1.1", contact()).OK(), ShouldBeFalse)

			Convey("Then the sweep clears the records after the window", func() {
				So(svc.GetStats()["rateLimitRecords"], ShouldEqual, 1)
				fclock.WaitForWatcherAndIncrement(time.Minute + time.Second)

				deadline := time.Now().Add(2 * time.Second)
				for svc.Limiter().Len() > 0 && time.Now().Before(deadline) {
					time.Sleep(5 * time.Millisecond)
				}
				So(svc.Limiter().Len(), ShouldEqual, 0)
				So(svc.SubmitContact(ctx, "1.1.1.1", contact()).OK(), ShouldBeTrue)
			})
		})
	})
}

func TestOptionsFromConfig(t *testing.T) {
	Convey("Given config pointing at fake HubSpot and Hygraph servers", t, func() {
		var hubspotPath string
		hubspotSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hubspotPath = r.URL.Path
			_, _ = w.Write([]byte(`{"inlineMessage":"ok"}`))
		}))
		defer hubspotSrv.Close()

		var hygraphAuth string
		hygraphSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hygraphAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"data":{"posts":[{"id":"1","title":"Live","slug":"live"}]}}`))
		}))
		defer hygraphSrv.Close()

		cfg := config.New()
		cfg.HubSpotPortalID = "42"
		cfg.HubSpotFormID = "form-1"
		cfg.HubSpotBaseURL = hubspotSrv.URL
		cfg.HygraphEndpoint = hygraphSrv.URL
		cfg.HygraphToken = "tok"

		svc := service.New(service.OptionsFromConfig(cfg, logger.NewNop())...)
		ctx := context.Background()

		Convey("Then both collaborators report configured", func() {
			stats := svc.GetStats()
			So(stats["crmConfigured"], ShouldEqual, true)
			So(stats["cmsConfigured"], ShouldEqual, true)
		})

		Convey("When a contact is submitted", func() {
			So(svc.SubmitContact(ctx, "9.9.9.9", contact()).OK(), ShouldBeTrue)
			So(hubspotPath, ShouldEqual, "/submissions/v3/integration/submit/42/form-1")
		})

		Convey("When posts are listed", func() {
			posts := svc.ListPosts(ctx, 10)
			So(posts, ShouldHaveLength, 1)
			So(strings.HasPrefix(hygraphAuth, "Bearer "), ShouldBeTrue)

			Convey("Then invalidation empties the cache", func() {
				So(svc.GetStats()["contentCachedItems"], ShouldEqual, 1)
				svc.Invalidate()
				So(svc.GetStats()["contentCachedItems"], ShouldEqual, 0)
			})
		})
	})
}
