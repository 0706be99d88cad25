package intake_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"

	"github.com/galactis/web/internal/domain/intake"
	"github.com/galactis/web/internal/domain/model"
	"github.com/galactis/web/internal/domain/ratelimit"
	"github.com/galactis/web/internal/domain/validation"
	. "github.com/smartystreets/goconvey/convey"
)

type stubCRM struct {
	mu       sync.Mutex
	leads    []model.Lead
	delivery model.Delivery
	err      error
	panicMsg string
	block    chan struct{}
}

func (s *stubCRM) Submit(_ context.Context, lead model.Lead) (model.Delivery, error) {
	s.mu.Lock()
	s.leads = append(s.leads, lead)
	s.mu.Unlock()
	if s.block != nil {
		<-s.block
	}
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.delivery, s.err
}

func (s *stubCRM) received() []model.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Lead(nil), s.leads...)
}

func contact() model.GeneralContact {
	return model.GeneralContact{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Company: "Analytical Engines",
		Message: "Hello",
	}
}

func partner() model.PartnerApplication {
	return model.PartnerApplication{
		Intent:          model.PartnerIntent,
		Name:            "Grace Hopper",
		Email:           "grace@example.com",
		Company:         "Compilers Inc",
		PartnerType:     model.PartnerServiceProvider,
		Regions:         "EMEA, APAC",
		BusinessSummary: "Managed services",
	}
}

func TestSubmitContact(t *testing.T) {
	Convey("Given a forwarder with a working CRM", t, func() {
		ctx := context.Background()
		now := time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)
		fclock := fakeclock.NewFakeClock(now)
		crm := &stubCRM{delivery: model.Delivery{OK: true, ContactID: "c-1"}}
		limiter := ratelimit.New(ratelimit.WithClock(fclock))
		f := intake.New(crm, limiter,
			intake.WithClock(fclock),
			intake.WithIDGenerator(func() string { return "sub-1" }),
		)

		Convey("When a valid contact is submitted", func() {
			out := f.SubmitContact(ctx, "1.2.3.4", contact())

			Convey("Then it is accepted and forwarded", func() {
				So(out.OK(), ShouldBeTrue)
				So(out.Message, ShouldEqual, "Thank you! We'll contact you soon.")
				So(out.SubmissionID, ShouldEqual, "sub-1")

				leads := crm.received()
				So(leads, ShouldHaveLength, 1)
				So(leads[0].Source, ShouldEqual, "website")
				So(leads[0].Phone, ShouldEqual, "")
				So(leads[0].Timestamp, ShouldEqual, now)
			})
		})

		Convey("When a source and phone are given", func() {
			c := contact()
			c.Source = "pricing-page"
			c.Phone = "+1 555"
			f.SubmitContact(ctx, "1.2.3.4", c)

			Convey("Then they are passed through", func() {
				lead := crm.received()[0]
				So(lead.Source, ShouldEqual, "pricing-page")
				So(lead.Phone, ShouldEqual, "+1 555")
			})
		})

		Convey("When the email is malformed", func() {
			c := contact()
			c.Email = "nope"
			out := f.SubmitContact(ctx, "1.2.3.4", c)

			Convey("Then it is rejected without spending budget or calling the CRM", func() {
				So(out.OK(), ShouldBeFalse)
				So(errors.Is(out.Err, validation.ErrInvalidEmail), ShouldBeTrue)
				So(intake.Reason(out.Err), ShouldEqual, "Invalid email format")
				So(crm.received(), ShouldBeEmpty)
				So(limiter.Len(), ShouldEqual, 0)
			})
		})

		Convey("When a client submits eleven times", func() {
			for i := 0; i < 10; i++ {
				So(f.SubmitContact(ctx, "1.2.3.4", contact()).OK(), ShouldBeTrue)
			}
			out := f.SubmitContact(ctx, "1.2.3.4", contact())

			Convey("Then the eleventh is rate limited", func() {
				So(errors.Is(out.Err, intake.ErrRateLimited), ShouldBeTrue)
				So(intake.Reason(out.Err), ShouldEqual, "Too many requests. Please try again later.")
				So(crm.received(), ShouldHaveLength, 10)
			})

			Convey("Then the partner form still has budget", func() {
				So(f.SubmitPartner(ctx, "1.2.3.4", partner()).OK(), ShouldBeTrue)
			})

			Convey("Then a new window admits the client again", func() {
				fclock.Increment(time.Hour + time.Second)
				So(f.SubmitContact(ctx, "1.2.3.4", contact()).OK(), ShouldBeTrue)
			})
		})

		Convey("When no client identifier is known", func() {
			f.SubmitContact(ctx, "", contact())

			Convey("Then the shared unknown bucket is charged", func() {
				_, ok := limiter.Get("contact:unknown")
				So(ok, ShouldBeTrue)
			})
		})
	})
}

func TestCRMFailureIsolation(t *testing.T) {
	Convey("Given CRMs that fail in different ways", t, func() {
		ctx := context.Background()
		limiter := ratelimit.New()

		cases := []struct {
			name string
			crm  *stubCRM
		}{
			{"error", &stubCRM{err: errors.New("connection refused")}},
			{"rejected", &stubCRM{delivery: model.Delivery{OK: false, Error: "HubSpot API error: 502"}}},
			{"panic", &stubCRM{panicMsg: "boom"}},
		}

		for _, tc := range cases {
			name := tc.name
			f := intake.New(tc.crm, limiter)

			Convey("When the CRM fails with "+name, func() {
				contactOut := f.SubmitContact(ctx, "c-"+name, contact())
				partnerOut := f.SubmitPartner(ctx, "p-"+name, partner())

				Convey("Then the caller still sees success", func() {
					So(contactOut.OK(), ShouldBeTrue)
					So(contactOut.Message, ShouldEqual, intake.MessageContactThanks)
					So(partnerOut.OK(), ShouldBeTrue)
					So(partnerOut.Message, ShouldEqual, intake.MessagePartnerThanks)
				})
			})
		}

		Convey("When no CRM is wired", func() {
			f := intake.New(nil, limiter)
			So(f.SubmitContact(ctx, "nil-crm", contact()).OK(), ShouldBeTrue)
		})
	})

	Convey("Given a CRM that never answers", t, func() {
		crm := &stubCRM{block: make(chan struct{})}
		f := intake.New(crm, ratelimit.New(), intake.WithCRMTimeout(20*time.Millisecond))

		Convey("When a contact is submitted", func() {
			start := time.Now()
			out := f.SubmitContact(context.Background(), "1.2.3.4", contact())

			Convey("Then the call is abandoned at the timeout and still succeeds", func() {
				So(out.OK(), ShouldBeTrue)
				So(time.Since(start), ShouldBeLessThan, 2*time.Second)
			})
		})

		Reset(func() { close(crm.block) })
	})
}

func TestSubmitPartner(t *testing.T) {
	Convey("Given a forwarder", t, func() {
		ctx := context.Background()
		crm := &stubCRM{delivery: model.Delivery{OK: true}}
		f := intake.New(crm, ratelimit.New())

		Convey("When a partner application is submitted without optional fields", func() {
			out := f.SubmitPartner(ctx, "1.2.3.4", partner())

			Convey("Then the lead carries the composed message and source", func() {
				So(out.OK(), ShouldBeTrue)
				So(out.SubmissionID, ShouldNotBeEmpty)

				lead := crm.received()[0]
				So(lead.Message, ShouldEqual,
					"Partner Application - Type: Service Provider\nRegions: EMEA, APAC\nBusiness Summary: Managed services\nWebsite: N/A\nAdditional Info: N/A")
				So(lead.Source, ShouldEqual, "partner_application_service_provider")
				So(lead.Phone, ShouldEqual, "")
			})
		})

		Convey("When website and additional info are present", func() {
			p := partner()
			p.Website = "https://example.com"
			p.AdditionalInfo = "Call after 5"
			f.SubmitPartner(ctx, "1.2.3.4", p)

			Convey("Then they replace N/A", func() {
				So(crm.received()[0].Message, ShouldEndWith, "Website: https://example.com\nAdditional Info: Call after 5")
			})
		})

		Convey("When the partner type is unknown", func() {
			p := partner()
			p.PartnerType = "Integrator"
			out := f.SubmitPartner(ctx, "1.2.3.4", p)

			Convey("Then it is rejected", func() {
				So(errors.Is(out.Err, validation.ErrInvalidPartnerType), ShouldBeTrue)
				So(crm.received(), ShouldBeEmpty)
			})
		})
	})
}

func TestPartnerSource(t *testing.T) {
	Convey("Given partner types", t, func() {
		So(intake.PartnerSource("Reseller"), ShouldEqual, "partner_application_reseller")
		So(intake.PartnerSource("Service  Provider"), ShouldEqual, "partner_application_service_provider")
		So(intake.PartnerSource("Build"), ShouldEqual, "partner_application_build")
	})
}
