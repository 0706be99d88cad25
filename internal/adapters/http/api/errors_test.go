package api_test

import (
	"errors"
	"testing"

	"github.com/galactis/web/internal/adapters/http/api"
	. "github.com/smartystreets/goconvey/convey"
)

func TestErrors(t *testing.T) {
	Convey("Given op-scoped errors", t, func() {
		cause := errors.New("unexpected EOF")

		Convey("When wrapping with a kind", func() {
			err := api.WrapKind("api.post_contact", api.ErrBadRequest, cause)

			Convey("Then both kind and cause match", func() {
				So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
				So(errors.Is(err, cause), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "api.post_contact: bad request: unexpected EOF")
			})
		})

		Convey("When creating a bare kind", func() {
			err := api.NewKind("api.revalidate", api.ErrUnauthorized)
			So(errors.Is(err, api.ErrUnauthorized), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.revalidate: unauthorized")
		})

		Convey("When wrapping nil", func() {
			So(api.Wrap("api.x", nil), ShouldBeNil)
			So(api.Wrap("api.x", cause).Error(), ShouldEqual, "api.x: unexpected EOF")
		})
	})
}
