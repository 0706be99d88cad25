package content_test

import (
	"regexp"
	"testing"

	"github.com/galactis/web/internal/domain/content"
	"github.com/galactis/web/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestFallback(t *testing.T) {
	Convey("Given the fallback posts", t, func() {
		posts := content.Fallback()

		Convey("Then there are exactly three complete posts", func() {
			So(posts, ShouldHaveLength, 3)
			for _, p := range posts {
				So(p.Title, ShouldNotBeEmpty)
				So(p.Excerpt, ShouldNotBeEmpty)
				So(slugPattern.MatchString(p.Slug), ShouldBeTrue)
			}
			So(posts[0].Slug, ShouldEqual, "the-five-essential-pillars-of-technology-value-optimization")
			So(posts[2].PublishedDate, ShouldEqual, "August 2025")
		})

		Convey("Then callers cannot mutate the built-in set", func() {
			posts[0].Title = "changed"
			So(content.Fallback()[0].Title, ShouldNotEqual, "changed")
		})

		Convey("Then a fallback post can be found by slug", func() {
			p, ok := content.FallbackBySlug("closing-the-loop-on-network-automation")
			So(ok, ShouldBeTrue)
			So(p.Title, ShouldEqual, "Closing the Loop on Network Automation")

			_, ok = content.FallbackBySlug("nope")
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given OrFallback", t, func() {
		So(content.OrFallback(nil), ShouldHaveLength, 3)
		live := []model.BlogPost{{Slug: "real"}}
		So(content.OrFallback(live), ShouldResemble, live)
	})
}

func TestHelpers(t *testing.T) {
	Convey("Given GenerateSlug", t, func() {
		So(content.GenerateSlug("Hello, World!"), ShouldEqual, "hello-world")
		So(content.GenerateSlug("  AI & Ops: 2025  "), ShouldEqual, "ai-ops-2025")
		So(content.GenerateSlug("---"), ShouldEqual, "")
	})

	Convey("Given ReadTime", t, func() {
		So(content.ReadTime(""), ShouldEqual, 0)
		So(content.ReadTime("one two three"), ShouldEqual, 1)

		words := make([]byte, 0, 201*2)
		for i := 0; i < 201; i++ {
			words = append(words, 'w', ' ')
		}
		So(content.ReadTime(string(words)), ShouldEqual, 2)
	})

	Convey("Given FormatDate", t, func() {
		So(content.FormatDate("2025-10-03"), ShouldEqual, "October 3, 2025")
		So(content.FormatDate("2025-01-15T08:00:00Z"), ShouldEqual, "January 15, 2025")
		So(content.FormatDate("October 2025"), ShouldEqual, "October 2025")
	})
}
