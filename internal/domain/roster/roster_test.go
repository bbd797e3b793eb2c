package roster_test

import (
	"fmt"
	"testing"

	roster "github.com/mergington/activities/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRoster(t *testing.T) {
	Convey("Given a new roster", t, func() {
		Convey("When creating with default options", func() {
			r := roster.New()

			Convey("Then it should start empty", func() {
				So(r, ShouldNotBeNil)
				So(r.Len(), ShouldEqual, 0)
				So(r.Emails(), ShouldBeEmpty)
			})
		})

		Convey("When creating with a capacity hint", func() {
			r := roster.New(roster.WithCapacity(12))

			Convey("Then it should still start empty", func() {
				So(r.Len(), ShouldEqual, 0)
			})
		})

		Convey("When adding emails", func() {
			r := roster.New()

			Convey("And the email is new", func() {
				added := r.Add("michael@mergington.edu")

				Convey("Then it should be recorded", func() {
					So(added, ShouldBeTrue)
					So(r.Len(), ShouldEqual, 1)
					So(r.Contains("michael@mergington.edu"), ShouldBeTrue)
				})
			})

			Convey("And the email is already present", func() {
				r.Add("michael@mergington.edu")
				added := r.Add("michael@mergington.edu")

				Convey("Then the duplicate should be rejected", func() {
					So(added, ShouldBeFalse)
					So(r.Len(), ShouldEqual, 1)
				})
			})

			Convey("And several emails are added", func() {
				emails := []string{"a@mergington.edu", "b@mergington.edu", "c@mergington.edu"}
				for _, e := range emails {
					So(r.Add(e), ShouldBeTrue)
				}

				Convey("Then listing should preserve signup order", func() {
					So(r.Emails(), ShouldResemble, emails)
				})
			})
		})

		Convey("When removing emails", func() {
			r := roster.New()
			r.Add("a@mergington.edu")
			r.Add("b@mergington.edu")
			r.Add("c@mergington.edu")

			Convey("And the email is present", func() {
				removed := r.Remove("a@mergington.edu")

				Convey("Then exactly one occurrence should go away", func() {
					So(removed, ShouldBeTrue)
					So(r.Len(), ShouldEqual, 2)
					So(r.Contains("a@mergington.edu"), ShouldBeFalse)
				})

				Convey("Then the remaining entries should keep their relative order", func() {
					So(r.Emails(), ShouldResemble, []string{"b@mergington.edu", "c@mergington.edu"})
				})
			})

			Convey("And an interior email is removed", func() {
				r.Remove("b@mergington.edu")

				Convey("Then order should be preserved around the gap", func() {
					So(r.Emails(), ShouldResemble, []string{"a@mergington.edu", "c@mergington.edu"})
				})
			})

			Convey("And the email is absent", func() {
				removed := r.Remove("ghost@mergington.edu")

				Convey("Then nothing should change", func() {
					So(removed, ShouldBeFalse)
					So(r.Len(), ShouldEqual, 3)
				})
			})

			Convey("And a removed email is re-added", func() {
				r.Remove("b@mergington.edu")
				So(r.Add("b@mergington.edu"), ShouldBeTrue)

				Convey("Then it should land at the end of the order", func() {
					So(r.Emails(), ShouldResemble, []string{"a@mergington.edu", "c@mergington.edu", "b@mergington.edu"})
				})
			})
		})

		Convey("When the roster grows large", func() {
			r := roster.New(roster.WithCapacity(1000))
			for i := 0; i < 1000; i++ {
				So(r.Add(fmt.Sprintf("student-%d@mergington.edu", i)), ShouldBeTrue)
			}

			Convey("Then membership checks should stay correct", func() {
				So(r.Len(), ShouldEqual, 1000)
				So(r.Contains("student-0@mergington.edu"), ShouldBeTrue)
				So(r.Contains("student-999@mergington.edu"), ShouldBeTrue)
				So(r.Contains("student-1000@mergington.edu"), ShouldBeFalse)
			})
		})

		Convey("When mutating a copy returned by Emails", func() {
			r := roster.New()
			r.Add("a@mergington.edu")
			out := r.Emails()
			out[0] = "tampered@mergington.edu"

			Convey("Then the roster should be unaffected", func() {
				So(r.Emails()[0], ShouldEqual, "a@mergington.edu")
			})
		})
	})
}
