package api

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorKinds(t *testing.T) {
	Convey("Given classified errors", t, func() {
		cause := errors.New("boom")

		Convey("WrapKind matches both kind and cause", func() {
			err := WrapKind("api.op", ErrBadRequest, cause)
			So(errors.Is(err, ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: bad request: boom")
		})

		Convey("Wrap is internal", func() {
			So(errors.Is(Wrap("api.op", cause), ErrInternal), ShouldBeTrue)
		})

		Convey("NewKind has no cause", func() {
			err := NewKind("api.op", ErrBadRequest)
			So(err.Error(), ShouldEqual, "api.op: bad request")
		})
	})
}

func TestParseBoardRequest(t *testing.T) {
	Convey("Given raw query strings", t, func() {
		Convey("Reserved keys are read and filters keep their order", func() {
			req, err := parseBoardRequest("sort=time&all&player=b%2Ca&limit=5&real_names=false&bottom=2", 10)
			So(err, ShouldBeNil)
			So(req.query.All, ShouldBeTrue)
			So(req.query.Limit, ShouldEqual, 5)
			So(req.realNames, ShouldBeFalse)
			So(req.filters.Build().String(), ShouldEqual, "sort(time) | player[b,a] | bottom(2)")
		})

		Convey("An empty query yields an empty builder", func() {
			req, err := parseBoardRequest("", 10)
			So(err, ShouldBeNil)
			So(req.filters.Len(), ShouldEqual, 0)
			So(req.query.Limit, ShouldEqual, 0)
		})

		Convey("Bad escapes are rejected", func() {
			_, err := parseBoardRequest("player=%zz", 10)
			So(err, ShouldNotBeNil)
		})
	})
}
