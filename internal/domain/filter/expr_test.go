package filter_test

import (
	"errors"
	"testing"

	"github.com/okian/benchboard/internal/domain/filter"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseSortColumn(t *testing.T) {
	Convey("Given sort column aliases", t, func() {
		Convey("Aliases are case-insensitive", func() {
			a, err := filter.ParseSortColumn("Players")
			So(err, ShouldBeNil)
			b, err := filter.ParseSortColumn("PLAYER")
			So(err, ShouldBeNil)
			So(a, ShouldEqual, b)
			So(a, ShouldEqual, filter.PlayerName)
		})

		Convey("Every alias maps to its column", func() {
			expected := []struct {
				alias  string
				column filter.SortColumn
			}{
				{"name", filter.PlayerName},
				{"names", filter.PlayerName},
				{"binary", filter.Binary},
				{"Binaries", filter.Binary},
				{"time", filter.Time},
				{"TIMES", filter.Time},
				{"language", filter.Language},
				{"languages", filter.Language},
			}
			for _, e := range expected {
				c, err := filter.ParseSortColumn(e.alias)
				So(err, ShouldBeNil)
				So(c, ShouldEqual, e.column)
			}
		})

		Convey("Unknown text fails with the offending text", func() {
			_, err := filter.ParseSortColumn("bogus")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, filter.ErrInvalidSortColumn), ShouldBeTrue)

			var colErr *filter.InvalidSortColumnError
			So(errors.As(err, &colErr), ShouldBeTrue)
			So(colErr.Text, ShouldEqual, "bogus")
			So(err.Error(), ShouldContainSubstring, `"bogus"`)
		})

		Convey("Surrounding whitespace is not an alias", func() {
			_, err := filter.ParseSortColumn(" player ")
			So(errors.Is(err, filter.ErrInvalidSortColumn), ShouldBeTrue)
		})

		Convey("Expressions trim their value before parsing the column", func() {
			f, err := filter.ParseExpr("sort", " player ")
			So(err, ShouldBeNil)
			So(f.Column(), ShouldEqual, filter.PlayerName)
		})
	})
}

func TestParseExpr(t *testing.T) {
	Convey("Given filter expressions", t, func() {
		Convey("Counts parse into limits", func() {
			f, err := filter.ParseExpr("top", "5")
			So(err, ShouldBeNil)
			So(f.Kind(), ShouldEqual, filter.KindTop)
			So(f.N(), ShouldEqual, 5)

			f, err = filter.ParseAssignment("bottom=3")
			So(err, ShouldBeNil)
			So(f.Kind(), ShouldEqual, filter.KindBottom)
			So(f.N(), ShouldEqual, 3)
		})

		Convey("Lists are split on commas and trimmed", func() {
			f, err := filter.ParseExpr("players", " alice, bob ,")
			So(err, ShouldBeNil)
			So(f.Kind(), ShouldEqual, filter.KindPlayerAllow)
			So(f.Values(), ShouldResemble, []string{"alice", "bob"})

			f, err = filter.ParseExpr("binary", "./a.out")
			So(err, ShouldBeNil)
			So(f.Kind(), ShouldEqual, filter.KindBinaryAllow)

			f, err = filter.ParseExpr("language", "go")
			So(err, ShouldBeNil)
			So(f.Kind(), ShouldEqual, filter.KindLanguageAllow)
		})

		Convey("Unique and sort take a field name", func() {
			f, err := filter.ParseExpr("unique", "binaries")
			So(err, ShouldBeNil)
			So(f.Kind(), ShouldEqual, filter.KindUniqueBinaries)

			f, err = filter.ParseExpr("sort", "Time")
			So(err, ShouldBeNil)
			So(f.Kind(), ShouldEqual, filter.KindSortBy)
			So(f.Column(), ShouldEqual, filter.Time)
		})

		Convey("Bad input is rejected", func() {
			_, err := filter.ParseExpr("top", "-1")
			So(errors.Is(err, filter.ErrInvalidFilter), ShouldBeTrue)
			_, err = filter.ParseExpr("top", "many")
			So(errors.Is(err, filter.ErrInvalidFilter), ShouldBeTrue)
			_, err = filter.ParseExpr("player", " , ")
			So(errors.Is(err, filter.ErrInvalidFilter), ShouldBeTrue)
			_, err = filter.ParseExpr("unique", "hashes")
			So(errors.Is(err, filter.ErrInvalidFilter), ShouldBeTrue)
			_, err = filter.ParseExpr("colour", "red")
			So(errors.Is(err, filter.ErrInvalidFilter), ShouldBeTrue)
			_, err = filter.ParseExpr("sort", "bogus")
			So(errors.Is(err, filter.ErrInvalidSortColumn), ShouldBeTrue)
			_, err = filter.ParseAssignment("top")
			So(errors.Is(err, filter.ErrInvalidFilter), ShouldBeTrue)
		})
	})
}

func TestParsePairs(t *testing.T) {
	Convey("Given ordered pairs", t, func() {
		pairs := []filter.Pair{
			{Key: "player", Value: "a"},
			{Key: "top", Value: "5"},
			{Key: "sort", Value: "time"},
			{Key: "player", Value: "b"},
			{Key: "bottom", Value: "2"},
		}

		Convey("They are staged through the builder rules in order", func() {
			b, err := filter.ParsePairs(pairs)
			So(err, ShouldBeNil)
			So(b.Build().String(), ShouldEqual, "sort(time) | player[b,a] | bottom(2)")
		})

		Convey("The first bad pair aborts", func() {
			_, err := filter.ParsePairs(append(pairs, filter.Pair{Key: "sort", Value: "nope"}))
			So(err, ShouldNotBeNil)
		})
	})
}
