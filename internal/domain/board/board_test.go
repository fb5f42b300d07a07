package board_test

import (
	"context"
	"testing"

	"github.com/okian/benchboard/internal/domain/board"
	"github.com/okian/benchboard/internal/domain/filter"
	"github.com/okian/benchboard/internal/domain/score"
	. "github.com/smartystreets/goconvey/convey"
)

type mapResolver struct {
	names map[string]string
	calls int
}

func (m *mapResolver) RealName(_ context.Context, account string) (string, bool) {
	m.calls++
	name, ok := m.names[account]
	return name, ok
}

func fixture() []score.Score {
	return []score.Score{
		score.New("foo", "echo foo", 1.0, "hash", "lang"),
		score.New("bar", "echo bar", 2.0, "hash", "lang"),
		score.New("baz", "echo baz", 3.0, "hash", "lang"),
	}
}

func TestBoardGet(t *testing.T) {
	Convey("Given a board of three scores", t, func() {
		b := board.New(fixture())

		Convey("Get without a collection returns everything", func() {
			So(b.Get(nil), ShouldResemble, fixture())
		})

		Convey("Get with a player filter returns only that player", func() {
			c := filter.NewBuilder().Add(filter.PlayerAllow("foo")).Build()
			scores := b.Get(c)
			So(scores, ShouldHaveLength, 1)
			So(scores[0].Name, ShouldEqual, "foo")
		})

		Convey("Get hands out a copy", func() {
			scores := b.Get(nil)
			scores[0].Name = "mutated"
			So(b.Get(nil)[0].Name, ShouldEqual, "foo")
		})
	})
}

func TestBoardFilter(t *testing.T) {
	Convey("Given a board", t, func() {
		b := board.New(fixture())

		Convey("Filter returns a narrower board and leaves the original alone", func() {
			narrowed := b.Filter(filter.NewBuilder().Add(filter.Bottom(2)))
			So(narrowed.Len(), ShouldEqual, 2)
			So(narrowed.Get(nil)[0].Name, ShouldEqual, "bar")
			So(b.Len(), ShouldEqual, 3)
		})
	})
}

func TestBoardDisplay(t *testing.T) {
	Convey("Given a board of three scores", t, func() {
		b := board.New(fixture())

		Convey("Displaying one player renders a single numbered line", func() {
			c := filter.NewBuilder().
				Add(filter.PlayerAllow("foo")).
				Add(filter.SortBy(filter.Time)).
				Build()
			So(b.Display(c), ShouldEqual, "1. foo ran echo foo (lang) in 1.000ns\n")
		})

		Convey("Displaying everything numbers from one", func() {
			So(b.Display(nil), ShouldEqual,
				"1. foo ran echo foo (lang) in 1.000ns\n"+
					"2. bar ran echo bar (lang) in 2.000ns\n"+
					"3. baz ran echo baz (lang) in 3.000ns\n")
		})

		Convey("An empty result renders an empty string", func() {
			c := filter.NewBuilder().Add(filter.PlayerAllow("nobody")).Build()
			So(b.Display(c), ShouldEqual, "")
		})
	})
}

func TestBoardDisplayWithRealName(t *testing.T) {
	Convey("Given a board without a resolver", t, func() {
		b := board.New(fixture())
		c := filter.NewBuilder().Add(filter.PlayerAllow("foo")).Build()

		Convey("The account name is used", func() {
			So(b.DisplayWithRealName(context.Background(), c), ShouldEqual, "1. foo ran echo foo (lang) in 1.000ns\n")
		})
	})

	Convey("Given a board with a resolver", t, func() {
		r := &mapResolver{names: map[string]string{"foo": "Foo Fighter", "bar": ""}}
		scores := append(fixture(), score.New("foo", "echo again", 4.0, "hash", "lang"))
		b := board.New(scores, board.WithResolver(r))

		Convey("Known accounts are replaced and failures fall back", func() {
			out := b.DisplayWithRealName(context.Background(), nil)
			So(out, ShouldEqual,
				"1. Foo Fighter ran echo foo (lang) in 1.000ns\n"+
					"2. bar ran echo bar (lang) in 2.000ns\n"+
					"3. baz ran echo baz (lang) in 3.000ns\n"+
					"4. Foo Fighter ran echo again (lang) in 4.000ns\n")
		})

		Convey("Each account is looked up once per rendering", func() {
			_ = b.DisplayWithRealName(context.Background(), nil)
			So(r.calls, ShouldEqual, 3)
		})

		Convey("Filtered boards keep the resolver", func() {
			narrowed := b.Filter(filter.NewBuilder().Add(filter.Top(1)))
			So(narrowed.DisplayWithRealName(context.Background(), nil), ShouldEqual,
				"1. Foo Fighter ran echo foo (lang) in 1.000ns\n")
		})
	})
}
