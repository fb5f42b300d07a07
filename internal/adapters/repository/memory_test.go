package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/benchboard/internal/config"
	"github.com/okian/benchboard/internal/domain/score"
)

func TestMemoryStore_Contract(t *testing.T) {
	testStoreContract(t, func(*testing.T) Store { return NewMemoryStore() })
}

func TestMemoryStore(t *testing.T) {
	Convey("Given a memory store", t, func() {
		ctx := context.Background()
		s := NewMemoryStore()

		Convey("Returned rows do not alias stored rows", func() {
			So(s.Insert(ctx, score.New("a", "x", 1, "h", "go")), ShouldBeNil)
			rows, err := s.All(ctx, 0)
			So(err, ShouldBeNil)
			rows[0].Name = "mallory"

			again, _ := s.All(ctx, 0)
			So(again[0].Name, ShouldEqual, "a")
		})

		Convey("Concurrent inserts are all kept", func() {
			var wg sync.WaitGroup
			for i := range 50 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = s.Insert(ctx, score.New("p", "cmd", float64(i), "h", "go"))
				}()
			}
			wg.Wait()

			n, err := s.Count(ctx)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 50)
			best, _ := s.BestPerPlayerAndCommand(ctx, 0)
			So(best, ShouldHaveLength, 1)
			So(best[0].TimeNS, ShouldEqual, 0)
		})
	})
}

func TestOpen(t *testing.T) {
	Convey("Given the store factory", t, func() {
		ctx := context.Background()

		Convey("The memory adapter is the default", func() {
			s, err := Open(ctx, config.Storage{})
			So(err, ShouldBeNil)
			So(s.Insert(ctx, score.New("a", "x", 1, "", "go")), ShouldBeNil)
			n, _ := s.Count(ctx)
			So(n, ShouldEqual, 1)
			So(s.Close(), ShouldBeNil)
		})

		Convey("Caller errors pass through the instrumented store unchanged", func() {
			s, err := Open(ctx, config.Storage{Adapter: config.AdapterMemory})
			So(err, ShouldBeNil)
			_, err = s.All(ctx, -1)
			So(errors.Is(err, ErrInvalidLimit), ShouldBeTrue)
		})

		Convey("Unknown adapters are rejected", func() {
			_, err := Open(ctx, config.Storage{Adapter: "mongo"})
			So(errors.Is(err, ErrUnknownDriver), ShouldBeTrue)
		})

		Convey("SQLite tables are validated", func() {
			_, err := Open(ctx, config.Storage{
				Adapter: config.AdapterSQLite,
				Table:   "scores; DROP TABLE x",
				SQLite:  config.SQLite{Path: t.TempDir() + "/bench.db"},
			})
			So(errors.Is(err, ErrInvalidTable), ShouldBeTrue)
		})
	})
}
