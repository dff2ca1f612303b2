package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/courtside/internal/domain/model"
)

func snapshot(id string, savedAt time.Time) model.Snapshot {
	return model.Snapshot{
		MatchID:          id,
		Config:           model.MatchConfig{Sport: "volleyball", HasCourt: true},
		Points:           []model.Point{{ID: "p1", Team: model.SideA, Category: model.CategoryScored, PlayerID: "7"}},
		CompletedSets:    []model.Set{{ID: "s1", Number: 1, Score: model.SetScore{A: 25, B: 20}, Winner: model.SideA}},
		CurrentSetNumber: 2,
		TeamNames:        model.TeamNames{A: "Blue", B: "Red"},
		ChronoSeconds:    600,
		Roster:           []model.Player{{ID: "7", Name: "Ana"}, {ID: "9", Name: "Bo", Ghost: true}},
		SavedAt:          savedAt,
	}
}

// exerciseStore runs the shared contract against any Store.
func exerciseStore(open func() Store) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

	Convey("Saving and loading round trips the snapshot", func() {
		s := open()
		defer s.Close()
		want := snapshot("m1", base)
		So(s.Save(ctx, want), ShouldBeNil)

		got, err := s.Load(ctx, "m1")
		So(err, ShouldBeNil)
		So(got.Points, ShouldResemble, want.Points)
		So(got.CompletedSets, ShouldResemble, want.CompletedSets)
		So(got.Roster[1].Ghost, ShouldBeTrue)
		So(got.ChronoSeconds, ShouldEqual, 600)
		So(got.SavedAt.Equal(base), ShouldBeTrue)
	})

	Convey("Saving again replaces the snapshot", func() {
		s := open()
		defer s.Close()
		So(s.Save(ctx, snapshot("m1", base)), ShouldBeNil)
		next := snapshot("m1", base.Add(time.Minute))
		next.Finished = true
		So(s.Save(ctx, next), ShouldBeNil)

		got, err := s.Load(ctx, "m1")
		So(err, ShouldBeNil)
		So(got.Finished, ShouldBeTrue)
		list, err := s.List(ctx)
		So(err, ShouldBeNil)
		So(list, ShouldHaveLength, 1)
	})

	Convey("List orders by most recent save", func() {
		s := open()
		defer s.Close()
		So(s.Save(ctx, snapshot("old", base)), ShouldBeNil)
		So(s.Save(ctx, snapshot("new", base.Add(time.Hour))), ShouldBeNil)

		list, err := s.List(ctx)
		So(err, ShouldBeNil)
		So(list, ShouldHaveLength, 2)
		So(list[0].MatchID, ShouldEqual, "new")
		So(list[0].Sport, ShouldEqual, "volleyball")
	})

	Convey("Unknown matches are not found", func() {
		s := open()
		defer s.Close()
		_, err := s.Load(ctx, "missing")
		So(err, ShouldWrap, ErrNotFound)
		So(s.Delete(ctx, "missing"), ShouldWrap, ErrNotFound)
	})

	Convey("Delete removes the match", func() {
		s := open()
		defer s.Close()
		So(s.Save(ctx, snapshot("m1", base)), ShouldBeNil)
		So(s.Delete(ctx, "m1"), ShouldBeNil)
		_, err := s.Load(ctx, "m1")
		So(err, ShouldWrap, ErrNotFound)
	})

	Convey("A snapshot without id is refused", func() {
		s := open()
		defer s.Close()
		So(s.Save(ctx, snapshot(" ", base)), ShouldEqual, ErrInvalidMatchID)
	})
}

func TestMemoryStore(t *testing.T) {
	Convey("Given an in-memory store", t, func() {
		exerciseStore(func() Store { return NewMemoryStore() })

		Convey("A closed store refuses writes", func() {
			s := NewMemoryStore()
			So(s.Close(), ShouldBeNil)
			So(s.Save(context.Background(), snapshot("m1", time.Now())), ShouldEqual, ErrStoreClosed)
		})

		Convey("A cancelled context is honoured", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := NewMemoryStore().Load(ctx, "m1")
			So(err, ShouldEqual, context.Canceled)
		})
	})
}

func TestSQLiteStore(t *testing.T) {
	Convey("Given a SQLite store", t, func() {
		exerciseStore(func() Store {
			s, err := OpenSQLite(":memory:")
			So(err, ShouldBeNil)
			return s
		})

		Convey("Data survives reopening the file", func() {
			path := filepath.Join(t.TempDir(), "courtside.db")
			s, err := OpenSQLite(path)
			So(err, ShouldBeNil)
			So(s.Save(context.Background(), snapshot("m1", time.Now())), ShouldBeNil)
			So(s.Close(), ShouldBeNil)

			s, err = OpenSQLite(path)
			So(err, ShouldBeNil)
			defer s.Close()
			got, err := s.Load(context.Background(), "m1")
			So(err, ShouldBeNil)
			So(got.TeamNames.B, ShouldEqual, "Red")
		})

		Convey("An empty path is refused", func() {
			_, err := OpenSQLite("")
			So(err, ShouldNotBeNil)
		})
	})
}
