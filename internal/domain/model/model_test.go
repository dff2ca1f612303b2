package model

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPoint_Winner(t *testing.T) {
	Convey("Given points of every category", t, func() {
		Convey("A scored point credits the acting side", func() {
			So(Point{Team: SideA, Category: CategoryScored}.Winner(), ShouldEqual, SideA)
		})
		Convey("A fault credits the opponent", func() {
			So(Point{Team: SideA, Category: CategoryFault}.Winner(), ShouldEqual, SideB)
		})
		Convey("A neutral point credits nobody", func() {
			So(Point{Team: SideB, Category: CategoryNeutral}.Winner(), ShouldEqual, SideNone)
		})
	})
}

func TestPoint_Worth(t *testing.T) {
	Convey("Worth defaults to one", t, func() {
		So(Point{}.Worth(), ShouldEqual, 1)
		So(Point{Value: 3}.Worth(), ShouldEqual, 3)
	})
}

func TestPointFromAction(t *testing.T) {
	Convey("Given a rally action", t, func() {
		a := RallyAction{ID: "p1", Team: SideB, Category: CategoryFault, Action: "serve-out", X: 0.1, Y: 0.2, PlayerID: "7", Rating: RatingNegative}
		p := PointFromAction(a)

		Convey("The point mirrors its fields", func() {
			So(p.ID, ShouldEqual, "p1")
			So(p.Team, ShouldEqual, SideB)
			So(p.PlayerID, ShouldEqual, "7")
			So(p.Rating, ShouldEqual, RatingNegative)
			So(p.RallyActions, ShouldBeEmpty)
		})

		Convey("And converting back yields the same action", func() {
			So(p.AsRallyAction(), ShouldResemble, a)
		})
	})
}

func TestRetainReferencedPlayers(t *testing.T) {
	Convey("Given a roster and players that left it", t, func() {
		roster := []Player{{ID: "1", Name: "Ana"}}
		known := []Player{{ID: "1", Name: "Ana"}, {ID: "2", Name: "Bo"}, {ID: "3", Name: "Cy"}}
		sets := []Set{{Number: 1, Points: []Point{{ID: "x", PlayerID: "2"}}}}

		Convey("Referenced players are kept as ghosts", func() {
			out := RetainReferencedPlayers(roster, known, sets, nil)
			So(out, ShouldHaveLength, 2)
			So(out[0].Ghost, ShouldBeFalse)
			So(out[1].ID, ShouldEqual, "2")
			So(out[1].Ghost, ShouldBeTrue)
		})

		Convey("Rally actions count as references", func() {
			points := []Point{{ID: "y", RallyActions: []RallyAction{{PlayerID: "3"}}}}
			out := RetainReferencedPlayers(roster, known, nil, points)
			So(out, ShouldHaveLength, 2)
			So(out[1].ID, ShouldEqual, "3")
		})

		Convey("Unreferenced players are dropped", func() {
			out := RetainReferencedPlayers(roster, known, nil, nil)
			So(out, ShouldResemble, roster)
		})
	})
}
