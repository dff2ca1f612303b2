package scoring

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/sport"
)

func wins(side model.Side, n int) []model.Point {
	out := make([]model.Point, n)
	for i := range out {
		out[i] = model.Point{Team: side, Category: model.CategoryScored}
	}
	return out
}

func concat(parts ...[]model.Point) []model.Point {
	var out []model.Point
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// games returns the points of n games won to love by side.
func games(side model.Side, n int) []model.Point { return wins(side, 4*n) }

func TestRallyScoring(t *testing.T) {
	rules := sport.Volleyball().Score

	Convey("Given rally point scoring", t, func() {
		Convey("Scored points credit the actor and faults the opponent", func() {
			points := []model.Point{
				{Team: model.SideA, Category: model.CategoryScored},
				{Team: model.SideA, Category: model.CategoryFault},
				{Team: model.SideB, Category: model.CategoryNeutral},
				{Team: model.SideB, Category: model.CategoryScored},
			}
			s := Derive(points, rules)
			So(s.A, ShouldEqual, 1)
			So(s.B, ShouldEqual, 2)
			So(s.Games, ShouldBeNil)
		})

		Convey("The total equals the number of non-neutral points", func() {
			points := concat(wins(model.SideA, 7), []model.Point{{Team: model.SideA, Category: model.CategoryFault}}, wins(model.SideB, 4))
			s := Derive(points, rules)
			So(s.A+s.B, ShouldEqual, len(points))
		})

		Convey("A set needs the target and a two point margin", func() {
			So(SetComplete(concat(wins(model.SideA, 24), wins(model.SideB, 23)), rules, 1), ShouldBeFalse)
			So(SetComplete(concat(wins(model.SideA, 25), wins(model.SideB, 23)), rules, 1), ShouldBeTrue)
			So(SetComplete(concat(wins(model.SideA, 25), wins(model.SideB, 24)), rules, 1), ShouldBeFalse)
		})

		Convey("The deciding set plays to its own target", func() {
			points := wins(model.SideB, 15)
			So(SetComplete(points, rules, 5), ShouldBeTrue)
			So(SetComplete(points, rules, 4), ShouldBeFalse)
		})

		Convey("The cap ends a badminton game outright", func() {
			b := sport.Badminton().Score
			So(SetComplete(concat(wins(model.SideA, 29), wins(model.SideB, 29)), b, 1), ShouldBeFalse)
			So(SetComplete(concat(wins(model.SideA, 29), wins(model.SideB, 30)), b, 1), ShouldBeTrue)
		})

		Convey("The last winner serves next", func() {
			points := []model.Point{
				{Team: model.SideA, Category: model.CategoryScored},
				{Team: model.SideA, Category: model.CategoryFault},
				{Team: model.SideA, Category: model.CategoryNeutral},
			}
			So(ServingSide(points, rules, model.SideA), ShouldEqual, model.SideB)
			So(ServingSide(nil, rules, model.SideB), ShouldEqual, model.SideB)
		})
	})
}

func TestWeightedScoring(t *testing.T) {
	rules := sport.Basketball().Score

	Convey("Given weighted scoring", t, func() {
		points := []model.Point{
			{Team: model.SideA, Category: model.CategoryScored, Value: 3},
			{Team: model.SideA, Category: model.CategoryScored, Value: 2},
			{Team: model.SideB, Category: model.CategoryScored},
			{Team: model.SideB, Category: model.CategoryFault},
			{Team: model.SideA, Category: model.CategoryNeutral, Value: 2},
		}

		Convey("Scores sum point values and ignore faults", func() {
			s := Derive(points, rules)
			So(s.A, ShouldEqual, 5)
			So(s.B, ShouldEqual, 1)
		})

		Convey("Periods never complete on their own and nobody serves", func() {
			So(SetComplete(points, rules, 1), ShouldBeFalse)
			So(ServingSide(points, rules, model.SideA), ShouldEqual, model.SideNone)
		})
	})
}

func TestNestedScoring(t *testing.T) {
	rules := sport.Tennis().Score

	Convey("Given tennis scoring", t, func() {
		Convey("Points are called 0, 15, 30 and 40", func() {
			s := Derive(concat(wins(model.SideA, 2), wins(model.SideB, 1)), rules)
			So(s.Games.PointA, ShouldEqual, "30")
			So(s.Games.PointB, ShouldEqual, "15")
			So(s.A, ShouldEqual, 2)
		})

		Convey("Deuce needs a two point margin", func() {
			deuce := concat(wins(model.SideA, 3), wins(model.SideB, 3))
			s := Derive(deuce, rules)
			So(s.Games.PointA, ShouldEqual, "40")
			So(s.Games.PointB, ShouldEqual, "40")

			ad := Derive(concat(deuce, wins(model.SideB, 1)), rules)
			So(ad.Games.PointB, ShouldEqual, "AD")
			So(ad.Games.B, ShouldEqual, 0)

			won := Derive(concat(deuce, wins(model.SideB, 2)), rules)
			So(won.Games.B, ShouldEqual, 1)
			So(won.Games.PointA, ShouldEqual, "0")
		})

		Convey("Six games with a margin of two win the set", func() {
			points := concat(games(model.SideB, 4), games(model.SideA, 5))
			So(SetComplete(points, rules, 1), ShouldBeFalse)
			points = concat(points, games(model.SideA, 1))
			So(SetComplete(points, rules, 1), ShouldBeTrue)
			So(SetWinner(Derive(points, rules)), ShouldEqual, model.SideA)
		})

		Convey("Six all starts a tie-break to seven", func() {
			var points []model.Point
			for i := 0; i < 6; i++ {
				points = concat(points, games(model.SideA, 1), games(model.SideB, 1))
			}
			s := Derive(points, rules)
			So(s.Games.TieBreak, ShouldBeTrue)
			So(SetComplete(points, rules, 1), ShouldBeFalse)

			points = concat(points, wins(model.SideB, 6), wins(model.SideA, 5))
			So(Derive(points, rules).Games.PointB, ShouldEqual, "6")
			points = concat(points, wins(model.SideB, 1))
			s = Derive(points, rules)
			So(s.Games.B, ShouldEqual, 7)
			So(s.Games.Winner, ShouldEqual, model.SideB)
			So(SetWinner(s), ShouldEqual, model.SideB)
		})

		Convey("The server alternates every game", func() {
			So(ServingSide(nil, rules, model.SideA), ShouldEqual, model.SideA)
			So(ServingSide(games(model.SideB, 1), rules, model.SideA), ShouldEqual, model.SideB)
			So(ServingSide(games(model.SideB, 2), rules, model.SideA), ShouldEqual, model.SideA)
			So(ServingSide(wins(model.SideB, 3), rules, model.SideA), ShouldEqual, model.SideA)
		})

		Convey("In a tie-break the server changes after one point then every two", func() {
			var points []model.Point
			for i := 0; i < 6; i++ {
				points = concat(points, games(model.SideA, 1), games(model.SideB, 1))
			}
			So(ServingSide(points, rules, model.SideA), ShouldEqual, model.SideA)
			points = concat(points, wins(model.SideA, 1))
			So(ServingSide(points, rules, model.SideA), ShouldEqual, model.SideB)
			points = concat(points, wins(model.SideA, 1))
			So(ServingSide(points, rules, model.SideA), ShouldEqual, model.SideB)
			points = concat(points, wins(model.SideA, 1))
			So(ServingSide(points, rules, model.SideA), ShouldEqual, model.SideA)
		})
	})
}

func TestMatchWinner(t *testing.T) {
	Convey("Given finished sets", t, func() {
		rules := sport.Volleyball().Score
		sets := []model.Set{{Winner: model.SideA}, {Winner: model.SideB}, {Winner: model.SideA}}

		Convey("Sets won are counted per side", func() {
			a, b := SetsWon(sets)
			So(a, ShouldEqual, 2)
			So(b, ShouldEqual, 1)
			So(MatchWinner(sets, rules), ShouldEqual, model.SideNone)
		})

		Convey("Reaching the sets to win decides the match", func() {
			sets = append(sets, model.Set{Winner: model.SideA})
			So(MatchWinner(sets, rules), ShouldEqual, model.SideA)
		})

		Convey("Weighted sports have no match winner by sets", func() {
			So(MatchWinner(sets, sport.Basketball().Score), ShouldEqual, model.SideNone)
		})
	})
}
