package attribution

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/courtside/internal/domain/model"
)

func TestEvaluate(t *testing.T) {
	roster := []model.Player{{ID: "1", Name: "Ana"}, {ID: "2", Name: "Bo"}, {ID: "3", Name: "Cy", Ghost: true}}
	scoredA := model.Point{Team: model.SideA, Category: model.CategoryScored}

	Convey("Given a roster for side A", t, func() {
		Convey("A point scored by side A asks for a player", func() {
			d := Evaluate(Input{Point: scoredA, Roster: roster})
			So(d.Required, ShouldBeTrue)
			So(d.Candidates, ShouldHaveLength, 2)
		})

		Convey("A point scored by side B does not", func() {
			d := Evaluate(Input{Point: model.Point{Team: model.SideB, Category: model.CategoryScored}, Roster: roster})
			So(d, ShouldResemble, Decision{})
		})

		Convey("A fault committed by side A asks for a player", func() {
			d := Evaluate(Input{Point: model.Point{Team: model.SideA, Category: model.CategoryFault}, Roster: roster})
			So(d.Required, ShouldBeTrue)
		})

		Convey("Neutral points always ask", func() {
			d := Evaluate(Input{Point: model.Point{Team: model.SideB, Category: model.CategoryNeutral}, Roster: roster})
			So(d.Required, ShouldBeTrue)
		})

		Convey("Actions without attribution never ask", func() {
			d := Evaluate(Input{Point: scoredA, Roster: roster, Descriptor: model.ActionDescriptor{NoAttribution: true}})
			So(d, ShouldResemble, Decision{})
		})

		Convey("An opponent serve has no candidates", func() {
			d := Evaluate(Input{
				Point:       model.Point{Team: model.SideB, Category: model.CategoryFault},
				Descriptor:  model.ActionDescriptor{ServeClass: true},
				Roster:      roster,
				ServingSide: model.SideB,
			})
			So(d, ShouldResemble, Decision{})
		})

		Convey("A serve by the tracked side keeps its players", func() {
			d := Evaluate(Input{
				Point:       scoredA,
				Descriptor:  model.ActionDescriptor{ServeClass: true},
				Roster:      roster,
				ServingSide: model.SideA,
			})
			So(d.Required, ShouldBeTrue)
		})

		Convey("An opponent serve before any server is known has no candidates", func() {
			d := Evaluate(Input{
				Point:      model.Point{Team: model.SideB, Category: model.CategoryScored},
				Descriptor: model.ActionDescriptor{ServeClass: true},
				Roster:     roster,
			})
			So(d, ShouldResemble, Decision{})
		})

		Convey("A tracked side serve before any server is known keeps its players", func() {
			d := Evaluate(Input{
				Point:      model.Point{Team: model.SideA, Category: model.CategoryNeutral},
				Descriptor: model.ActionDescriptor{ServeClass: true},
				Roster:     roster,
			})
			So(d.Required, ShouldBeTrue)
			So(d.Candidates, ShouldHaveLength, 2)
		})

		Convey("A primary side of B flips relevance", func() {
			d := Evaluate(Input{Point: scoredA, Roster: roster, Primary: model.SideB})
			So(d.Required, ShouldBeFalse)
		})
	})

	Convey("Given a roster with one selectable player", t, func() {
		d := Evaluate(Input{Point: scoredA, Roster: roster[:1]})
		So(d.Required, ShouldBeFalse)
		So(d.AutoPlayer, ShouldEqual, "1")
	})

	Convey("Given an empty roster", t, func() {
		d := Evaluate(Input{Point: scoredA})
		So(d, ShouldResemble, Decision{})
	})
}

func TestCandidates(t *testing.T) {
	Convey("Ghosts and players without id are never offered", t, func() {
		out := Candidates([]model.Player{{ID: "1"}, {ID: ""}, {ID: "2", Ghost: true}})
		So(out, ShouldHaveLength, 1)
		So(Contains(out, "1"), ShouldBeTrue)
		So(Contains(out, "2"), ShouldBeFalse)
	})
}
