package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestInit(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithFormat(FormatJSON), WithWriter(&buf)), ShouldBeNil)
		defer func() { So(Sync(), ShouldBeNil) }()

		Convey("Fields are written as attributes", func() {
			Get().Named("engine").Info(context.Background(), "point committed",
				MatchID("m1"), Int("score", 3), Bool("rally", false), Duration("elapsed", time.Second), Error(errors.New("boom")))

			var line map[string]any
			So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)
			So(line["msg"], ShouldEqual, "point committed")
			So(line["logger"], ShouldEqual, "engine")
			So(line["match_id"], ShouldEqual, "m1")
			So(line["error"], ShouldEqual, "boom")
			So(line["source"], ShouldContainSubstring, "logger_test.go")
		})

		Convey("With attaches fields to every line", func() {
			Get().With(String("sport", "tennis")).Warn(context.Background(), "slow save")
			So(buf.String(), ShouldContainSubstring, `"sport":"tennis"`)
		})

		Convey("Lines below the level are dropped", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			Get().Info(context.Background(), "hidden")
			So(buf.Len(), ShouldEqual, 0)
			So(SetLevelString("info"), ShouldBeNil)
		})
	})

	Convey("Given a text logger", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf), WithLevel("debug")), ShouldBeNil)
		Get().Debug(context.Background(), "debug line", String("k", "v"))
		So(strings.Contains(buf.String(), "k=v"), ShouldBeTrue)
		So(SetLevelString("info"), ShouldBeNil)
	})

	Convey("Invalid settings are refused", t, func() {
		So(Init(WithFormat("xml")), ShouldNotBeNil)
		So(Init(WithLevel("loud")), ShouldNotBeNil)
		So(SetLevelString("verbose"), ShouldNotBeNil)
		So(Init(), ShouldBeNil)
	})
}

func TestNop(t *testing.T) {
	Convey("The nop logger accepts every call", t, func() {
		l := Nop().Named("x").With(String("a", "b"))
		So(func() { l.Info(context.Background(), "ignored") }, ShouldNotPanic)
	})
}
