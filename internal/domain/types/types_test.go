package types_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/okian/expertcalc/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMedalFor(t *testing.T) {
	Convey("Given ranking positions", t, func() {
		Convey("When on the podium", func() {
			Convey("Then gold, silver and peru are awarded in order", func() {
				So(types.MedalFor(1), ShouldResemble, &types.Medal{Label: "1st", Color: "gold"})
				So(types.MedalFor(2), ShouldResemble, &types.Medal{Label: "2nd", Color: "silver"})
				So(types.MedalFor(3), ShouldResemble, &types.Medal{Label: "3rd", Color: "peru"})
			})
		})

		Convey("When past the podium or invalid", func() {
			So(types.MedalFor(4), ShouldBeNil)
			So(types.MedalFor(0), ShouldBeNil)
			So(types.MedalFor(-1), ShouldBeNil)
		})
	})
}

func TestPurchaseObtain(t *testing.T) {
	Convey("Given a purchasable expert", t, func() {
		So(types.PurchaseObtain(120, 15), ShouldEqual, "120 medals / Requires 15 investigator level")
		So(types.PurchaseObtain(0, 1), ShouldEqual, "0 medals / Requires 1 investigator level")
	})
}

func TestRecommendationJSON(t *testing.T) {
	Convey("Given a recommendation without a medal or note", t, func() {
		rec := types.Recommendation{
			Position: 4,
			Expert:   types.ExpertView{ID: "x", Obtain: "purchase"},
		}

		Convey("When encoded", func() {
			raw, err := json.Marshal(rec)
			So(err, ShouldBeNil)

			Convey("Then optional fields are omitted", func() {
				So(string(raw), ShouldNotContainSubstring, `"medal"`)
				So(string(raw), ShouldNotContainSubstring, `"note"`)
				So(string(raw), ShouldContainSubstring, `"position":4`)
				So(string(raw), ShouldContainSubstring, `"total_gain":0`)
			})
		})
	})

	Convey("Given a stage gain", t, func() {
		g := types.StageGain{
			StageView: types.StageView{ID: "1-1", Tier: "normal"},
			Status:    "fully-satisfied",
			Level:     2,
		}

		Convey("When encoded", func() {
			raw, err := json.Marshal(g)
			So(err, ShouldBeNil)

			Convey("Then the embedded stage fields are flattened", func() {
				So(string(raw), ShouldContainSubstring, `"id":"1-1"`)
				So(string(raw), ShouldContainSubstring, `"tier":"normal"`)
				So(string(raw), ShouldContainSubstring, `"level":2`)
			})
		})
	})
}
