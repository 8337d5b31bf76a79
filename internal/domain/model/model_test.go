package model_test

import (
	"testing"
	"time"

	model "github.com/okian/restaurants/internal/domain/model"
	"github.com/okian/restaurants/internal/domain/types"
	"github.com/smartystreets/goconvey/convey"
)

func TestRestaurantInput(t *testing.T) {
	convey.Convey("Given a stored restaurant", t, func() {
		created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		stored := model.Restaurant{ID: 7, Name: "Pasta Place", Location: "Main St", CreatedAt: created}

		convey.Convey("When merging an input with only a name", func() {
			merged := model.RestaurantInput{Name: types.Some("X")}.Merge(stored)

			convey.Convey("Then the location and identity are kept", func() {
				convey.So(merged.Name, convey.ShouldEqual, "X")
				convey.So(merged.Location, convey.ShouldEqual, "Main St")
				convey.So(merged.ID, convey.ShouldEqual, 7)
				convey.So(merged.CreatedAt, convey.ShouldEqual, created)
			})
		})

		convey.Convey("When merging an empty input", func() {
			merged := model.RestaurantInput{}.Merge(stored)

			convey.Convey("Then nothing changes", func() {
				convey.So(merged, convey.ShouldResemble, stored)
			})
		})
	})

	convey.Convey("Given create inputs", t, func() {
		convey.Convey("Then a missing location is a missing field", func() {
			in := model.RestaurantInput{Name: types.Some("A")}
			convey.So(in.CheckCreate(), convey.ShouldEqual, model.ErrMissingFields)
		})

		convey.Convey("And a blank name is invalid", func() {
			in := model.RestaurantInput{Name: types.Some("  "), Location: types.Some("B")}
			convey.So(in.CheckCreate(), convey.ShouldEqual, model.ErrInvalidFields)
		})

		convey.Convey("And a complete input passes", func() {
			in := model.RestaurantInput{Name: types.Some("A"), Location: types.Some("B")}
			convey.So(in.CheckCreate(), convey.ShouldBeNil)
		})
	})
}

func TestMenuItemInput(t *testing.T) {
	convey.Convey("Given a stored menu item", t, func() {
		stored := model.MenuItem{ID: 3, RestaurantID: 1, Name: "Spaghetti", Description: "Classic", Price: 9.5}

		convey.Convey("When merging a price of zero and an empty description", func() {
			merged := model.MenuItemInput{
				Description: types.Some(""),
				Price:       types.Some(0.0),
			}.Merge(stored)

			convey.Convey("Then present-but-empty values overwrite", func() {
				convey.So(merged.Name, convey.ShouldEqual, "Spaghetti")
				convey.So(merged.Description, convey.ShouldEqual, "")
				convey.So(merged.Price, convey.ShouldEqual, 0.0)
				convey.So(merged.RestaurantID, convey.ShouldEqual, 1)
			})
		})
	})

	convey.Convey("Given create inputs", t, func() {
		convey.Convey("Then a missing price is a missing field", func() {
			in := model.MenuItemInput{Name: types.Some("A"), Description: types.Some("")}
			convey.So(in.CheckCreate(), convey.ShouldEqual, model.ErrMissingFields)
		})

		convey.Convey("And an empty description is allowed", func() {
			in := model.MenuItemInput{Name: types.Some("A"), Description: types.Some(""), Price: types.Some(1.25)}
			convey.So(in.CheckCreate(), convey.ShouldBeNil)
		})

		convey.Convey("And a negative price is invalid", func() {
			in := model.MenuItemInput{Price: types.Some(-1.0)}
			convey.So(in.Validate(), convey.ShouldEqual, model.ErrInvalidFields)
		})
	})
}
