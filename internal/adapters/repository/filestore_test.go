package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/expertcalc/internal/adapters/repository"
	"github.com/okian/expertcalc/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func load(name string, opts ...repository.Option) (*model.Catalog, error) {
	return repository.NewFileStore(filepath.Join("testdata", name), opts...).Load(context.Background())
}

func TestFileStore_Load(t *testing.T) {
	Convey("Given a FileStore", t, func() {
		Convey("When loading a valid YAML document", func() {
			c, err := load("valid.yaml")

			Convey("Then the catalog is populated", func() {
				So(err, ShouldBeNil)
				So(c.ExpertIDs(), ShouldResemble, []string{"A", "B"})

				b, ok := c.Expert("B")
				So(ok, ShouldBeTrue)
				So(b.Obtain, ShouldEqual, model.ObtainPurchase)
				So(b.Cost, ShouldEqual, 120)
				So(b.RequiredLevel, ShouldEqual, 15)
				So(b.Traits, ShouldResemble, []string{"bold"})

				So(c.Stages[model.TierNormal], ShouldResemble, []model.Stage{{
					ID:           "1-1",
					Requirements: []model.Requirement{{Genre: "logic"}, {Trait: "bold"}},
				}})
				So(c.Stages[model.TierElite][0].Requirements, ShouldResemble,
					[]model.Requirement{{Genre: "intuition", Trait: "bold"}})

				So(c.GenreLabel("logic"), ShouldEqual, "Logic")
				So(c.TraitInfo("bold"), ShouldResemble, model.Trait{Label: "Bold", Color: "#ffb703"})
			})
		})

		Convey("When loading a valid JSON document with null constraints", func() {
			c, err := load("valid.json")

			Convey("Then null becomes no constraint and the missing tier is empty", func() {
				So(err, ShouldBeNil)
				So(c.Stages[model.TierNormal][0].Requirements, ShouldResemble, []model.Requirement{{Genre: "logic"}})
				So(c.Stages[model.TierElite], ShouldBeEmpty)
			})
		})

		Convey("When references dangle and stage ids repeat", func() {
			_, err := load("dangling.yaml")

			Convey("Then every problem is reported as invalid", func() {
				So(errors.Is(err, repository.ErrInvalidDataset), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, `expert A: unknown genre "memory"`)
				So(err.Error(), ShouldContainSubstring, `normal stage 1-1: unknown trait "calm"`)
				So(err.Error(), ShouldContainSubstring, "normal stage 1-1: duplicate id")
			})
		})

		Convey("When a tier is unknown", func() {
			_, err := load("bad_tier.yaml")

			Convey("Then the document is rejected", func() {
				So(errors.Is(err, repository.ErrInvalidDataset), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "one of: normal elite")
			})
		})

		Convey("When a stage has three requirements", func() {
			_, err := load("three_requirements.yaml")

			Convey("Then the document is rejected", func() {
				So(errors.Is(err, repository.ErrInvalidDataset), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "requirements must have at most 2 items")
			})
		})

		Convey("When a purchasable expert lacks a level", func() {
			_, err := load("purchase_without_level.yaml")

			Convey("Then the document is rejected", func() {
				So(errors.Is(err, repository.ErrInvalidDataset), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "required_level is required")
			})
		})

		Convey("When there are no experts", func() {
			_, err := load("empty.yaml")

			Convey("Then the document is rejected", func() {
				So(errors.Is(err, repository.ErrInvalidDataset), ShouldBeTrue)
			})
		})

		Convey("When the JSON is malformed", func() {
			_, err := load("malformed.json")

			Convey("Then a load error is returned", func() {
				So(errors.Is(err, repository.ErrLoadDataset), ShouldBeTrue)
			})
		})

		Convey("When the extension is unknown", func() {
			_, err := load("dataset.toml")

			Convey("Then the format is unsupported", func() {
				So(errors.Is(err, repository.ErrUnsupportedFormat), ShouldBeTrue)
			})
		})

		Convey("When the format is forced", func() {
			_, err := load("dataset.toml", repository.WithFormat(repository.FormatYAML))

			Convey("Then the file is decoded as YAML and validated", func() {
				So(errors.Is(err, repository.ErrInvalidDataset), ShouldBeTrue)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := load("missing.yaml")

			Convey("Then the OS error is wrapped", func() {
				So(errors.Is(err, repository.ErrLoadDataset), ShouldBeTrue)
				So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
			})
		})

		Convey("When the file exceeds the size limit", func() {
			_, err := load("valid.yaml", repository.WithMaxFileSize(16))

			Convey("Then it is refused", func() {
				So(errors.Is(err, repository.ErrDatasetTooLarge), ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := repository.NewFileStore(filepath.Join("testdata", "valid.yaml")).Load(ctx)

			Convey("Then loading is abandoned", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})

		Convey("When asking for the source", func() {
			So(repository.NewFileStore("x/y.yaml").Source(), ShouldEqual, "x/y.yaml")
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given raw bytes", t, func() {
		Convey("When the format is unknown", func() {
			_, err := repository.Parse([]byte("{}"), repository.Format("toml"))
			So(errors.Is(err, repository.ErrUnsupportedFormat), ShouldBeTrue)
		})

		Convey("When the YAML is malformed", func() {
			_, err := repository.Parse([]byte("experts: [unclosed"), repository.FormatYAML)
			So(errors.Is(err, repository.ErrLoadDataset), ShouldBeTrue)
		})
	})
}
