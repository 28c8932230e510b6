package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/okian/expertcalc/internal/adapters/http/api"
	"github.com/okian/expertcalc/internal/domain/model"
	"github.com/okian/expertcalc/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

type mockDeps struct {
	lastOwned    model.OwnedSet
	recommendErr error
}

func (m *mockDeps) Recommend(_ context.Context, owned model.OwnedSet) ([]types.Recommendation, error) {
	m.lastOwned = owned
	if m.recommendErr != nil {
		return nil, m.recommendErr
	}
	return []types.Recommendation{
		{Position: 1, Medal: types.MedalFor(1), Expert: types.ExpertView{ID: "P"}, TotalGain: 2},
		{Position: 2, Expert: types.ExpertView{ID: "S"}, Owned: true, Note: types.NoteOwned},
	}, nil
}

func (m *mockDeps) InitialOwned() model.OwnedSet { return model.NewOwnedSet("S") }

func (m *mockDeps) Experts() []types.ExpertView {
	return []types.ExpertView{{ID: "P", Obtain: "purchase"}, {ID: "S", Obtain: "story"}}
}

func (m *mockDeps) Stages(tier model.Tier) ([]types.StageView, error) {
	return []types.StageView{{ID: "1-1", Tier: string(tier)}}, nil
}

func (m *mockDeps) GetStats() types.Stats {
	return types.Stats{Experts: 2, StoryExperts: 1, Stages: map[string]int{"normal": 1, "elite": 0}}
}

type listResponse struct {
	Owned           []string               `json:"owned"`
	Recommendations []types.Recommendation `json:"recommendations"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_Routes(t *testing.T) {
	Convey("Given an API server", t, func() {
		deps := &mockDeps{}
		h := api.NewServer(deps, api.WithMaxOwned(3), api.WithRateLimit(0, 0)).Router(context.Background())

		Convey("When probing /healthz", func() {
			w := serve(h, http.MethodGet, "/healthz", "")

			Convey("Then it reports ok", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"status":"ok"`)
				So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
			})
		})

		Convey("When scraping /metrics", func() {
			serve(h, http.MethodGet, "/healthz", "")
			w := serve(h, http.MethodGet, "/metrics", "")

			Convey("Then the HTTP metrics are exposed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "expertcalc_")
			})
		})

		Convey("When reading /stats", func() {
			w := serve(h, http.MethodGet, "/stats", "")

			Convey("Then the dataset counts are returned", func() {
				var stats types.Stats
				So(w.Code, ShouldEqual, http.StatusOK)
				So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
				So(stats.Experts, ShouldEqual, 2)
				So(stats.Stages["normal"], ShouldEqual, 1)
			})
		})

		Convey("When listing experts", func() {
			w := serve(h, http.MethodGet, "/experts", "")
			var experts []types.ExpertView
			So(json.Unmarshal(w.Body.Bytes(), &experts), ShouldBeNil)
			So(experts, ShouldHaveLength, 2)
			So(experts[0].ID, ShouldEqual, "P")
		})

		Convey("When reading the initial owned set", func() {
			w := serve(h, http.MethodGet, "/experts/initial", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"owned":["S"]`)
		})

		Convey("When reading stages", func() {
			Convey("And the tier is known", func() {
				w := serve(h, http.MethodGet, "/stages/elite", "")
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"tier":"elite"`)
			})

			Convey("And the tier is unknown", func() {
				w := serve(h, http.MethodGet, "/stages/hard", "")
				var body errorBody
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Code, ShouldEqual, "not_found")
			})
		})

		Convey("When requesting an unknown route", func() {
			w := serve(h, http.MethodGet, "/unknown", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestRecommendations(t *testing.T) {
	Convey("Given an API server", t, func() {
		deps := &mockDeps{}
		h := api.NewServer(deps, api.WithMaxOwned(3)).Router(context.Background())

		Convey("When posting a valid owned list", func() {
			w := serve(h, http.MethodPost, "/recommendations", `{"owned":["S","B"]}`)

			Convey("Then the ranking is returned for exactly that set", func() {
				var resp listResponse
				So(w.Code, ShouldEqual, http.StatusOK)
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Owned, ShouldResemble, []string{"B", "S"})
				So(resp.Recommendations, ShouldHaveLength, 2)
				So(resp.Recommendations[0].Medal.Color, ShouldEqual, "gold")
				So(deps.lastOwned.IDs(), ShouldResemble, []string{"B", "S"})
			})
		})

		Convey("When posting malformed JSON", func() {
			w := serve(h, http.MethodPost, "/recommendations", `{"owned":`)
			var body errorBody
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body.Code, ShouldEqual, "bad_request")
		})

		Convey("When posting unknown fields", func() {
			w := serve(h, http.MethodPost, "/recommendations", `{"owned":["S"],"extra":1}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When posting an invalid owned list", func() {
			cases := map[string]string{
				"empty":      `{"owned":[]}`,
				"missing":    `{}`,
				"duplicates": `{"owned":["S","S"]}`,
				"blank id":   `{"owned":["S",""]}`,
				"too many":   `{"owned":["a","b","c","d"]}`,
			}
			for name, body := range cases {
				Convey("And it is "+name, func() {
					w := serve(h, http.MethodPost, "/recommendations", body)
					var resp errorBody
					So(w.Code, ShouldEqual, http.StatusBadRequest)
					So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
					So(resp.Code, ShouldEqual, "validation_error")
				})
			}
		})

		Convey("When getting without an owned parameter", func() {
			w := serve(h, http.MethodGet, "/recommendations", "")

			Convey("Then the initial owned set is used", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastOwned.IDs(), ShouldResemble, []string{"S"})
			})
		})

		Convey("When getting with a comma-separated owned list", func() {
			w := serve(h, http.MethodGet, "/recommendations?owned=S,%20A,,B", "")

			Convey("Then blanks are skipped and ids trimmed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastOwned.IDs(), ShouldResemble, []string{"A", "B", "S"})
			})
		})

		Convey("When getting with an empty owned parameter", func() {
			w := serve(h, http.MethodGet, "/recommendations?owned=", "")

			Convey("Then the owned set is empty rather than initial", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastOwned.Len(), ShouldEqual, 0)
			})
		})

		Convey("When getting with too many ids", func() {
			w := serve(h, http.MethodGet, "/recommendations?owned=a,b,c,d", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the service fails", func() {
			deps.recommendErr = context.Canceled
			w := serve(h, http.MethodPost, "/recommendations", `{"owned":["S"]}`)
			var resp errorBody
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, "internal_error")
		})
	})
}

func TestMiddleware(t *testing.T) {
	Convey("Given a rate limited server", t, func() {
		h := api.NewServer(&mockDeps{}, api.WithRateLimit(2, time.Minute)).Router(context.Background())

		Convey("When a client exceeds the limit", func() {
			So(serve(h, http.MethodGet, "/experts", "").Code, ShouldEqual, http.StatusOK)
			So(serve(h, http.MethodGet, "/experts", "").Code, ShouldEqual, http.StatusOK)
			w := serve(h, http.MethodGet, "/experts", "")

			Convey("Then it is told to back off", func() {
				So(w.Code, ShouldEqual, http.StatusTooManyRequests)
			})
		})

		Convey("When probing health past the limit", func() {
			for i := 0; i < 5; i++ {
				So(serve(h, http.MethodGet, "/healthz", "").Code, ShouldEqual, http.StatusOK)
			}
		})
	})

	Convey("Given a server with CORS origins", t, func() {
		h := api.NewServer(&mockDeps{}, api.WithCORSOrigins([]string{"https://example.org"})).Router(context.Background())

		Convey("When a browser calls from an allowed origin", func() {
			req := httptest.NewRequest(http.MethodGet, "/experts", http.NoBody)
			req.Header.Set("Origin", "https://example.org")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then the origin is echoed", func() {
				So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "https://example.org")
			})
		})
	})

	Convey("Given a caller-supplied request id", t, func() {
		h := api.NewServer(&mockDeps{}).Router(context.Background())
		req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
		req.Header.Set(api.RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		Convey("Then it is propagated to the response", func() {
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
		})
	})

	Convey("Given the request id middleware", t, func() {
		var seen string
		h := api.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen = api.RequestIDFrom(r.Context())
		}))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

		Convey("Then a generated id is stored in the context", func() {
			So(seen, ShouldNotBeEmpty)
			So(seen, ShouldEqual, w.Header().Get(api.RequestIDHeader))
			So(api.RequestIDFrom(context.Background()), ShouldBeEmpty)
		})
	})
}

func TestErrors(t *testing.T) {
	Convey("Given API errors", t, func() {
		cause := errors.New("boom")

		Convey("When wrapping with a kind", func() {
			err := api.WrapKind("api.op", api.ErrBadRequest, cause)

			Convey("Then both kind and cause match", func() {
				So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
				So(errors.Is(err, cause), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "api.op: bad request: boom")
			})
		})

		Convey("When creating a bare kind", func() {
			err := api.NewKind("api.op", api.ErrNotFound)
			So(errors.Is(err, api.ErrNotFound), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: not found")
		})

		Convey("When wrapping without a kind", func() {
			So(api.Wrap("api.op", nil), ShouldBeNil)
			err := api.Wrap("api.op", cause)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: boom")
		})
	})
}
