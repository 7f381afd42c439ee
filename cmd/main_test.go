package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/twweather/internal/config"
	"github.com/okian/twweather/internal/domain/city"
	"github.com/okian/twweather/internal/domain/forecast"
	"github.com/okian/twweather/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

const upstreamFixture = `{
  "success": "true",
  "records": {
    "datasetDescription": "三十六小時天氣預報",
    "location": [{
      "locationName": "臺北市",
      "weatherElement": [
        {"elementName": "Wx", "time": [{"startTime": "2025-01-01 18:00:00", "endTime": "2025-01-02 06:00:00", "parameter": {"parameterName": "多雲"}}]},
        {"elementName": "PoP", "time": [{"startTime": "2025-01-01 18:00:00", "endTime": "2025-01-02 06:00:00", "parameter": {"parameterName": "20"}}]},
        {"elementName": "MinT", "time": [{"startTime": "2025-01-01 18:00:00", "endTime": "2025-01-02 06:00:00", "parameter": {"parameterName": "16"}}]},
        {"elementName": "MaxT", "time": [{"startTime": "2025-01-01 18:00:00", "endTime": "2025-01-02 06:00:00", "parameter": {"parameterName": "22"}}]}
      ]
    }]
  }
}`

type stubDeps struct{ err error }

func (s stubDeps) Forecast(_ context.Context, key city.Key) (forecast.Forecast, error) {
	if s.err != nil {
		return forecast.Forecast{}, s.err
	}
	return forecast.Forecast{City: key.DisplayName()}, nil
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.Execute()
	return out.String(), err
}

func TestCitiesCommand(t *testing.T) {
	convey.Convey("Given the cities command", t, func() {
		out, err := runCLI(t, "cities")

		convey.Convey("Then every supported city should be listed in order", func() {
			convey.So(err, convey.ShouldBeNil)
			var entries []cityEntry
			convey.So(json.Unmarshal([]byte(out), &entries), convey.ShouldBeNil)
			convey.So(len(entries), convey.ShouldEqual, len(city.Keys()))
			convey.So(entries[0], convey.ShouldResemble, cityEntry{Key: "taipei", Name: "臺北市", Path: "/api/weather/taipei"})
			convey.So(entries[5].Key, convey.ShouldEqual, "kaohsiung")
		})
	})
}

func TestForecastCommand(t *testing.T) {
	convey.Convey("Given a fake CWA upstream", t, func() {
		var gotAuth, gotLocale string
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.URL.Query().Get("Authorization")
			gotLocale = r.URL.Query().Get("locationName")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(upstreamFixture))
		}))
		defer upstream.Close()

		t.Setenv("WEATHER_CWA_BASE_URL", upstream.URL)
		t.Setenv("WEATHER_CWA_API_KEY", "test-key")

		convey.Convey("When fetching Taipei", func() {
			out, err := runCLI(t, "forecast", "taipei")

			convey.Convey("Then the normalized forecast should be printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(gotAuth, convey.ShouldEqual, "test-key")
				convey.So(gotLocale, convey.ShouldEqual, "臺北市")

				var got []forecast.Forecast
				convey.So(json.Unmarshal([]byte(out), &got), convey.ShouldBeNil)
				convey.So(len(got), convey.ShouldEqual, 1)
				convey.So(got[0].City, convey.ShouldEqual, "臺北市")
				convey.So(got[0].UpdateTime, convey.ShouldEqual, "三十六小時天氣預報")
				convey.So(got[0].Forecasts[0].Rain, convey.ShouldEqual, "20%")
				convey.So(got[0].Forecasts[0].MaxTemp, convey.ShouldEqual, "22°C")
			})
		})

		convey.Convey("When passing an unknown city", func() {
			_, err := runCLI(t, "forecast", "hsinchu")

			convey.Convey("Then it should fail before calling upstream", func() {
				convey.So(errors.Is(err, city.ErrUnknownCity), convey.ShouldBeTrue)
				convey.So(gotLocale, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When no arguments are given", func() {
			_, err := runCLI(t, "forecast")

			convey.Convey("Then it should be rejected", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})

	convey.Convey("Given no API key", t, func() {
		t.Setenv("WEATHER_CWA_API_KEY", "")
		t.Setenv("CWA_API_KEY", "")

		convey.Convey("When fetching a city", func() {
			_, err := runCLI(t, "forecast", "tainan")

			convey.Convey("Then the missing credential should be reported", func() {
				convey.So(errors.Is(err, forecast.ErrMissingCredential), convey.ShouldBeTrue)
			})
		})
	})
}

func TestBuildHandler(t *testing.T) {
	convey.Convey("Given the assembled HTTP handler", t, func() {
		cfg := config.New()
		h := buildHandler(context.Background(), cfg, stubDeps{}, logger.Nop())

		for _, path := range []string{"/", "/api/health", "/api/weather/taichung", "/metrics", "/api-docs", "/openapi.yaml"} {
			convey.Convey("Then "+path+" should be served", func() {
				req := httptest.NewRequest(http.MethodGet, path, nil)
				w := httptest.NewRecorder()
				h.ServeHTTP(w, req)
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			})
		}

		convey.Convey("Then unknown paths should be 404", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/weather/hsinchu", nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusNotFound)
		})

		convey.Convey("Then every response should carry a request id", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			convey.So(w.Header().Get("X-Request-ID"), convey.ShouldNotBeEmpty)
		})
	})
}

func TestSystemMetricsUpdater(t *testing.T) {
	convey.Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			startSystemMetricsUpdater(ctx, time.Millisecond)
			close(done)
		}()
		time.Sleep(5 * time.Millisecond)
		cancel()

		convey.Convey("Then the updater should stop", func() {
			select {
			case <-done:
				convey.So(true, convey.ShouldBeTrue)
			case <-time.After(time.Second):
				convey.So("updater did not stop", convey.ShouldBeEmpty)
			}
		})
	})
}
