// Package forecast converts CWA 36-hour forecast payloads into per-interval
// records.
package forecast

// Element codes carried by the F-C0032-001 dataset.
const (
	ElementWeather       = "Wx"
	ElementPrecipitation = "PoP"
	ElementMinTemp       = "MinT"
	ElementMaxTemp       = "MaxT"
	ElementComfort       = "CI"
	ElementWindSpeed     = "WS"
)

// Response mirrors the subset of the upstream payload we read.
type Response struct {
	Success string  `json:"success"`
	Records Records `json:"records"`
}

// Records is the dataset body.
type Records struct {
	DatasetDescription string     `json:"datasetDescription"`
	Location           []Location `json:"location"`
}

// Location holds every weather element for one locale.
type Location struct {
	LocationName   string    `json:"locationName"`
	WeatherElement []Element `json:"weatherElement"`
}

// Element is one forecast attribute with its own time series.
type Element struct {
	ElementName string      `json:"elementName"`
	Time        []TimeEntry `json:"time"`
}

// TimeEntry is a single time-indexed value of an element.
type TimeEntry struct {
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Parameter Parameter `json:"parameter"`
}

// Parameter carries the value; ParameterName is the displayed value.
type Parameter struct {
	ParameterName  string `json:"parameterName"`
	ParameterValue string `json:"parameterValue,omitempty"`
	ParameterUnit  string `json:"parameterUnit,omitempty"`
}

// Interval is one normalized forecast window.
type Interval struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Weather   string `json:"weather"`
	Rain      string `json:"rain"`
	MinTemp   string `json:"minTemp"`
	MaxTemp   string `json:"maxTemp"`
	Comfort   string `json:"comfort"`
	WindSpeed string `json:"windSpeed"`
}

// Forecast is the normalized document returned to clients.
type Forecast struct {
	City       string     `json:"city"`
	UpdateTime string     `json:"updateTime"`
	Forecasts  []Interval `json:"forecasts"`
}
