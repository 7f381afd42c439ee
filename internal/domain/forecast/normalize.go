package forecast

// Unit suffixes appended to numeric element values.
const (
	percentSuffix = "%"
	celsiusSuffix = "°C"
)

// assign writes one element value into an interval.
type assign func(iv *Interval, value string)

// assigners dispatches on element code. Codes not listed are ignored so new
// upstream elements do not break normalization.
var assigners = map[string]assign{
	ElementWeather:       func(iv *Interval, v string) { iv.Weather = v },
	ElementPrecipitation: func(iv *Interval, v string) { iv.Rain = v + percentSuffix },
	ElementMinTemp:       func(iv *Interval, v string) { iv.MinTemp = v + celsiusSuffix },
	ElementMaxTemp:       func(iv *Interval, v string) { iv.MaxTemp = v + celsiusSuffix },
	ElementComfort:       func(iv *Interval, v string) { iv.Comfort = v },
	ElementWindSpeed:     func(iv *Interval, v string) { iv.WindSpeed = v },
}

// Known reports whether code is an element the normalizer maps.
func Known(code string) bool {
	_, ok := assigners[code]
	return ok
}

// Normalize builds the per-interval forecast for locale out of resp.
//
// The first element's series fixes the interval count and the start/end
// boundaries; every other recognized element must have the same length.
func Normalize(resp *Response, locale string) (Forecast, error) {
	loc, ok := findLocation(resp, locale)
	if !ok {
		return Forecast{}, &NotFoundError{Locale: locale}
	}

	if err := checkAligned(loc, locale); err != nil {
		return Forecast{}, err
	}

	var count int
	if len(loc.WeatherElement) > 0 {
		count = len(loc.WeatherElement[0].Time)
	}

	intervals := make([]Interval, 0, count)
	for i := 0; i < count; i++ {
		first := loc.WeatherElement[0].Time[i]
		iv := Interval{StartTime: first.StartTime, EndTime: first.EndTime}
		for _, el := range loc.WeatherElement {
			if set, ok := assigners[el.ElementName]; ok {
				set(&iv, el.Time[i].Parameter.ParameterName)
			}
		}
		intervals = append(intervals, iv)
	}

	return Forecast{
		City:       loc.LocationName,
		UpdateTime: resp.Records.DatasetDescription,
		Forecasts:  intervals,
	}, nil
}

func findLocation(resp *Response, locale string) (*Location, bool) {
	if resp == nil {
		return nil, false
	}
	for i := range resp.Records.Location {
		if resp.Records.Location[i].LocationName == locale {
			return &resp.Records.Location[i], true
		}
	}
	return nil, false
}

func checkAligned(loc *Location, locale string) error {
	if len(loc.WeatherElement) == 0 {
		return nil
	}
	want := len(loc.WeatherElement[0].Time)
	for _, el := range loc.WeatherElement[1:] {
		if !Known(el.ElementName) {
			continue
		}
		if got := len(el.Time); got != want {
			return &MalformedUpstreamDataError{
				Locale:  locale,
				Element: el.ElementName,
				Want:    want,
				Got:     got,
			}
		}
	}
	return nil
}
