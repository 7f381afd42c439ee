// Package city holds the fixed set of supported cities and their upstream
// locale names.
package city

import "fmt"

// Key identifies one of the supported cities in routes and CLI arguments.
type Key string

// Supported city keys.
const (
	Taipei    Key = "taipei"
	NewTaipei Key = "newtaipei"
	Taoyuan   Key = "taoyuan"
	Taichung  Key = "taichung"
	Tainan    Key = "tainan"
	Kaohsiung Key = "kaohsiung"
)

// keys lists the cities in their canonical order.
var keys = []Key{Taipei, NewTaipei, Taoyuan, Taichung, Tainan, Kaohsiung}

// locales maps each key to the locationName expected by the CWA API.
var locales = map[Key]string{
	Taipei:    "臺北市",
	NewTaipei: "新北市",
	Taoyuan:   "桃園市",
	Taichung:  "臺中市",
	Tainan:    "臺南市",
	Kaohsiung: "高雄市",
}

// Keys returns the supported city keys in canonical order.
func Keys() []Key {
	out := make([]Key, len(keys))
	copy(out, keys)
	return out
}

// Parse reports whether s names a supported city.
func Parse(s string) (Key, bool) {
	k := Key(s)
	_, ok := locales[k]
	return k, ok
}

// Resolve returns the upstream locale name for k. Routes only bind known
// keys, so an unknown key is a wiring bug and surfaces as ConfigurationError.
func Resolve(k Key) (string, error) {
	name, ok := locales[k]
	if !ok {
		return "", &ConfigurationError{Key: k}
	}
	return name, nil
}

// DisplayName returns the human-readable name for k, or the key itself when
// it is not supported.
func (k Key) DisplayName() string {
	if name, ok := locales[k]; ok {
		return name
	}
	return string(k)
}

func (k Key) String() string { return string(k) }

// ConfigurationError reports a lookup of a city key outside the fixed set.
type ConfigurationError struct {
	Key Key
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown city key %q", string(e.Key))
}

// Unwrap lets callers match with errors.Is(err, ErrUnknownCity).
func (e *ConfigurationError) Unwrap() error { return ErrUnknownCity }
