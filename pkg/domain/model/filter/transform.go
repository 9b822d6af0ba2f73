package filter

import (
	"bytes"

	"github.com/m-mizutani/goerr/v2"
	"github.com/tidwall/gjson"
)

// Transform converts one record of a REST collection into an option
type Transform func(item gjson.Result) Option

// DefaultTransform maps a record to {label: name, value: id}
func DefaultTransform(item gjson.Result) Option {
	return Option{
		Label: item.Get("name").String(),
		Value: item.Get("id").String(),
	}
}

// ItemsOf extracts the "items" array of a paginated response. An absent or
// non-array "items" yields an empty slice.
func ItemsOf(body []byte) []gjson.Result {
	items := gjson.GetBytes(body, "items")
	if !items.IsArray() {
		return []gjson.Result{}
	}
	return items.Array()
}

// ToOptions maps every record in the response through tr, preserving order.
// A nil tr means DefaultTransform. Empty bodies and bodies without "items"
// produce an empty list; only a body that is not JSON at all is an error.
func ToOptions(body []byte, tr Transform) ([]Option, error) {
	if tr == nil {
		tr = DefaultTransform
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return []Option{}, nil
	}
	if !gjson.ValidBytes(body) {
		return nil, goerr.Wrap(ErrMalformedResponse, "response body is not JSON",
			goerr.V("body_size", len(body)))
	}

	items := ItemsOf(body)
	options := make([]Option, 0, len(items))
	for _, item := range items {
		options = append(options, tr(item))
	}
	return options, nil
}

// OptionsFrom converts a REST response into this field's options
func (f Field) OptionsFrom(body []byte) ([]Option, error) {
	return ToOptions(body, f.Transform)
}
