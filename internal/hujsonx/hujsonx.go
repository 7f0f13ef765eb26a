// Package hujsonx contains github.com/tailscale/hujson extensions.
package hujsonx

import (
	"encoding/json"

	"github.com/tailscale/hujson"
)

// Unmarshal is like json.Unmarshal except that it first standardizes the
// input, such that we can parse JSON documents containing comments and
// trailing commas.
func Unmarshal(data []byte, v any) error {
	d, err := hujson.Standardize(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(d, v)
}
