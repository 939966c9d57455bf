package dto

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// assign stores value into dst, which must be settable. Assignable values
// are stored as they are; anything else goes through mapstructure, which
// covers the shapes plain data arrives in (float64 numbers, []any lists,
// RFC 3339 timestamps, nested maps for non-DTO structs). The conversion
// runs on a fresh value, so dst only changes when it succeeds.
func assign(dst reflect.Value, value any) error {
	value = unordered(value)
	if value == nil {
		dst.SetZero()

		return nil
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(dst.Type()) {
		dst.Set(v)

		return nil
	}

	if dst.Kind() == reflect.Interface {
		return fmt.Errorf("%s does not implement %s", v.Type(), dst.Type())
	}

	tmp := reflect.New(dst.Type())

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     tmp.Interface(),
		TagName:    "dto",
		ZeroFields: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}

	if err := dec.Decode(value); err != nil {
		return err
	}

	dst.Set(tmp.Elem())

	return nil
}
