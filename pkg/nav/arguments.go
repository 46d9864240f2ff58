package nav

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeArguments decodes a destination's opaque Arguments value into a
// typed struct. It accepts maps (the usual shape after transport decoding)
// as well as already-typed values, and fails when fields cannot be
// converted.
//
//	type ProfileArgs struct {
//	    UserID string `mapstructure:"user_id"`
//	}
//
//	var args ProfileArgs
//	if err := nav.DecodeArguments(page.Destination.Arguments, &args); err != nil {
//	    return err
//	}
func DecodeArguments(arguments any, out any) error {
	if arguments == nil {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("nav: creating arguments decoder: %w", err)
	}
	if err := decoder.Decode(arguments); err != nil {
		return fmt.Errorf("nav: decoding arguments: %w", err)
	}
	return nil
}
