package codec

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	errStringTooLong = errors.New("extern: string exceeds 65535-byte wire length prefix")
	errNotSkippable  = errors.New("extern: unknown field uses a non-length-dynamic tag and cannot be skipped")
	errNoObjectCodec = errors.New("extern: field uses the Object wire tag but no ObjectCodec is configured")
)

func errUnsupportedScalar(t reflect.Type) error {
	return fmt.Errorf("extern: %s has no scalar wire mapping", t)
}
