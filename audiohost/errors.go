package audiohost

import "errors"

// ErrNoDevice is returned when a requested device id is unknown to the
// host, or no default device is available.
var ErrNoDevice = errors.New("audiohost: no such device")

// ErrUnsupported is returned by a host backend that cannot perform the
// requested operation at all (e.g. an output-only backend asked to
// open an input stream).
var ErrUnsupported = errors.New("audiohost: unsupported operation")
