package records

import "fmt"

// ErrInvalidRecord indicates input that is not valid JSON or does not
// conform to its schema.
type ErrInvalidRecord struct {
	Kind string // schema name, e.g. "score-input"
	Err  error
}

func (e *ErrInvalidRecord) Error() string {
	return fmt.Sprintf("invalid %s record: %v", e.Kind, e.Err)
}

func (e *ErrInvalidRecord) Unwrap() error { return e.Err }

// ErrUnsupportedVersion indicates a bundle whose version is not valid
// semver or whose major version is not supported.
type ErrUnsupportedVersion struct {
	Version   string
	Supported string
}

func (e *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("unsupported bundle version %q (supported: %s.x.y)", e.Version, e.Supported)
}
