package property

import "errors"

var (
	// ErrUnknownID indicates a property identifier not present in Table.
	ErrUnknownID = errors.New("property: unknown identifier")

	// ErrDuplicate indicates a non-Multiple property was added or seen
	// twice within the same property block.
	ErrDuplicate = errors.New("property: duplicate not allowed")

	// ErrNotAllowed indicates a property was added with a Context hint
	// that Table does not allow for that property.
	ErrNotAllowed = errors.New("property: not allowed for this packet type")

	// ErrOutOfRange indicates a value violated its property-specific
	// range rule (e.g. a zero Receive Maximum).
	ErrOutOfRange = errors.New("property: value out of range")

	// ErrNoSpace indicates the Builder's destination buffer has
	// insufficient remaining capacity.
	ErrNoSpace = errors.New("property: insufficient builder capacity")

	// ErrAuthDataWithoutMethod indicates Authentication Data was added
	// before Authentication Method, violating the client-side pairing
	// rule in spec.md §4.2.
	ErrAuthDataWithoutMethod = errors.New("property: authentication data requires authentication method first")

	// ErrWrongIdentifier indicates a Reader's typed getter was called but
	// the next encoded property does not carry the expected identifier.
	ErrWrongIdentifier = errors.New("property: unexpected identifier")

	// ErrWrongType indicates table corruption or a caller bug: the Spec
	// for an identifier names a Type this package doesn't know how to
	// decode.
	ErrWrongType = errors.New("property: unsupported wire type")

	// ErrTruncated indicates the reader ran out of bytes mid-property.
	ErrTruncated = errors.New("property: truncated property value")
)
