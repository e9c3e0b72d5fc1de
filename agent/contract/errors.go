package contract

import "errors"

var (
	// ErrUnknownDomain is returned by the registry when no constructor is
	// registered for the requested domain. Callers catch it to substitute a
	// generic fallback agent instead of failing the whole turn.
	ErrUnknownDomain = errors.New("unknown agent domain")

	// ErrUnsupportedProvider is returned when an agent is constructed with a
	// provider name the catalog does not recognize. Fatal to construction.
	ErrUnsupportedProvider = errors.New("unsupported ai provider")

	ErrToolAuthorization = errors.New("tool authorization failed")
	ErrToolValidation    = errors.New("tool argument validation failed")

	// ErrPersistence wraps durable-store failures. Never swallowed: a message
	// that did not reach the store breaks the durability contract.
	ErrPersistence = errors.New("persistence failed")

	// ErrProvider wraps backend inference failures. Ends the turn, not the process.
	ErrProvider = errors.New("provider invoke failed")

	ErrValidation = errors.New("validation failed")
)
