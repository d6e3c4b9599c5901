package dom

import "errors"

// ErrInvalidReadyCallback is returned by initialization if a node's ready
// setting is neither a ready callback, a sequence of ready callbacks, nor true.
var ErrInvalidReadyCallback = errors.New("invalid ready callback")

// ErrMissingStyleSet flags a class without a named style-set. It is never
// returned, only traced.
var ErrMissingStyleSet = errors.New("missing style-set")

// ErrInvalidSetting is returned if a setting cannot be applied to a node.
var ErrInvalidSetting = errors.New("invalid setting")

// ErrUnknownNode is returned for node identities not (or no longer) owned by
// a document.
var ErrUnknownNode = errors.New("unknown node")

// ErrForeignNode is returned when linking nodes of different documents.
var ErrForeignNode = errors.New("node belongs to another document")

// ErrHierarchy is returned when appending a node to itself or to one of its
// descendants.
var ErrHierarchy = errors.New("node cannot be appended to its own subtree")

// ErrUnknownAction is returned by Do for action names without an action.
var ErrUnknownAction = errors.New("unknown action")
