package asset

import "errors"

// Sentinel errors for the asset lifecycle. Callers classify failures with
// errors.Is: the first two indicate broken invariants when they surface
// during orchestrated resolution, the last two are node-local failures whose
// subtree is dropped.
var (
	ErrMissingResource  = errors.New("no resource attached")
	ErrResourceUnloaded = errors.New("resource has no data")
	ErrHTTP             = errors.New("http error")
	ErrParse            = errors.New("parse error")
)
