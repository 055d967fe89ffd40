// Package events defines the closed set of internal engine events.
//
// Internal components (identity, channel, protocol, network fetch and post,
// backup) raise these events on the internal bus. Each variant is a small
// value type carrying identifiers and scalars only; anything richer is
// hydrated from the store by the notification router.
//
// The Event interface has an unexported method, so adding a variant is only
// possible here, and every switch over events can be checked against
// AllKinds in tests.
package events
