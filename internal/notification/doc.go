// Package notification defines the external notification vocabulary.
//
// Each Notification variant is produced from exactly one internal
// events.Event variant by the router, after hydration where needed. Names
// are stable strings and the envelope carries ir.NotificationVersion, so
// subscribers outside the process (see the bridge package) can rely on them.
//
// Encode produces RFC 8785 canonical JSON: the same notification always
// encodes to the same bytes.
package notification
