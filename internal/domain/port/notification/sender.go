package notification

// Sender delivers a formatted message to an address. Delivery is best-effort:
// implementations may fail, but callers log and move on. A lost notification
// never affects a committed status transition.
type Sender interface {
	// Send delivers one message. Errors are advisory only.
	Send(address, subject, body string) error
}
