package util

type Envelope map[string]any

// Error wraps a failure in the `{"error": ...}` body shape used for
// validation and internal failures.
func Error(message string) Envelope {
	return Envelope{"error": message}
}

// Message wraps a human-readable outcome in the `{"message": ...}` body shape
// used for not-found, forbidden, and delete confirmations.
func Message(message string) Envelope {
	return Envelope{"message": message}
}
