package utils

// Context keys used by the gin middleware to hand collaborators to the
// handlers.
const (
	// KeyStore is the context key for the task store.
	KeyStore = "store"
	// KeyMailer is the context key for the digest mailer.
	KeyMailer = "mailer"

	// SystemEmailPrefix marks emails sent by the service itself.
	SystemEmailPrefix = "[Dailyflo]"
)
