package form

// maxDescriptionLength caps the free-text description. Matches the
// limit enforced by the mobile clients.
const maxDescriptionLength = 500

// ValidateAll maps every invalid field to a user-facing message. An
// empty map means the form is savable. The function is pure: it never
// mutates v and has no hidden state, so it is safe to call on every
// keystroke.
func ValidateAll(v Values) map[string]string {
	errs := make(map[string]string)

	if v.TrimmedTitle() == "" {
		errs["title"] = "Title is required"
	}
	if len(v.Description) > maxDescriptionLength {
		errs["description"] = "Description is too long"
	}

	return errs
}
