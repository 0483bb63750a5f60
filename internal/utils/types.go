package utils

// StringPtr returns a pointer to a string (helper function)
func StringPtr(s string) *string {
	return &s
}
