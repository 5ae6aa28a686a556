package domain

// Club is a campus club. Club ids are short human-assigned codes
// such as "CS01", not generated keys.
type Club struct {
	ID          string
	Name        string
	Description string
}
