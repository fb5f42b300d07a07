package board

// Query selects which stored scores a board starts from.
type Query struct {
	// All loads every run instead of the best run per player and command.
	All bool

	// Limit caps the loaded rows; 0 loads everything.
	Limit int
}
