package types

// Migration is a single schema change. SQL holds both directions, the down
// statements first, then the "-- +migrate Up" marker and the up statements.
type Migration struct {
	ID     string
	SQL    string
	Prefix string
}
