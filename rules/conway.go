package rules

const (
	// SurviveMin and SurviveMax bound the neighbor count that keeps a live cell alive
	SurviveMin = 2
	SurviveMax = 3
	// Birth is the exact neighbor count that brings a dead cell to life
	Birth = 3
)

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

A live cell survives with 2 or 3 live neighbors and dies otherwise.
A dead cell becomes alive with exactly 3 live neighbors.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return neighbors >= SurviveMin && neighbors <= SurviveMax
	}
	return neighbors == Birth
}
