package tictactoe

import "github.com/rocketscienceinc/tictactoe-arena/internal/entity"

const gridSize = 3

// Outcome of evaluating the board after an accepted move.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeDraw
)

// directions are the four line axes through any cell: horizontal,
// vertical and both diagonals.
var directions = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// Evaluate inspects the grid after a move into lastMove and reports whether
// that move completed a line of three, filled the board without one, or
// left the game open. It walks outward from the played cell along each
// axis, so only cells reachable from the move are touched. The move must
// already be written to the grid; lastMove must address an occupied cell.
func Evaluate(grid *entity.Grid, lastMove int) (Outcome, entity.Seat) {
	seat := *grid[lastMove]

	col := lastMove % gridSize
	row := lastMove / gridSize

	for _, direction := range directions {
		count := 1

		for _, sign := range [2]int{-1, 1} {
			x := col + direction[0]*sign
			y := row + direction[1]*sign

			for x >= 0 && x < gridSize && y >= 0 && y < gridSize && sameSeat(grid, y*gridSize+x, seat) {
				count++
				x += direction[0] * sign
				y += direction[1] * sign
			}
		}

		if count >= gridSize {
			return OutcomeWin, seat
		}
	}

	if grid.IsFull() {
		return OutcomeDraw, seat
	}

	return OutcomeNone, seat
}

func sameSeat(grid *entity.Grid, cell int, seat entity.Seat) bool {
	return grid[cell] != nil && *grid[cell] == seat
}
