package model

// BonusType identifies a scoring bonus attached to a board cell
type BonusType string

const (
	BonusNone         BonusType = ""
	BonusDoubleLetter BonusType = "DL"
	BonusTripleLetter BonusType = "TL"
	BonusDoubleWord   BonusType = "DW"
	BonusTripleWord   BonusType = "TW"
)

// LetterMultiplier returns the factor applied to a single letter on this bonus
func (b BonusType) LetterMultiplier() int {
	switch b {
	case BonusDoubleLetter:
		return 2
	case BonusTripleLetter:
		return 3
	default:
		return 1
	}
}

// WordMultiplier returns the factor applied to the whole word on this bonus
func (b BonusType) WordMultiplier() int {
	switch b {
	case BonusDoubleWord:
		return 2
	case BonusTripleWord:
		return 3
	default:
		return 1
	}
}

// bonusLayout is the fixed bonus-square table. It is never modified;
// bonuses keep applying after a cell is covered.
var bonusLayout = buildBonusLayout()

func buildBonusLayout() map[Position]BonusType {
	layout := make(map[Position]BonusType)
	set := func(bonus BonusType, cells ...[2]int) {
		for _, c := range cells {
			layout[Position{Row: c[0], Col: c[1]}] = bonus
		}
	}

	set(BonusTripleWord,
		[2]int{0, 0}, [2]int{0, 7}, [2]int{0, 14},
		[2]int{7, 0}, [2]int{7, 14}, [2]int{14, 0},
		[2]int{14, 7}, [2]int{14, 14},
	)

	set(BonusDoubleWord,
		[2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3}, [2]int{4, 4},
		[2]int{1, 13}, [2]int{2, 12}, [2]int{3, 11}, [2]int{4, 10},
		[2]int{13, 1}, [2]int{12, 2}, [2]int{11, 3}, [2]int{10, 4},
		[2]int{13, 13}, [2]int{12, 12}, [2]int{11, 11}, [2]int{10, 10},
		[2]int{7, 7}, // start square
	)

	set(BonusTripleLetter,
		[2]int{1, 5}, [2]int{1, 9}, [2]int{5, 1}, [2]int{5, 5},
		[2]int{5, 9}, [2]int{5, 13}, [2]int{9, 1}, [2]int{9, 5},
		[2]int{9, 9}, [2]int{9, 13}, [2]int{13, 5}, [2]int{13, 9},
	)

	set(BonusDoubleLetter,
		[2]int{0, 3}, [2]int{0, 11}, [2]int{2, 6}, [2]int{2, 8},
		[2]int{3, 0}, [2]int{3, 7}, [2]int{3, 14}, [2]int{6, 2},
		[2]int{6, 6}, [2]int{6, 8}, [2]int{6, 12}, [2]int{7, 3},
		[2]int{7, 11}, [2]int{8, 2}, [2]int{8, 6}, [2]int{8, 8},
		[2]int{8, 12}, [2]int{11, 0}, [2]int{11, 7}, [2]int{11, 14},
		[2]int{12, 6}, [2]int{12, 8}, [2]int{14, 3}, [2]int{14, 11},
	)

	return layout
}

// BonusAt returns the bonus for a cell, or BonusNone if the cell has no
// bonus or lies outside the board. Callers bounds-check separately.
func BonusAt(pos Position) BonusType {
	return bonusLayout[pos]
}

// BonusCells returns every cell carrying the given bonus
func BonusCells(bonus BonusType) []Position {
	var cells []Position
	for pos, b := range bonusLayout {
		if b == bonus {
			cells = append(cells, pos)
		}
	}
	return cells
}
