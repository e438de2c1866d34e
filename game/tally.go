package game

// ScoreSink receives scoring events from a session.
type ScoreSink interface {
	// Dropped reports a hard drop of distance rows.
	Dropped(distance int)
	// LinesCleared reports rows removed by a single lock.
	LinesCleared(lines int)
}

var lineScores = [...]int{0, 100, 300, 500, 800}

// Tally is the default score keeper. A hard drop scores one point per row;
// clearing lines scores by the classic table, multiplied by level+1.
type Tally struct {
	Score int
	Lines int
	Level int
	Drops int
}

func (t *Tally) Dropped(distance int) {
	t.Score += distance
	t.Drops++
}

func (t *Tally) LinesCleared(lines int) {
	if lines <= 0 {
		return
	}
	t.Score += lineScores[min(lines, len(lineScores)-1)] * (t.Level + 1)
	t.Lines += lines
	t.Level = t.Lines / 10
}

// Reset zeroes the tally.
func (t *Tally) Reset() {
	*t = Tally{}
}
