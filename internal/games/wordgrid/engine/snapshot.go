package engine

// TileView is a tile together with its current status.
type TileView struct {
	Tile
	Status TileStatus
}

// Snapshot is a consistent copy of everything a front end needs to draw a
// session.
type Snapshot struct {
	Columns       int
	Rows          int
	Tiles         []TileView
	Path          []TileID
	Word          string
	Score         int
	MaxScore      int
	MinWordLength int
	Status        Status
	Solved        []string
	LastResult    *Result
	ResetPending  bool
}

// Snapshot captures the session state under a single lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	tiles := s.grid.Tiles()
	views := make([]TileView, len(tiles))
	for i, t := range tiles {
		views[i] = TileView{Tile: t, Status: s.selection.Status(t.ID)}
	}

	var last *Result
	if s.last != nil {
		r := *s.last
		last = &r
	}

	return Snapshot{
		Columns:       s.grid.Columns(),
		Rows:          s.grid.Rows(),
		Tiles:         views,
		Path:          s.selection.Path(),
		Word:          s.selection.Word(),
		Score:         s.score,
		MaxScore:      s.dict.Size(),
		MinWordLength: s.dict.MinWordLength(),
		Status:        s.status,
		Solved:        s.solved.Words(),
		LastResult:    last,
		ResetPending:  s.pending,
	}
}
