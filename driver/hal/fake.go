package hal

// FakePress scripts one key press on the fake keypad: the matrix position
// and how many row samples report it held while its column is driven.
type FakePress struct {
	Col, Row int
	Hold     int
}

// FakeKeypadPort replays a script of presses. A press is only visible
// while its column is driven, mirroring the matrix electrically. Once its
// hold count is exhausted the press is consumed.
type FakeKeypadPort struct {
	Script []FakePress

	active [4]bool
	Reads  int
}

// Press appends a press that releases after two samples, enough for the
// scanner to detect it and then observe the release.
func (p *FakeKeypadPort) Press(col, row int) {
	p.Script = append(p.Script, FakePress{Col: col, Row: row, Hold: 2})
}

func (p *FakeKeypadPort) DriveColumn(col int, active bool) error {
	p.active[col] = active
	return nil
}

func (p *FakeKeypadPort) ReadRows() ([4]bool, error) {
	p.Reads++
	var rows [4]bool
	if len(p.Script) == 0 {
		return rows, nil
	}
	press := &p.Script[0]
	if !p.active[press.Col] {
		return rows, nil
	}
	if press.Hold <= 0 {
		p.Script = p.Script[1:]
		return rows, nil
	}
	press.Hold--
	rows[press.Row] = true
	if press.Hold == 0 {
		p.Script = p.Script[1:]
	}
	return rows, nil
}

// FakeDisplayPort records every frame written to it.
type FakeDisplayPort struct {
	Frames []Frame
}

func (p *FakeDisplayPort) WriteFrame(f Frame) error {
	p.Frames = append(p.Frames, f)
	return nil
}

func (p *FakeDisplayPort) Last() Frame {
	if len(p.Frames) == 0 {
		return Frame{}
	}
	return p.Frames[len(p.Frames)-1]
}
