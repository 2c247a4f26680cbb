package handlers

import (
	"time"

	"github.com/gorilla/schema"
	"github.com/vancomm/match3-server/internal/match3"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type CreateNewGameDTO struct {
	Width    int `schema:"width"`
	Height   int `schema:"height"`
	Level    int `schema:"level"`
	GemTypes int `schema:"gems"`
}

func ParseCreateNewGameDTO(src map[string][]string) (CreateNewGameDTO, error) {
	var dto CreateNewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// Params fills the fields left out of the request from defaults.
func (dto CreateNewGameDTO) Params(defaults match3.GameParams) match3.GameParams {
	params := match3.GameParams(dto)
	if params.Width == 0 {
		params.Width = defaults.Width
	}
	if params.Height == 0 {
		params.Height = defaults.Height
	}
	if params.Level == 0 {
		params.Level = defaults.Level
	}
	if params.GemTypes == 0 {
		params.GemTypes = defaults.GemTypes
	}
	return params
}

type SwapDTO struct {
	FromRow int `schema:"from_row,required"`
	FromCol int `schema:"from_col,required"`
	ToRow   int `schema:"to_row,required"`
	ToCol   int `schema:"to_col,required"`
}

func ParseSwapDTO(src map[string][]string) (SwapDTO, error) {
	var dto SwapDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (dto SwapDTO) Positions() (from, to match3.Position) {
	return match3.Position{Row: dto.FromRow, Col: dto.FromCol},
		match3.Position{Row: dto.ToRow, Col: dto.ToCol}
}

type ToolDTO struct {
	Tool string `schema:"tool,required"`
	Row  int    `schema:"row"`
	Col  int    `schema:"col"`
}

func ParseToolDTO(src map[string][]string) (ToolDTO, error) {
	var dto ToolDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type CellDTO struct {
	ID      match3.CellID      `json:"id"`
	Type    match3.TokenType   `json:"type"`
	Special match3.SpecialKind `json:"special,omitempty"`
	Status  match3.Status      `json:"status,omitempty"`
}

func NewBoardDTO(b *match3.Board) [][]CellDTO {
	rows := b.Rows()
	board := make([][]CellDTO, len(rows))
	for r, row := range rows {
		board[r] = make([]CellDTO, len(row))
		for c, cell := range row {
			board[r][c] = CellDTO{
				ID:      cell.ID,
				Type:    cell.Type,
				Special: cell.Special,
				Status:  cell.Status,
			}
		}
	}
	return board
}

type GameSessionDTO struct {
	GameSessionID string             `json:"game_session_id"`
	Token         string             `json:"token,omitempty"`
	Board         [][]CellDTO        `json:"board"`
	Width         int                `json:"width"`
	Height        int                `json:"height"`
	Level         int                `json:"level"`
	TargetScore   int64              `json:"target_score"`
	Score         int64              `json:"score"`
	TotalScore    int64              `json:"total_score"`
	MovesLeft     int                `json:"moves_left"`
	Combo         int                `json:"combo"`
	Allowed       []match3.TokenType `json:"allowed"`
	Inventory     match3.Inventory   `json:"inventory"`
	Won           bool               `json:"won"`
	Lost          bool               `json:"lost"`
	TimedOut      bool               `json:"timed_out"`
	RemainingMs   *int64             `json:"remaining_ms,omitempty"`
	StartedAt     int64              `json:"started_at"`
	EndedAt       *int64             `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(
	gameSessionID string,
	startedAt time.Time,
	now time.Time,
	g *match3.GameState,
) *GameSessionDTO {
	var remaining *int64
	if g.Config.TimeLimit > 0 {
		ms := g.Remaining(now).Milliseconds()
		remaining = &ms
	}
	return &GameSessionDTO{
		GameSessionID: gameSessionID,
		Board:         NewBoardDTO(g.Board),
		Width:         g.Board.Width(),
		Height:        g.Board.Height(),
		Level:         g.Level,
		TargetScore:   g.Config.TargetScore,
		Score:         g.Score,
		TotalScore:    g.TotalScore,
		MovesLeft:     g.MovesLeft,
		Combo:         g.Combo,
		Allowed:       g.Allowed,
		Inventory:     g.Inventory,
		Won:           g.Won,
		Lost:          g.Lost,
		TimedOut:      g.TimedOut,
		RemainingMs:   remaining,
		StartedAt:     startedAt.UnixMilli(),
	}
}

func (dto *GameSessionDTO) SetEndedAt(endedAt *time.Time) {
	if endedAt == nil {
		dto.EndedAt = nil
		return
	}
	e := endedAt.UnixMilli()
	dto.EndedAt = &e
}

type FrameDTO struct {
	Phase match3.Phase `json:"phase"`
	Pass  int          `json:"pass"`
	Board [][]CellDTO  `json:"board"`
}

func NewFrameDTOs(frames []match3.Frame) []FrameDTO {
	dtos := make([]FrameDTO, len(frames))
	for i, f := range frames {
		dtos[i] = FrameDTO{Phase: f.Phase, Pass: f.Pass, Board: NewBoardDTO(f.Board)}
	}
	return dtos
}

type TurnDTO struct {
	Valid   bool             `json:"valid"`
	Combo   match3.ComboKind `json:"combo"`
	Score   int64            `json:"score"`
	Chain   int              `json:"chain"`
	Capped  bool             `json:"capped,omitempty"`
	Passes  []match3.Pass    `json:"passes"`
	Session *GameSessionDTO  `json:"session"`
}

func NewTurnDTO(valid bool, combo match3.ComboKind, res match3.Result, session *GameSessionDTO) *TurnDTO {
	passes := res.Passes
	if passes == nil {
		passes = []match3.Pass{}
	}
	return &TurnDTO{
		Valid:   valid,
		Combo:   combo,
		Score:   res.Score,
		Chain:   res.Combo,
		Capped:  res.Capped,
		Passes:  passes,
		Session: session,
	}
}

type HintDTO struct {
	Move match3.Move `json:"move"`
}
