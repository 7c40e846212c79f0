package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/trivia-duel/internal/core"
)

func TestTimeBonus(t *testing.T) {
	tests := []struct {
		timeLeft, timePerTurn, maxBonus int
		want                            int
	}{
		{5, 20, 10, 3}, // 2.5 rounds up
		{20, 20, 10, 10},
		{10, 20, 10, 5},
		{1, 20, 10, 1},
		{0, 20, 10, 0},
		{25, 20, 10, 10},
		{7, 0, 10, 0},
		{7, 20, 0, 0},
		{-3, 20, 10, 0},
	}
	for _, tt := range tests {
		got := TimeBonus(tt.timeLeft, tt.timePerTurn, tt.maxBonus)
		assert.Equal(t, tt.want, got, "TimeBonus(%d, %d, %d)", tt.timeLeft, tt.timePerTurn, tt.maxBonus)
	}
}

func TestParseRoundWinnerPolicy(t *testing.T) {
	p, err := ParseRoundWinnerPolicy("round")
	require.NoError(t, err)
	assert.Equal(t, RoundWinnerRound, p)

	_, err = ParseRoundWinnerPolicy("majority")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigValidateFillsPolicy(t *testing.T) {
	cfg := Config{Rounds: 1, TimePerTurn: 1}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, RoundWinnerCumulative, cfg.RoundWinner)
}

func TestResultOf(t *testing.T) {
	base := func(phase Phase, s0, s1 int) GameState {
		s := placeholderState(DefaultConfig())
		s.Phase = phase
		s.Players[0].Score = s0
		s.Players[1].Score = s1
		return s
	}

	running := ResultOf(base(PhaseTurnActive, 30, 10))
	assert.Equal(t, EndReasonNone, running.Reason)
	assert.Equal(t, NoPlayer, running.Winner)
	assert.False(t, running.Draw())

	done := ResultOf(base(PhaseGameOver, 10, 30))
	assert.Equal(t, EndReasonCompleted, done.Reason)
	assert.Equal(t, core.Player2, done.Winner)
	assert.Equal(t, [2]int{10, 30}, done.Scores)

	tied := ResultOf(base(PhaseGameOver, 20, 20))
	assert.True(t, tied.Draw())

	forfeit := base(PhaseForfeited, 0, 0)
	forfeit.ForfeitedBy = core.Player2
	r := ResultOf(forfeit)
	assert.Equal(t, EndReasonForfeit, r.Reason)
	assert.Equal(t, core.Player1, r.Winner)
	assert.False(t, r.Draw())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "turn_active", PhaseTurnActive.String())
	assert.Equal(t, "forfeited", PhaseForfeited.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
