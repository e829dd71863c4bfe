package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

var joinCodeWords = []string{
	"SOCCER", "GOAL", "KICK", "PASS", "DRIBBLE", "TACKLE", "SAVE", "SCORE",
	"PITCH", "FIELD", "BALL", "NET", "POST", "CORNER", "FREE", "PENALTY",
}

var joinCodeColors = []string{
	"RED", "BLUE", "GREEN", "YELLOW", "BLACK", "WHITE", "GOLD", "SILVER",
	"ORANGE", "PURPLE", "PINK", "BROWN", "GRAY", "CYAN", "LIME", "NAVY",
}

// randomJoinCode builds a WORD-COLOR-N code with N in 1..99.
func randomJoinCode() (string, error) {
	word, err := pickRandom(joinCodeWords)
	if err != nil {
		return "", fmt.Errorf("pick join code word: %w", err)
	}
	color, err := pickRandom(joinCodeColors)
	if err != nil {
		return "", fmt.Errorf("pick join code color: %w", err)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(99))
	if err != nil {
		return "", fmt.Errorf("pick join code number: %w", err)
	}
	return fmt.Sprintf("%s-%s-%d", word, color, n.Int64()+1), nil
}

// fallbackJoinCode is used when random codes keep colliding.
func fallbackJoinCode(now time.Time) string {
	ms := now.UnixMilli()
	return fmt.Sprintf("ROOM-%06d", ms%1000000)
}

func pickRandom(values []string) (string, error) {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(values))))
	if err != nil {
		return "", err
	}
	return values[idx.Int64()], nil
}
