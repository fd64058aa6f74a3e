package rpsls

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	promptChoice    = "Enter your choice (rock, scissors, paper, lizard, spock): "
	promptPlayAgain = "Do you want to play again? (y/n): "

	msgInvalidChoice   = "Invalid choice. Please try again."
	msgInvalidResponse = "Invalid input. Please enter 'y' or 'n'."
	msgComputerChose   = "Computer chose: %s"
	msgYouWin          = "You win!"
	msgYouLose         = "You lose!"
	msgTie             = "It's a tie!"
	msgFinalScore      = "Final score: %d win(s), %d loss(es), %d tie(s)"
)

// Picker selects the computer's choice for a round.
type Picker func() Choice

// RandomPicker picks uniformly from Choices using r.
func RandomPicker(r *rand.Rand) Picker {
	return func() Choice {
		return Choices[r.IntN(len(Choices))]
	}
}

// Score counts the rounds of a game.
type Score struct {
	Wins   int
	Losses int
	Ties   int
}

func (s *Score) add(outcome Outcome) {
	switch outcome {
	case UserWins:
		s.Wins++
	case ComputerWins:
		s.Losses++
	default:
		s.Ties++
	}
}

// Game plays rounds on a line-oriented console.
type Game struct {
	lines *bufio.Scanner
	out   io.Writer
	pick  Picker
	score Score

	win  lipgloss.Style
	lose lipgloss.Style
	tie  lipgloss.Style
}

// Option configures a Game.
type Option func(*Game)

// WithPicker replaces the random computer.
func WithPicker(pick Picker) Option {
	return func(g *Game) {
		g.pick = pick
	}
}

// WithSeed makes the random computer deterministic.
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.pick = RandomPicker(rand.New(rand.NewPCG(seed, seed)))
	}
}

// NewGame creates a Game reading answers from in and writing to out.
func NewGame(in io.Reader, out io.Writer, opts ...Option) *Game {
	renderer := lipgloss.NewRenderer(out)

	g := &Game{
		lines: bufio.NewScanner(in),
		out:   out,
		pick:  RandomPicker(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))), //nolint:gosec
		win:   renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")),
		lose:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#E53935")),
		tie:   renderer.NewStyle().Foreground(lipgloss.Color("#FFC107")),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Play runs rounds until the user declines another one, the input ends or ctx is done.
// The final score is printed in every case.
func (g *Game) Play(ctx context.Context) (Score, error) {
	defer func() {
		g.printf(msgFinalScore+"\n", g.score.Wins, g.score.Losses, g.score.Ties)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return g.score, err
		}

		user, ok := g.readChoice()
		if !ok {
			return g.score, g.lines.Err()
		}

		computer := g.pick()
		outcome := Judge(user, computer)
		g.score.add(outcome)

		g.printf(msgComputerChose+"\n", computer)
		g.printf("%s\n", g.render(outcome))

		again, ok := g.readPlayAgain()
		if !ok {
			return g.score, g.lines.Err()
		}
		if !again {
			return g.score, nil
		}
	}
}

func (g *Game) readChoice() (Choice, bool) {
	for {
		g.printf(promptChoice)

		line, ok := g.readLine()
		if !ok {
			return Invalid, false
		}

		if choice := ParseChoice(line); choice != Invalid {
			return choice, true
		}

		g.printf(msgInvalidChoice + "\n")
	}
}

func (g *Game) readPlayAgain() (bool, bool) {
	for {
		g.printf(promptPlayAgain)

		line, ok := g.readLine()
		if !ok {
			return false, false
		}

		switch strings.Trim(line, " \t") {
		case "y":
			return true, true
		case "n":
			return false, true
		}

		g.printf(msgInvalidResponse + "\n")
	}
}

func (g *Game) readLine() (string, bool) {
	if !g.lines.Scan() {
		g.printf("\n")
		return "", false
	}

	return strings.TrimRight(g.lines.Text(), "\r"), true
}

func (g *Game) render(outcome Outcome) string {
	switch outcome {
	case UserWins:
		return g.win.Render(msgYouWin)
	case ComputerWins:
		return g.lose.Render(msgYouLose)
	default:
		return g.tie.Render(msgTie)
	}
}

func (g *Game) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(g.out, format, args...)
}
