// Package rpsls implements Rock-Paper-Scissors-Lizard-Spock: the rules, input parsing and a console game loop.
package rpsls

import "strings"

// Choice is one of the five hand signs, or Invalid.
type Choice int

const (
	Invalid  Choice = -1
	Rock     Choice = 0
	Scissors Choice = 1
	Paper    Choice = 2
	Lizard   Choice = 3
	Spock    Choice = 4
)

// Choices lists the valid choices in their numeric order.
var Choices = []Choice{Rock, Scissors, Paper, Lizard, Spock}

var choiceNames = map[Choice]string{
	Rock:     "Rock",
	Scissors: "Scissors",
	Paper:    "Paper",
	Lizard:   "Lizard",
	Spock:    "Spock",
}

func (c Choice) String() string {
	if name, ok := choiceNames[c]; ok {
		return name
	}

	return "Invalid"
}

// Outcome is the result of a round from the user's point of view.
type Outcome int

const (
	ComputerWins Outcome = -1
	Tie          Outcome = 0
	UserWins     Outcome = 1
)

// beats maps each choice to the two choices it defeats.
var beats = map[Choice][2]Choice{
	Rock:     {Scissors, Lizard},
	Paper:    {Rock, Spock},
	Scissors: {Paper, Lizard},
	Lizard:   {Paper, Spock},
	Spock:    {Rock, Scissors},
}

// Judge decides a round between two valid choices.
func Judge(user, computer Choice) Outcome {
	if user == computer {
		return Tie
	}

	if defeated, ok := beats[user]; ok && (defeated[0] == computer || defeated[1] == computer) {
		return UserWins
	}

	return ComputerWins
}

var aliases = map[string]Choice{
	"0":        Rock,
	"1":        Scissors,
	"2":        Paper,
	"3":        Lizard,
	"4":        Spock,
	"5":        Spock,
	"rock":     Rock,
	"scissors": Scissors,
	"paper":    Paper,
	"lizard":   Lizard,
	"spock":    Spock,
	"바위":       Rock,
	"가위":       Scissors,
	"보":        Paper,
	"도마뱀":      Lizard,
	"스팍":       Spock,
	"스포크":      Spock,
}

// ParseChoice reads a choice from user input. Surrounding spaces and tabs are ignored
// and names are case-insensitive. Digits 0 to 4 select a choice by number, 5 is Spock.
func ParseChoice(input string) Choice {
	normalized := strings.ToLower(strings.Trim(input, " \t"))
	if choice, ok := aliases[normalized]; ok {
		return choice
	}

	return Invalid
}
