package urltools

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultShortenLength is the length Manage shortens URLs to.
const DefaultShortenLength = 30

var (
	// ErrEmptyURLList is returned when there is nothing to process.
	ErrEmptyURLList = errors.New("url list is empty")

	// ErrUnknownAction is returned for an action other than checkValid, format and shorten.
	ErrUnknownAction = errors.New("unknown action")
)

// Action selects what Manage does with each URL.
type Action string

const (
	ActionCheckValid Action = "checkValid"
	ActionFormat     Action = "format"
	ActionShorten    Action = "shorten"
)

// ParseAction maps an action name to an Action.
// The command line spelling "validate" is accepted for checkValid.
func ParseAction(s string) (Action, error) {
	switch strings.TrimSpace(s) {
	case string(ActionCheckValid), "validate":
		return ActionCheckValid, nil
	case string(ActionFormat):
		return ActionFormat, nil
	case string(ActionShorten):
		return ActionShorten, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// Manage applies action to every URL in order.
// checkValid yields "1" or "0", shorten uses DefaultShortenLength.
func Manage(urls []string, action Action) ([]string, error) {
	return manage(urls, action, DefaultShortenLength)
}

func manage(urls []string, action Action, shortenLength int) ([]string, error) {
	if len(urls) == 0 {
		return nil, ErrEmptyURLList
	}

	apply, err := actionFunc(action, shortenLength)
	if err != nil {
		return nil, err
	}

	results := make([]string, len(urls))
	for i, url := range urls {
		results[i] = apply(url)
	}

	return results, nil
}

func actionFunc(action Action, shortenLength int) (func(string) string, error) {
	switch action {
	case ActionCheckValid:
		return func(url string) string {
			if IsValid(url) {
				return "1"
			}
			return "0"
		}, nil
	case ActionFormat:
		return Format, nil
	case ActionShorten:
		return func(url string) string { return Shorten(url, shortenLength) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}
