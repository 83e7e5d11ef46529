package testutil

import "strings"

// Prompter replays scripted answers in order. When the script runs out it
// behaves like an empty line and the question's default wins.
type Prompter struct {
	Answers []string
	Asked   []string
}

func (p *Prompter) next(question string) string {
	p.Asked = append(p.Asked, question)
	if len(p.Answers) == 0 {
		return ""
	}
	a := p.Answers[0]
	p.Answers = p.Answers[1:]
	return a
}

func (p *Prompter) Ask(question, def string) (string, error) {
	a := strings.TrimSpace(p.next(question))
	if a == "" {
		return def, nil
	}
	return a, nil
}

func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(p.next(question))) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
