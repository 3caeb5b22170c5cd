package prompt

import "fmt"

// Scripted answers prompts from canned values. Choices and Answers are consumed in order;
// once Choices runs out the first option is picked, once Answers runs out Enter is assumed.
type Scripted struct {
	Chooser ChooserFunc
	Choices []int
	Answers []string

	// Transcript records every title and message shown, in order.
	Transcript []string
}

// Choose implements Prompter.
func (s *Scripted) Choose(title string, options []string) (int, error) {
	s.Transcript = append(s.Transcript, title)
	if s.Chooser != nil {
		return s.Chooser(title, options)
	}
	i := 0
	if len(s.Choices) > 0 {
		i, s.Choices = s.Choices[0], s.Choices[1:]
	}
	if i < 0 || i >= len(options) {
		return 0, fmt.Errorf("scripted choice %d out of range for %q", i, title)
	}
	return i, nil
}

// Confirm implements Prompter.
func (s *Scripted) Confirm(message string) (bool, error) {
	answer, err := s.Ask(message)
	return answer == "", err
}

// Ask implements Prompter.
func (s *Scripted) Ask(message string) (string, error) {
	s.Transcript = append(s.Transcript, message)
	if len(s.Answers) == 0 {
		return "", nil
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, nil
}

// Pause implements Prompter.
func (s *Scripted) Pause(message string) {
	s.Transcript = append(s.Transcript, message)
}
