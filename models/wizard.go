// models/wizard.go
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// WizardStep is the single typed position of a drafting session. Exactly one
// step is active at a time; there are no per-step boolean flags to fall out
// of sync.
type WizardStep int

const (
	StepService WizardStep = iota
	StepQuestions
	StepReview
	StepDone
)

// MarshalJSON emits the step name so API clients and the session store both
// see "questions" rather than a bare integer.
func (s WizardStep) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *WizardStep) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	switch name {
	case "service":
		*s = StepService
	case "questions":
		*s = StepQuestions
	case "review":
		*s = StepReview
	case "done":
		*s = StepDone
	default:
		return fmt.Errorf("unknown wizard step %q", name)
	}
	return nil
}

func (s WizardStep) String() string {
	switch s {
	case StepService:
		return "service"
	case StepQuestions:
		return "questions"
	case StepReview:
		return "review"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// WizardSession is the state of one guided document-drafting flow, owned by
// the wizard service and persisted in Redis for the life of the draft.
type WizardSession struct {
	ID         string            `json:"id"`
	FormID     string            `json:"form_id"`
	Step       WizardStep        `json:"step"`
	Answers    map[string]string `json:"answers"`
	OutputPath string            `json:"output_path,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
