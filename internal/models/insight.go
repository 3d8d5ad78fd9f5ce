package models

import (
	"encoding/json"
	"fmt"
)

type InteractiveKind string

const (
	KindQuiz           InteractiveKind = "quiz"
	KindSelfAssessment InteractiveKind = "self-assessment"
	KindScenario       InteractiveKind = "scenario"
	KindReflection     InteractiveKind = "reflection"
)

// Interactive is the closed set of exercise payloads an insight can carry.
type Interactive interface {
	Kind() InteractiveKind
	interactive()
}

type Quiz struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Explanation string   `json:"explanation,omitempty"`
}

type SelfAssessment struct {
	Prompt     string   `json:"prompt"`
	Statements []string `json:"statements"`
	ScaleMin   int      `json:"scaleMin"`
	ScaleMax   int      `json:"scaleMax"`
}

type ScenarioChoice struct {
	Text    string `json:"text"`
	Outcome string `json:"outcome"`
}

type Scenario struct {
	Situation string           `json:"situation"`
	Choices   []ScenarioChoice `json:"choices"`
}

type ReflectionPrompt struct {
	Prompt    string   `json:"prompt"`
	Followups []string `json:"followups,omitempty"`
}

func (Quiz) Kind() InteractiveKind             { return KindQuiz }
func (SelfAssessment) Kind() InteractiveKind   { return KindSelfAssessment }
func (Scenario) Kind() InteractiveKind         { return KindScenario }
func (ReflectionPrompt) Kind() InteractiveKind { return KindReflection }

func (Quiz) interactive()             {}
func (SelfAssessment) interactive()   {}
func (Scenario) interactive()         {}
func (ReflectionPrompt) interactive() {}

// Insight is read-only display content. Interactive may be nil.
type Insight struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Category    string      `json:"category,omitempty"`
	Body        string      `json:"body"`
	Interactive Interactive `json:"-"`
}

type interactiveEnvelope struct {
	Type    InteractiveKind `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type insightAlias Insight

type insightJSON struct {
	insightAlias
	Interactive *interactiveEnvelope `json:"interactive,omitempty"`
}

func (i Insight) MarshalJSON() ([]byte, error) {
	out := insightJSON{insightAlias: insightAlias(i)}
	if i.Interactive != nil {
		payload, err := json.Marshal(i.Interactive)
		if err != nil {
			return nil, err
		}
		out.Interactive = &interactiveEnvelope{Type: i.Interactive.Kind(), Payload: payload}
	}
	return json.Marshal(out)
}

func (i *Insight) UnmarshalJSON(data []byte) error {
	var in insightJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*i = Insight(in.insightAlias)
	if in.Interactive == nil {
		return nil
	}

	var target Interactive
	switch in.Interactive.Type {
	case KindQuiz:
		var q Quiz
		if err := json.Unmarshal(in.Interactive.Payload, &q); err != nil {
			return fmt.Errorf("insight %s quiz payload: %w", i.ID, err)
		}
		target = q
	case KindSelfAssessment:
		var s SelfAssessment
		if err := json.Unmarshal(in.Interactive.Payload, &s); err != nil {
			return fmt.Errorf("insight %s self-assessment payload: %w", i.ID, err)
		}
		target = s
	case KindScenario:
		var s Scenario
		if err := json.Unmarshal(in.Interactive.Payload, &s); err != nil {
			return fmt.Errorf("insight %s scenario payload: %w", i.ID, err)
		}
		target = s
	case KindReflection:
		var r ReflectionPrompt
		if err := json.Unmarshal(in.Interactive.Payload, &r); err != nil {
			return fmt.Errorf("insight %s reflection payload: %w", i.ID, err)
		}
		target = r
	default:
		return fmt.Errorf("insight %s has unknown interactive type %q", i.ID, in.Interactive.Type)
	}
	i.Interactive = target
	return nil
}
