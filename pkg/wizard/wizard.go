package wizard

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Question is one step of the five-question journey.
type Question struct {
	Title    string
	Subtitle string
}

// Questions is the fixed journey sequence, in order.
var Questions = []Question{
	{
		Title:    "What's the main subject of your dream?",
		Subtitle: "e.g., dream girl, dream boy, fantasy creature, magical landscape",
	},
	{
		Title:    "What does the place you're thinking of look and feel like?",
		Subtitle: "e.g., enchanted forest, futuristic city, peaceful beach, mystical realm",
	},
	{
		Title:    "What mood or atmosphere should it have?",
		Subtitle: "e.g., serene and peaceful, mysterious and dark, vibrant and energetic",
	},
	{
		Title:    "What colors dominate your dream?",
		Subtitle: "e.g., soft pastels, bold neons, warm sunset tones, cool blues",
	},
	{
		Title:    "Any specific details or magical elements?",
		Subtitle: "e.g., glowing effects, sparkles, flowing hair, ethereal lighting",
	},
}

const seedSeparator = ", "

type Phase string

const (
	PhaseQuestioning Phase = "questioning"
	PhaseGenerating  Phase = "generating"
)

var (
	ErrBlankAnswer = errors.New("answer must not be blank")
	ErrFinalized   = errors.New("journey already finalized")
)

// Journey tracks one pass through the question sequence. Once the last
// answer is recorded the journey finalizes: the answer set becomes
// immutable and the seed prompt is available. A journey is shared
// between concurrent requests, so all state sits behind its mutex.
type Journey struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	phase   Phase
	index   int
	answers []string
}

func NewJourney() *Journey {
	return &Journey{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		phase:     PhaseQuestioning,
		answers:   make([]string, len(Questions)),
	}
}

func (j *Journey) Phase() Phase {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.phase
}

func (j *Journey) Index() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.index
}

func (j *Journey) Finalized() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.finalized()
}

func (j *Journey) finalized() bool { return j.phase == PhaseGenerating }

// Current returns the question the journey is waiting on.
func (j *Journey) Current() Question {
	j.mu.Lock()
	defer j.mu.Unlock()
	return Questions[j.index]
}

// Advance records answer for the current question and moves forward.
// A blank answer leaves the journey unchanged. Answering the last
// question finalizes the journey.
func (j *Journey) Advance(answer string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.finalized() {
		return ErrFinalized
	}
	if strings.TrimSpace(answer) == "" {
		return ErrBlankAnswer
	}

	j.answers[j.index] = answer
	if j.index < len(Questions)-1 {
		j.index++
		return nil
	}
	j.phase = PhaseGenerating
	return nil
}

// Retreat steps back one question. At the first question it is a no-op.
func (j *Journey) Retreat() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.finalized() || j.index == 0 {
		return
	}
	j.index--
}

// Answers returns a copy of the recorded answers in question order.
func (j *Journey) Answers() []string {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]string, len(j.answers))
	copy(out, j.answers)
	return out
}

// SeedPrompt joins the finalized answers into the raw generation prompt.
func (j *Journey) SeedPrompt() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return ComposeSeed(j.answers)
}

// ComposeSeed joins wizard answers with the seed separator, in order.
func ComposeSeed(answers []string) string {
	trimmed := make([]string, 0, len(answers))
	for _, a := range answers {
		if s := strings.TrimSpace(a); s != "" {
			trimmed = append(trimmed, s)
		}
	}
	return strings.Join(trimmed, seedSeparator)
}
