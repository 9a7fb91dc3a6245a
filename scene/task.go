package scene

import (
	"fmt"
	"sort"

	"github.com/creativemill/taskops/fallback"
)

// DurationClass is one of the fixed durations a provider accepts, in
// seconds. Source durations are never passed through as-is; they are
// clamped to the nearest class.
type DurationClass int

// Allowed duration classes.
const (
	Duration10s DurationClass = 10
	Duration15s DurationClass = 15
)

// ClampDuration rounds an arbitrary source duration to the nearest
// allowed class. Values at or above the midpoint round up.
func ClampDuration(seconds float64) DurationClass {
	if seconds < 12.5 {
		return Duration10s
	}
	return Duration15s
}

// ReferenceKind classifies a visual reference.
type ReferenceKind string

const (
	// KindSubject is a character or spokesperson reference. Subjects
	// lead the composition.
	KindSubject ReferenceKind = "subject"
	// KindProduct is a product shot reference.
	KindProduct ReferenceKind = "product"
)

// Reference is one visual reference image attached to a scene.
type Reference struct {
	Kind ReferenceKind
	// Role is the provider-facing role label, e.g. "character".
	Role string
	URL  string
}

// Task is one scene of a multi-scene generation job.
type Task struct {
	// SceneID is the scene's persistent identifier.
	SceneID string
	// Number is the scene's 1-based position. Numbers across a batch
	// must be dense.
	Number int
	// Prompt is the scene's generation prompt.
	Prompt string
	// References are the scene's visual references.
	References []Reference
	// Duration is the clamped target duration.
	Duration DurationClass
}

// CompositionOrder returns the references ordered by composition
// priority: subjects before products, original order otherwise.
func (t Task) CompositionOrder() []Reference {
	ordered := make([]Reference, len(t.References))
	copy(ordered, t.References)
	sort.SliceStable(ordered, func(i, j int) bool {
		return kindPriority(ordered[i].Kind) < kindPriority(ordered[j].Kind)
	})
	return ordered
}

func kindPriority(k ReferenceKind) int {
	switch k {
	case KindSubject:
		return 0
	case KindProduct:
		return 1
	default:
		return 2
	}
}

// Request translates the scene into a provider-independent generation
// request.
func (t Task) Request() fallback.Request {
	refs := t.CompositionOrder()
	images := make([]fallback.Image, 0, len(refs))
	for _, r := range refs {
		images = append(images, fallback.Image{Role: r.Role, URL: r.URL})
	}
	return fallback.Request{
		Prompt:      t.Prompt,
		Images:      images,
		DurationSec: int(t.Duration),
	}
}

// sortByNumber orders scenes ascending and verifies the numbering is
// dense and 1-based.
func sortByNumber(scenes []Task) ([]Task, error) {
	ordered := make([]Task, len(scenes))
	copy(ordered, scenes)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })

	for i, s := range ordered {
		if s.Number != i+1 {
			return nil, fmt.Errorf("scene: numbering must be dense and 1-based, got %d at position %d", s.Number, i+1)
		}
	}
	return ordered, nil
}
