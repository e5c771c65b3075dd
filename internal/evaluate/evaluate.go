// Package evaluate is the demo stand-in for a real model call. Scores are
// drawn from a fixed fallback distribution and dressed with banded reason
// lists; the contract is that a valid verdict always comes back, never an
// error, because the submission flow has no secondary path.
package evaluate

import (
	"math/rand"
	"sync"
	"time"

	"vectorhire/internal/applicant"
)

// PassThreshold marks the score at which a submission is flagged as passed.
// The flag is computed once here and persisted as-is.
const PassThreshold = 70

var reasonPool = []string{
	"Technical experience matching the requirements",
	"Clear communication skills in the resume",
	"Varied projects and experience",
	"Education suited to the position",
	"Relevant hands-on experience",
	"Evident leadership skills",
	"Proficiency with the required tooling",
	"Strong academic background",
	"Accredited professional certifications",
	"Experience in a similar work environment",
}

var missingPool = []string{
	"Specialized technical certifications",
	"Experience with advanced tooling",
	"More visible leadership skills",
	"Experience on large-scale projects",
	"Familiarity with the latest technologies",
	"International or cross-cultural experience",
	"Advanced analytical skills",
	"Team management experience",
	"Additional academic credentials",
	"Industry-specific experience",
}

// Evaluator produces demo verdicts.
type Evaluator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns an evaluator seeded from the clock.
func New() *Evaluator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns an evaluator over the given source, so tests can
// pin the score sequence.
func NewWithSource(src rand.Source) *Evaluator {
	return &Evaluator{rng: rand.New(src)}
}

// Evaluate scores a submission. The job description and file name are
// accepted for interface compatibility with a real evaluator; the demo
// logic ignores them. Any internal fault degrades to a fixed fallback
// verdict instead of propagating.
func (e *Evaluator) Evaluate(jobDescription, fileName string) (v applicant.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			v = FallbackVerdict(e.score())
		}
	}()

	score := e.score()
	return applicant.Verdict{
		Score:   score,
		Passed:  score >= PassThreshold,
		Reasons: reasonsFor(score),
		Missing: missingFor(score),
	}
}

// score draws from the fallback distribution: uniform over [40,99].
func (e *Evaluator) score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(60) + 40
}

// FallbackVerdict is the verdict returned when evaluation cannot run at all.
func FallbackVerdict(score int) applicant.Verdict {
	return applicant.Verdict{
		Score:   score,
		Passed:  score >= PassThreshold,
		Reasons: []string{"Baseline resume evaluation"},
		Missing: []string{"Needs manual review"},
	}
}

// Higher scores get more reasons.
func reasonsFor(score int) []string {
	n := 2
	switch {
	case score >= 85:
		n = 4
	case score >= PassThreshold:
		n = 3
	}
	return append([]string(nil), reasonPool[:n]...)
}

// Lower scores get more missing items.
func missingFor(score int) []string {
	n := 1
	switch {
	case score < 60:
		n = 4
	case score < 80:
		n = 2
	}
	return append([]string(nil), missingPool[:n]...)
}
