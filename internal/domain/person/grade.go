package person

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/studentbook/studentbook/internal/domain/shared"
)

// Validation rules for grade components.
var (
	// Subjects and assessments start with a letter or digit and may contain
	// letters, digits, spaces, underscores and hyphens. No slashes.
	gradeNameRegex = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} _\-]{0,49}$`)

	// Scores are non-negative numbers with at most two decimals.
	scoreRegex = regexp.MustCompile(`^\d{1,3}(\.\d{1,2})?$`)
)

// MaxScore is the highest accepted score.
const MaxScore = 100.0

// Grade validation messages.
const (
	SubjectConstraints    = "Subject name is invalid."
	AssessmentConstraints = "Assessment name is invalid."
	ScoreConstraints      = "Score value is invalid."
)

// IsValidSubject reports whether s is an acceptable subject name.
func IsValidSubject(s string) bool {
	return gradeNameRegex.MatchString(s)
}

// IsValidAssessment reports whether s is an acceptable assessment name.
func IsValidAssessment(s string) bool {
	return gradeNameRegex.MatchString(s)
}

// IsValidScore reports whether s is a number between 0 and MaxScore.
func IsValidScore(s string) bool {
	if !scoreRegex.MatchString(s) {
		return false
	}
	v, err := strconv.ParseFloat(s, 64)
	return err == nil && v >= 0 && v <= MaxScore
}

// ══════════════════════════════════════════════════════════════════════════════
// GRADE KEY
// ══════════════════════════════════════════════════════════════════════════════

// GradeKey is the (subject, assessment) identity of a grade. It is comparable
// and usable as a map key.
type GradeKey struct {
	Subject    string
	Assessment string
}

// NewGradeKey creates a GradeKey with validation.
func NewGradeKey(subject, assessment string) (GradeKey, error) {
	if !IsValidSubject(subject) {
		return GradeKey{}, shared.InvalidFieldValue("grade", "Subject", SubjectConstraints)
	}
	if !IsValidAssessment(assessment) {
		return GradeKey{}, shared.InvalidFieldValue("grade", "Assessment", AssessmentConstraints)
	}
	return GradeKey{Subject: subject, Assessment: assessment}, nil
}

// String renders SUBJECT/ASSESSMENT.
func (k GradeKey) String() string {
	return k.Subject + "/" + k.Assessment
}

// ══════════════════════════════════════════════════════════════════════════════
// GRADE
// ══════════════════════════════════════════════════════════════════════════════

// Grade is a score obtained by a student in one assessment of a subject.
type Grade struct {
	key   GradeKey
	score string
}

// NewGrade creates a Grade with validation.
func NewGrade(subject, assessment, score string) (Grade, error) {
	key, err := NewGradeKey(subject, assessment)
	if err != nil {
		return Grade{}, err
	}
	if !IsValidScore(score) {
		return Grade{}, shared.InvalidFieldValue("grade", "Score", ScoreConstraints)
	}
	return Grade{key: key, score: score}, nil
}

// MustGrade is NewGrade for fixtures; it panics on invalid input.
func MustGrade(subject, assessment, score string) Grade {
	g, err := NewGrade(subject, assessment, score)
	if err != nil {
		panic(err)
	}
	return g
}

// Key returns the identity of the grade.
func (g Grade) Key() GradeKey { return g.key }

// Subject returns the subject name.
func (g Grade) Subject() string { return g.key.Subject }

// Assessment returns the assessment name.
func (g Grade) Assessment() string { return g.key.Assessment }

// Score returns the score as entered.
func (g Grade) Score() string { return g.score }

// String renders SUBJECT/ASSESSMENT: SCORE.
func (g Grade) String() string {
	return g.key.String() + ": " + g.score
}

// ══════════════════════════════════════════════════════════════════════════════
// GRADE LIST
// ══════════════════════════════════════════════════════════════════════════════

// GradeList is an insertion-ordered set of grades, unique by GradeKey.
// The zero value is an empty list.
type GradeList struct {
	grades []Grade
}

// NewGradeList builds a list from grades. A later grade with the same key
// overwrites an earlier one in place.
func NewGradeList(grades ...Grade) GradeList {
	l := GradeList{}
	for _, g := range grades {
		l = l.AddGrade(g)
	}
	return l
}

func (l GradeList) indexOf(key GradeKey) int {
	for i, g := range l.grades {
		if g.key == key {
			return i
		}
	}
	return -1
}

// AddGrade returns a new list with g inserted, or with the grade sharing g's
// key replaced in its current position.
func (l GradeList) AddGrade(g Grade) GradeList {
	out := make([]Grade, len(l.grades), len(l.grades)+1)
	copy(out, l.grades)
	if i := l.indexOf(g.key); i >= 0 {
		out[i] = g
	} else {
		out = append(out, g)
	}
	return GradeList{grades: out}
}

// RemoveGrade returns a new list without the grade keyed (subject, assessment).
// Removing an absent key returns an equal list.
func (l GradeList) RemoveGrade(subject, assessment string) GradeList {
	key := GradeKey{Subject: subject, Assessment: assessment}
	out := make([]Grade, 0, len(l.grades))
	for _, g := range l.grades {
		if g.key != key {
			out = append(out, g)
		}
	}
	return GradeList{grades: out}
}

// HasGrade reports whether a grade keyed (subject, assessment) exists.
func (l GradeList) HasGrade(subject, assessment string) bool {
	return l.indexOf(GradeKey{Subject: subject, Assessment: assessment}) >= 0
}

// Get returns the grade with the given key.
func (l GradeList) Get(key GradeKey) (Grade, bool) {
	if i := l.indexOf(key); i >= 0 {
		return l.grades[i], true
	}
	return Grade{}, false
}

// Grades returns a copy of the grades in insertion order.
func (l GradeList) Grades() []Grade {
	out := make([]Grade, len(l.grades))
	copy(out, l.grades)
	return out
}

// Len returns the number of grades.
func (l GradeList) Len() int { return len(l.grades) }

// IsEmpty reports whether the list holds no grades.
func (l GradeList) IsEmpty() bool { return len(l.grades) == 0 }

// Equal compares two lists element by element.
func (l GradeList) Equal(other GradeList) bool {
	if len(l.grades) != len(other.grades) {
		return false
	}
	for i := range l.grades {
		if l.grades[i] != other.grades[i] {
			return false
		}
	}
	return true
}

// String joins the grades with ", ", or returns "None" for an empty list.
func (l GradeList) String() string {
	if len(l.grades) == 0 {
		return "None"
	}
	parts := make([]string, len(l.grades))
	for i, g := range l.grades {
		parts[i] = g.String()
	}
	return strings.Join(parts, ", ")
}
