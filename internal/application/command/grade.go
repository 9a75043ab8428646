package command

import (
	"fmt"

	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GRADE COMMAND
// Adds, overwrites and deletes grades of one person in a single invocation.
// ══════════════════════════════════════════════════════════════════════════════

// WordGrade is the command word.
const WordGrade = "grade"

// GradeUsage is shown when the command text is malformed.
const GradeUsage = WordGrade + ": Adds, updates or deletes grades of the person identified by the index number.\n" +
	"Parameters: INDEX (must be a positive integer) sub/SUBJECT/ASSESSMENT[/SCORE]...\n" +
	"Example: " + WordGrade + " 1 sub/MATH/WA1/89 sub/SCIENCE/Quiz1"

// MessageGradeSuccess is the frozen success format: name, phone, email,
// address and the complete resulting grade list.
const MessageGradeSuccess = "Grades Updated: %s; Phone: %s; Email: %s; Address: %s; Grades: %s"

// GradeCommand holds the grades to add and the keys to delete for one person.
// Add and Delete are free of duplicate keys.
type GradeCommand struct {
	Index  shared.Index
	Add    []person.Grade
	Delete []person.GradeKey
}

// Word implements Command.
func (c *GradeCommand) Word() string { return WordGrade }

// Execute checks every delete key before touching anything, then applies all
// deletions followed by all additions.
func (c *GradeCommand) Execute(m Model) (Result, error) {
	target, err := personAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}

	grades := target.Grades()
	for _, k := range c.Delete {
		if !grades.HasGrade(k.Subject, k.Assessment) {
			return Result{}, shared.GradeNotFound(k.Subject, k.Assessment)
		}
	}
	for _, k := range c.Delete {
		grades = grades.RemoveGrade(k.Subject, k.Assessment)
	}
	for _, g := range c.Add {
		grades = grades.AddGrade(g)
	}

	edited := target.WithGrades(grades)
	if err := replace(m, target, edited); err != nil {
		return Result{}, err
	}
	return Result{Feedback: formatGradeSuccess(edited), Mutating: true}, nil
}

func formatGradeSuccess(p *person.Person) string {
	return fmt.Sprintf(MessageGradeSuccess, p.Name(), p.Phone(), p.Email(), p.Address(), p.Grades())
}
