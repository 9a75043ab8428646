package command

import (
	"fmt"

	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// WordSchedule is the command word.
const WordSchedule = "schedule"

// ScheduleUsage is shown when the command text is malformed.
const ScheduleUsage = WordSchedule + ": Schedules a lesson for the person identified by the index number.\n" +
	"Parameters: INDEX (must be a positive integer) start/HH:MM end/HH:MM date/YYYY-MM-DD sub/SUBJECT\n" +
	"Example: " + WordSchedule + " 1 start/10:00 end/12:00 date/2025-10-20 sub/Mathematics"

// MessageScheduleSuccess reports the person's name and the new lesson.
const MessageScheduleSuccess = "New lesson scheduled for %s: %s"

// ScheduleCommand adds a lesson to one person.
type ScheduleCommand struct {
	Index  shared.Index
	Lesson person.Lesson

	// AllowOverlap skips the conflict check against existing lessons.
	AllowOverlap bool
}

// Word implements Command.
func (c *ScheduleCommand) Word() string { return WordSchedule }

// Execute rejects a lesson that overlaps an existing one unless AllowOverlap
// is set.
func (c *ScheduleCommand) Execute(m Model) (Result, error) {
	target, err := personAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	lessons := target.Lessons()
	if !c.AllowOverlap {
		if existing, found := lessons.FindOverlap(c.Lesson); found {
			return Result{}, shared.LessonOverlap(existing.String())
		}
	}
	edited := target.WithLessons(lessons.Add(c.Lesson))
	if err := replace(m, target, edited); err != nil {
		return Result{}, err
	}
	return Result{
		Feedback: fmt.Sprintf(MessageScheduleSuccess, edited.Name(), c.Lesson),
		Mutating: true,
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// UNSCHEDULE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// WordUnschedule is the command word.
const WordUnschedule = "unschedule"

// UnscheduleUsage is shown when the command text is malformed.
const UnscheduleUsage = WordUnschedule + ": Removes a lesson of the person identified by the index number.\n" +
	"Parameters: INDEX (must be a positive integer) lesson/LESSON_INDEX\n" +
	"Example: " + WordUnschedule + " 1 lesson/2"

// MessageUnscheduleSuccess reports the person's name and the removed lesson.
const MessageUnscheduleSuccess = "Lesson removed for %s: %s"

// UnscheduleCommand removes one lesson by its position in the person's
// chronologically ordered lessons.
type UnscheduleCommand struct {
	Index  shared.Index
	Lesson shared.Index
}

// Word implements Command.
func (c *UnscheduleCommand) Word() string { return WordUnschedule }

// Execute implements Command.
func (c *UnscheduleCommand) Execute(m Model) (Result, error) {
	target, err := personAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	lessons := target.Lessons()
	removed, err := lessons.Get(c.Lesson)
	if err != nil {
		return Result{}, err
	}
	remaining, err := lessons.Remove(c.Lesson)
	if err != nil {
		return Result{}, err
	}
	edited := target.WithLessons(remaining)
	if err := replace(m, target, edited); err != nil {
		return Result{}, err
	}
	return Result{
		Feedback: fmt.Sprintf(MessageUnscheduleSuccess, edited.Name(), removed),
		Mutating: true,
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ATTEND COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// WordAttend is the command word.
const WordAttend = "attend"

// AttendUsage is shown when the command text is malformed.
const AttendUsage = WordAttend + ": Marks attendance of a lesson of the person identified by the index number.\n" +
	"Parameters: INDEX (must be a positive integer) lesson/LESSON_INDEX [status/present|absent]\n" +
	"Example: " + WordAttend + " 1 lesson/1 status/present"

// MessageAttendSuccess reports the person's name and the updated lesson.
const MessageAttendSuccess = "Attendance marked for %s: %s"

// AttendCommand sets the attendance flag of one lesson.
type AttendCommand struct {
	Index   shared.Index
	Lesson  shared.Index
	Present bool
}

// Word implements Command.
func (c *AttendCommand) Word() string { return WordAttend }

// Execute implements Command.
func (c *AttendCommand) Execute(m Model) (Result, error) {
	target, err := personAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	lessons, err := target.Lessons().SetAttendance(c.Lesson, c.Present)
	if err != nil {
		return Result{}, err
	}
	updated, _ := lessons.Get(c.Lesson)
	edited := target.WithLessons(lessons)
	if err := replace(m, target, edited); err != nil {
		return Result{}, err
	}
	return Result{
		Feedback: fmt.Sprintf(MessageAttendSuccess, edited.Name(), updated),
		Mutating: true,
	}, nil
}
