// Package snapshot converts the address book to and from its stored JSON
// form. Every storage driver stores the same document; only the medium
// differs.
package snapshot

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/studentbook/studentbook/internal/domain/person"
	"github.com/studentbook/studentbook/pkg/timeutil"
)

// Version is written into every document.
const Version = 1

// ══════════════════════════════════════════════════════════════════════════════
// RECORDS
// ══════════════════════════════════════════════════════════════════════════════

// Document is the top-level stored value.
type Document struct {
	Version int            `json:"version"`
	Persons []PersonRecord `json:"persons"`
}

// PersonRecord is the stored form of a person.
type PersonRecord struct {
	Name       string            `json:"name"`
	Phone      string            `json:"phone"`
	Email      string            `json:"email"`
	Address    string            `json:"address"`
	Remark     string            `json:"remark,omitempty"`
	Tags       []string          `json:"tags,omitempty"`
	Attributes []AttributeRecord `json:"attributes,omitempty"`
	Lessons    []LessonRecord    `json:"lessons,omitempty"`
	Grades     []GradeRecord     `json:"grades,omitempty"`
}

// AttributeRecord is the stored form of an attribute.
type AttributeRecord struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
}

// LessonRecord is the stored form of a lesson.
type LessonRecord struct {
	Subject   string `json:"subject"`
	Start     string `json:"start"`
	End       string `json:"end"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Present   bool   `json:"present"`
}

// GradeRecord is the stored form of a grade.
type GradeRecord struct {
	Subject    string `json:"subject"`
	Assessment string `json:"assessment"`
	Score      string `json:"score"`
}

// ══════════════════════════════════════════════════════════════════════════════
// MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// FromPerson maps a person to its record.
func FromPerson(p *person.Person) PersonRecord {
	r := PersonRecord{
		Name:    p.Name().String(),
		Phone:   p.Phone().String(),
		Email:   p.Email().String(),
		Address: p.Address().String(),
		Remark:  p.Remark().String(),
	}
	for _, t := range p.Tags() {
		r.Tags = append(r.Tags, string(t))
	}
	for _, a := range p.Attributes().Attributes() {
		r.Attributes = append(r.Attributes, AttributeRecord{Key: a.Key(), Values: a.Values()})
	}
	for _, l := range p.Lessons().Lessons() {
		r.Lessons = append(r.Lessons, LessonRecord{
			Subject:   l.Subject(),
			Start:     l.Start().String(),
			End:       l.End().String(),
			StartDate: timeutil.FormatDate(l.Date()),
			EndDate:   timeutil.FormatDate(l.EndDate()),
			Present:   l.IsPresent(),
		})
	}
	for _, g := range p.Grades().Grades() {
		r.Grades = append(r.Grades, GradeRecord{Subject: g.Subject(), Assessment: g.Assessment(), Score: g.Score()})
	}
	return r
}

// ToPerson validates r and maps it back to a person.
func (r PersonRecord) ToPerson() (*person.Person, error) {
	name, err := person.NewName(r.Name)
	if err != nil {
		return nil, err
	}
	phone, err := person.NewPhone(r.Phone)
	if err != nil {
		return nil, err
	}
	email, err := person.NewEmail(r.Email)
	if err != nil {
		return nil, err
	}
	address, err := person.NewAddress(r.Address)
	if err != nil {
		return nil, err
	}

	f := person.Fields{
		Name:    name,
		Phone:   phone,
		Email:   email,
		Address: address,
		Remark:  person.NewRemark(r.Remark),
	}
	for _, raw := range r.Tags {
		t, err := person.NewTag(raw)
		if err != nil {
			return nil, err
		}
		f.Tags = append(f.Tags, t)
	}

	attrs := make([]person.Attribute, 0, len(r.Attributes))
	for _, ar := range r.Attributes {
		a, err := person.NewAttribute(ar.Key, ar.Values...)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	f.Attributes = person.NewAttributeSet(attrs...)

	lessons := make([]person.Lesson, 0, len(r.Lessons))
	for _, lr := range r.Lessons {
		l, err := lr.toLesson()
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	f.Lessons = person.NewLessonList(lessons...)

	grades := make([]person.Grade, 0, len(r.Grades))
	for _, gr := range r.Grades {
		g, err := person.NewGrade(gr.Subject, gr.Assessment, gr.Score)
		if err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	f.Grades = person.NewGradeList(grades...)

	return person.FromFields(f), nil
}

func (lr LessonRecord) toLesson() (person.Lesson, error) {
	start, err := timeutil.ParseClock(lr.Start)
	if err != nil {
		return person.Lesson{}, fmt.Errorf("lesson start %q: %w", lr.Start, err)
	}
	end, err := timeutil.ParseClock(lr.End)
	if err != nil {
		return person.Lesson{}, fmt.Errorf("lesson end %q: %w", lr.End, err)
	}
	startDate, err := timeutil.ParseDate(lr.StartDate)
	if err != nil {
		return person.Lesson{}, fmt.Errorf("lesson start date %q: %w", lr.StartDate, err)
	}
	endDate := startDate
	if lr.EndDate != "" {
		if endDate, err = timeutil.ParseDate(lr.EndDate); err != nil {
			return person.Lesson{}, fmt.Errorf("lesson end date %q: %w", lr.EndDate, err)
		}
	}
	return person.NewLessonSpan(start, end, startDate, endDate, lr.Subject, lr.Present)
}

// ══════════════════════════════════════════════════════════════════════════════
// ENCODING
// ══════════════════════════════════════════════════════════════════════════════

// Records maps persons to records in order.
func Records(persons []*person.Person) []PersonRecord {
	out := make([]PersonRecord, len(persons))
	for i, p := range persons {
		out[i] = FromPerson(p)
	}
	return out
}

// Persons maps records back to persons, failing on the first invalid one.
func Persons(records []PersonRecord) ([]*person.Person, error) {
	out := make([]*person.Person, 0, len(records))
	for i, r := range records {
		p, err := r.ToPerson()
		if err != nil {
			return nil, fmt.Errorf("person %d: %w", i+1, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Encode serializes persons into an indented JSON document.
func Encode(persons []*person.Person) ([]byte, error) {
	data, err := json.MarshalIndent(Document{Version: Version, Persons: Records(persons)}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a JSON document. Empty input yields no persons.
func Decode(data []byte) ([]*person.Person, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if doc.Version > Version {
		return nil, fmt.Errorf("snapshot version %d is newer than supported version %d", doc.Version, Version)
	}
	return Persons(doc.Persons)
}

// Fingerprint returns the hex BLAKE2b-256 digest of data.
func Fingerprint(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FingerprintOf encodes persons and returns the digest of the encoding.
func FingerprintOf(persons []*person.Person) (string, error) {
	data, err := Encode(persons)
	if err != nil {
		return "", err
	}
	return Fingerprint(data), nil
}
