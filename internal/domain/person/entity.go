package person

import (
	"strings"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: PERSON
// ══════════════════════════════════════════════════════════════════════════════

// Person is a student record. A Person is never modified after construction:
// every With* method returns a new Person and leaves the receiver untouched,
// so a previously displayed Person stays valid after an edit.
type Person struct {
	name       Name
	phone      Phone
	email      Email
	address    Address
	remark     Remark
	tags       []Tag
	attributes AttributeSet
	lessons    LessonList
	grades     GradeList
}

// Fields is the plain representation of a Person used for construction and
// by storage drivers.
type Fields struct {
	Name       Name
	Phone      Phone
	Email      Email
	Address    Address
	Remark     Remark
	Tags       []Tag
	Attributes AttributeSet
	Lessons    LessonList
	Grades     GradeList
}

// New creates a Person with identity fields and tags only.
func New(name Name, phone Phone, email Email, address Address, tags ...Tag) *Person {
	return FromFields(Fields{
		Name:    name,
		Phone:   phone,
		Email:   email,
		Address: address,
		Tags:    tags,
	})
}

// FromFields creates a Person from its complete field set.
func FromFields(f Fields) *Person {
	return &Person{
		name:       f.Name,
		phone:      f.Phone,
		email:      f.Email,
		address:    f.Address,
		remark:     f.Remark,
		tags:       normalizeTags(f.Tags),
		attributes: f.Attributes,
		lessons:    f.Lessons,
		grades:     f.Grades,
	}
}

// Fields returns a copy of every field.
func (p *Person) Fields() Fields {
	return Fields{
		Name:       p.name,
		Phone:      p.phone,
		Email:      p.email,
		Address:    p.address,
		Remark:     p.remark,
		Tags:       p.Tags(),
		Attributes: p.attributes,
		Lessons:    p.lessons,
		Grades:     p.grades,
	}
}

// Name returns the person's name.
func (p *Person) Name() Name { return p.name }

// Phone returns the person's phone.
func (p *Person) Phone() Phone { return p.phone }

// Email returns the person's email.
func (p *Person) Email() Email { return p.email }

// Address returns the person's address.
func (p *Person) Address() Address { return p.address }

// Remark returns the person's remark.
func (p *Person) Remark() Remark { return p.remark }

// Tags returns a sorted copy of the tags.
func (p *Person) Tags() []Tag {
	out := make([]Tag, len(p.tags))
	copy(out, p.tags)
	return out
}

// Attributes returns the attribute set.
func (p *Person) Attributes() AttributeSet { return p.attributes }

// Lessons returns the lesson list.
func (p *Person) Lessons() LessonList { return p.lessons }

// Grades returns the grade list.
func (p *Person) Grades() GradeList { return p.grades }

// ──────────────────────────────────────────────────────────────────────────────
// Copy-on-write mutators
// ──────────────────────────────────────────────────────────────────────────────

func (p *Person) clone() *Person {
	c := *p
	return &c
}

// WithGrades returns a copy with grades replaced.
func (p *Person) WithGrades(grades GradeList) *Person {
	c := p.clone()
	c.grades = grades
	return c
}

// WithLessons returns a copy with lessons replaced.
func (p *Person) WithLessons(lessons LessonList) *Person {
	c := p.clone()
	c.lessons = lessons
	return c
}

// WithAttributes returns a copy with attributes replaced.
func (p *Person) WithAttributes(attrs AttributeSet) *Person {
	c := p.clone()
	c.attributes = attrs
	return c
}

// WithRemark returns a copy with the remark replaced.
func (p *Person) WithRemark(remark Remark) *Person {
	c := p.clone()
	c.remark = remark
	return c
}

// WithTags returns a copy with tags replaced.
func (p *Person) WithTags(tags []Tag) *Person {
	c := p.clone()
	c.tags = normalizeTags(tags)
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Identity and equality
// ──────────────────────────────────────────────────────────────────────────────

// IsSamePerson reports whether other denotes the same student. Two records
// with the same name are the same student, whatever their other fields.
func (p *Person) IsSamePerson(other *Person) bool {
	if p == other {
		return true
	}
	return other != nil && p.name == other.name
}

// Equal compares every field.
func (p *Person) Equal(other *Person) bool {
	if p == other {
		return true
	}
	if other == nil {
		return false
	}
	if p.name != other.name || p.phone != other.phone || p.email != other.email ||
		p.address != other.address || p.remark != other.remark {
		return false
	}
	if len(p.tags) != len(other.tags) {
		return false
	}
	for i := range p.tags {
		if p.tags[i] != other.tags[i] {
			return false
		}
	}
	return p.attributes.Equal(other.attributes) &&
		p.lessons.Equal(other.lessons) &&
		p.grades.Equal(other.grades)
}

// String renders the person the way result messages show it.
func (p *Person) String() string {
	var b strings.Builder
	b.WriteString(p.name.String())
	b.WriteString("; Phone: ")
	b.WriteString(p.phone.String())
	b.WriteString("; Email: ")
	b.WriteString(p.email.String())
	b.WriteString("; Address: ")
	b.WriteString(p.address.String())
	if p.remark != "" {
		b.WriteString("; Remark: ")
		b.WriteString(p.remark.String())
	}
	b.WriteString("; Tags: ")
	for _, t := range p.tags {
		b.WriteString(t.String())
	}
	b.WriteString("; Attributes: ")
	b.WriteString(p.attributes.String())
	b.WriteString("; Grades: ")
	b.WriteString(p.grades.String())
	return b.String()
}
