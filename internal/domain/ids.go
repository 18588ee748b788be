package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// PersonID is the stable identity of a Person. The zero value doubles as the
// anonymous sentinel: it never refers to a real person.
type PersonID struct {
	value uuid.UUID
}

func NewPersonID() PersonID {
	return PersonID{value: uuid.New()}
}

func PersonIDFromString(s string) (PersonID, error) {
	if s == "" {
		return PersonID{}, fmt.Errorf("person id cannot be empty")
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return PersonID{}, fmt.Errorf("invalid person id: %w", err)
	}
	return PersonID{value: id}, nil
}

func (p PersonID) String() string {
	return p.value.String()
}

func (p PersonID) IsZero() bool {
	return p.value == uuid.Nil
}

// ActivityID identifies an Activity.
type ActivityID struct {
	value uuid.UUID
}

func NewActivityID() ActivityID {
	return ActivityID{value: uuid.New()}
}

func ActivityIDFromString(s string) (ActivityID, error) {
	if s == "" {
		return ActivityID{}, fmt.Errorf("activity id cannot be empty")
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return ActivityID{}, fmt.Errorf("invalid activity id: %w", err)
	}
	return ActivityID{value: id}, nil
}

func (a ActivityID) String() string {
	return a.value.String()
}

func (a ActivityID) IsZero() bool {
	return a.value == uuid.Nil
}

// ActionID identifies a submitted Action.
type ActionID struct {
	value uuid.UUID
}

func NewActionID() ActionID {
	return ActionID{value: uuid.New()}
}

func ActionIDFromString(s string) (ActionID, error) {
	if s == "" {
		return ActionID{}, fmt.Errorf("action id cannot be empty")
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return ActionID{}, fmt.Errorf("invalid action id: %w", err)
	}
	return ActionID{value: id}, nil
}

func (a ActionID) String() string {
	return a.value.String()
}

func (a ActionID) IsZero() bool {
	return a.value == uuid.Nil
}
