package service

import "errors"

// Kind classifies a rule failure so the transport can pick a status code.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindForbidden   Kind = "forbidden"
	KindPastMeetup  Kind = "past_meetup"
	KindInvalidDate Kind = "invalid_date"
	KindConflict    Kind = "conflict"
)

// Error is a rule failure surfaced to the caller; it never indicates a broken process.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrValidation = &Error{KindValidation, "Validation fails"}

	ErrMeetupNotFound       = &Error{KindNotFound, "Meetup not found."}
	ErrBannerNotFound       = &Error{KindNotFound, "Banner not found."}
	ErrSubscriptionNotFound = &Error{KindNotFound, "Subscription not found."}
	ErrUserNotFound         = &Error{KindNotFound, "User not found."}

	ErrNotOrganizerUpdate = &Error{KindForbidden, "Can only update your meetups."}
	ErrNotOrganizerDelete = &Error{KindForbidden, "Not authorized."}
	ErrOwnMeetup          = &Error{KindForbidden, "Can't subscribe in your meetups."}
	ErrNotSubscriber      = &Error{KindForbidden, "Can only cancel your subscriptions."}
	ErrPasswordMismatch   = &Error{KindForbidden, "Password does not match."}

	ErrPastMeetupUpdate    = &Error{KindPastMeetup, "Can't update past meetups."}
	ErrPastMeetupDelete    = &Error{KindPastMeetup, "Can't delete past meetups."}
	ErrPastMeetupSubscribe = &Error{KindPastMeetup, "Can't subscribe in past meetups."}
	ErrPastMeetupCancel    = &Error{KindPastMeetup, "Can't cancel subscriptions of past meetups."}

	ErrInvalidDate = &Error{KindInvalidDate, "Meetup date invalid"}

	ErrAlreadySubscribed = &Error{KindConflict, "You already subscribe in this meetup."}
	ErrTimeClash         = &Error{KindConflict, "Can't subscribe to two meetups at the same time"}
	ErrUserExists        = &Error{KindConflict, "User already exists."}
)

// KindOf returns the kind of a rule failure, or "" for infrastructure errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
