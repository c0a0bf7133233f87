package domain

// QuestionStatus is the lifecycle state of a buyer question.
type QuestionStatus string

const (
	QuestionStatusUnanswered QuestionStatus = "UNANSWERED"
	QuestionStatusPending    QuestionStatus = "PENDING"
	QuestionStatusAnswered   QuestionStatus = "ANSWERED"
	QuestionStatusReview     QuestionStatus = "REVIEW"
)

func (s QuestionStatus) String() string { return string(s) }

func (s QuestionStatus) IsValid() bool {
	switch s {
	case QuestionStatusUnanswered, QuestionStatusPending, QuestionStatusAnswered, QuestionStatusReview:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role has administrative privileges.
func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}
