package types

// ParticipantQuery carries the student email identifying who a signup or
// unregister request is about.
type ParticipantQuery struct {
	Email string `query:"email" validate:"required,email"`
}
