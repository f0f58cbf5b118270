package application

// Status — закрытое множество состояний отклика.
//
// Поток: applied → viewed → {shortlisted, rejected} → interview_scheduled →
// interviewed → {selected, rejected_after_interview} → hired.
// qualified — статус, выставляемый авто-классификацией скана только из
// applied/viewed; решение рекрутёра он никогда не перетирает.
type Status string

const (
	StatusApplied                Status = "applied"
	StatusViewed                 Status = "viewed"
	StatusQualified              Status = "qualified"
	StatusShortlisted            Status = "shortlisted"
	StatusInterviewScheduled     Status = "interview_scheduled"
	StatusInterviewed            Status = "interviewed"
	StatusSelected               Status = "selected"
	StatusRejected               Status = "rejected"
	StatusRejectedAfterInterview Status = "rejected_after_interview"
	StatusHired                  Status = "hired"
)

var allStatuses = map[Status]struct{}{
	StatusApplied: {}, StatusViewed: {}, StatusQualified: {},
	StatusShortlisted: {}, StatusInterviewScheduled: {}, StatusInterviewed: {},
	StatusSelected: {}, StatusRejected: {}, StatusRejectedAfterInterview: {},
	StatusHired: {},
}

// Valid сообщает, известен ли статус.
func (s Status) Valid() bool {
	_, ok := allStatuses[s]
	return ok
}

// Terminal: дальнейшие переходы из статуса невозможны
// (кроме hire из selected).
func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusRejectedAfterInterview, StatusSelected, StatusHired:
		return true
	}
	return false
}

// Rejected покрывает обе формы отказа; отказ — жёсткий стоп для
// интервью-пайплайна.
func (s Status) Rejected() bool {
	return s == StatusRejected || s == StatusRejectedAfterInterview
}

// Qualified — единственный канонический предикат «кандидат квалифицирован».
// Статус хранится явно; скор сам по себе квалификацией не является.
func (s Status) Qualified() bool { return s == StatusQualified }

// AutoClassifiable: авто-классификация разрешена только из состояний,
// которых ещё не касался рекрутёр.
func (s Status) AutoClassifiable() bool {
	return s == StatusApplied || s == StatusViewed
}
