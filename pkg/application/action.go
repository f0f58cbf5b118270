package application

// ActionKind — дискриминатор действия рекрутёра над откликом.
type ActionKind string

const (
	ActionShortlist            ActionKind = "shortlist"
	ActionScheduleInterview    ActionKind = "interview"
	ActionReject               ActionKind = "reject"
	ActionMessage              ActionKind = "message"
	ActionMarkInterviewed      ActionKind = "interviewed"
	ActionSelect               ActionKind = "selected"
	ActionRejectAfterInterview ActionKind = "rejected_after_interview"
	ActionHire                 ActionKind = "hire"
)

// Action — закрытое множество вариантов; каждый несёт только свои поля.
// Валидация полей происходит на HTTP-границе до диспетчера.
type Action interface {
	Kind() ActionKind
}

type Shortlist struct{}

func (Shortlist) Kind() ActionKind { return ActionShortlist }

type Reject struct{}

func (Reject) Kind() ActionKind { return ActionReject }

// ScheduleInterview назначает слот: либо явный (Date/Time), либо
// подобранный аллокатором (Auto).
type ScheduleInterview struct {
	Auto        bool
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	MeetingLink string
	Notes       string
}

func (ScheduleInterview) Kind() ActionKind { return ActionScheduleInterview }

type Message struct{}

func (Message) Kind() ActionKind { return ActionMessage }

type MarkInterviewed struct{}

func (MarkInterviewed) Kind() ActionKind { return ActionMarkInterviewed }

type Select struct{}

func (Select) Kind() ActionKind { return ActionSelect }

type RejectAfterInterview struct{}

func (RejectAfterInterview) Kind() ActionKind { return ActionRejectAfterInterview }

type Hire struct{}

func (Hire) Kind() ActionKind { return ActionHire }

// checkTransition — таблица допустимых переходов «действие × статус».
func checkTransition(k ActionKind, s Status) error {
	switch k {
	case ActionShortlist, ActionReject:
		if s.Terminal() {
			return ErrValidation("application is in a terminal state")
		}
	case ActionScheduleInterview:
		// Отказ — жёсткий стоп для интервью-пайплайна.
		if s.Rejected() {
			return ErrValidation("cannot schedule an interview for a rejected application")
		}
	case ActionMessage:
		// allowed from any state
	case ActionMarkInterviewed:
		if s != StatusInterviewScheduled {
			return ErrValidation("only a scheduled interview can be marked as done")
		}
	case ActionSelect, ActionRejectAfterInterview:
		if s != StatusInterviewed {
			return ErrValidation("decision requires an interviewed application")
		}
	case ActionHire:
		if s != StatusSelected {
			return ErrValidation("only a selected candidate can be hired")
		}
	default:
		return ErrValidation("unknown action")
	}
	return nil
}
