package widget

// Envelope is the decoded content of a widget submessage.
// Exactly one variant matches a given event; Unrecognized catches the rest.
type Envelope interface {
	Kind() string
}

// PollCreated opens a poll with its canned options.
type PollCreated struct {
	Question string
	Options  []string
}

func (PollCreated) Kind() string { return string(TypePoll) }

type QuestionChanged struct {
	Question string
}

func (QuestionChanged) Kind() string { return "question" }

// VoteCast toggles the sender's vote on an option.
// Vote is +1 or -1; any other value has no effect.
type VoteCast struct {
	Key  string
	Vote int
}

func (VoteCast) Kind() string { return "vote" }

type OptionAdded struct {
	Idx    string
	Option string
}

func (OptionAdded) Kind() string { return "new_option" }

// TodoCreated opens a task list. A nil List means the creation event carried
// no extra_data and leaves the list untouched.
type TodoCreated struct {
	List *TaskList
}

type TaskList struct {
	Title string
	Tasks []TaskSeed
}

type TaskSeed struct {
	Task string
	Desc string
}

func (TodoCreated) Kind() string { return string(TypeTodo) }

type TaskAdded struct {
	Key  string
	Task string
	Desc string
}

func (TaskAdded) Kind() string { return "new_task" }

type TaskStruck struct {
	Key string
}

func (TaskStruck) Kind() string { return "strike" }

type TitleChanged struct {
	Title string
}

func (TitleChanged) Kind() string { return "new_task_list_title" }

// Unrecognized is any well-formed widget event with an unknown discriminator.
type Unrecognized struct {
	WidgetType string
	Type       string
}

func (u Unrecognized) Kind() string {
	if u.Type != "" {
		return u.Type
	}
	return u.WidgetType
}
