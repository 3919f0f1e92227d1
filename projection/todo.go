package projection

import (
	"fmt"
	"widget-lab/domain/widget"
)

const defaultTaskListTitle = "Task list"

type TodoTask struct {
	Task      string `json:"task"`
	Desc      string `json:"desc"`
	Completed bool   `json:"completed"`
}

type TodoWidget struct {
	Title string               `json:"title"`
	Tasks map[string]*TodoTask `json:"tasks"`
}

// ReduceTodo replays submessages into a todo snapshot.
// Canned tasks are keyed "<index>,canned", tasks added later
// "<key>,<sender_id>". A strike flips completion each time it is replayed.
func ReduceTodo(submessages []widget.Submessage) (TodoWidget, []Skipped) {
	todo := TodoWidget{Tasks: make(map[string]*TodoTask)}
	var skipped []Skipped

	for i, submessage := range submessages {
		envelope, skip := decodeAt(i, submessage, widget.TypeTodo)
		if skip != nil {
			skipped = append(skipped, *skip)
			continue
		}

		switch evt := envelope.(type) {
		case widget.TodoCreated:
			if evt.List == nil {
				continue
			}
			todo.Title = evt.List.Title
			if todo.Title == "" {
				todo.Title = defaultTaskListTitle
			}
			for index, seed := range evt.List.Tasks {
				todo.Tasks[fmt.Sprintf("%d,canned", index)] = &TodoTask{Task: seed.Task, Desc: seed.Desc}
			}
		case widget.TaskAdded:
			todo.Tasks[fmt.Sprintf("%s,%d", evt.Key, submessage.SenderID)] = &TodoTask{Task: evt.Task, Desc: evt.Desc}
		case widget.TaskStruck:
			if task, ok := todo.Tasks[evt.Key]; ok {
				task.Completed = !task.Completed
			}
		case widget.TitleChanged:
			todo.Title = evt.Title
		}
	}
	return todo, skipped
}
