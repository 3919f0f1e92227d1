package projection

import (
	"encoding/json"
	"widget-lab/domain/widget"
)

func widgetEvent(senderID int64, content map[string]any) widget.Submessage {
	bytes, err := json.Marshal(content)
	if err != nil {
		panic(err)
	}
	return widget.Submessage{SenderID: senderID, MsgType: widget.MsgTypeWidget, Content: string(bytes)}
}

func createPoll(question string, options ...string) widget.Submessage {
	return widgetEvent(1, map[string]any{
		"widget_type": "poll",
		"extra_data":  map[string]any{"question": question, "options": options},
	})
}

func vote(senderID int64, key string, value int) widget.Submessage {
	return widgetEvent(senderID, map[string]any{"type": "vote", "key": key, "vote": value})
}

func newOption(senderID int64, idx any, option string) widget.Submessage {
	return widgetEvent(senderID, map[string]any{"type": "new_option", "idx": idx, "option": option})
}

func createTodo(title string, tasks ...map[string]any) widget.Submessage {
	if tasks == nil {
		tasks = []map[string]any{}
	}
	return widgetEvent(1, map[string]any{
		"widget_type": "todo",
		"extra_data":  map[string]any{"task_list_title": title, "tasks": tasks},
	})
}

func newTask(senderID int64, key any, task string) widget.Submessage {
	return widgetEvent(senderID, map[string]any{"type": "new_task", "key": key, "task": task})
}

func strike(senderID int64, key string) widget.Submessage {
	return widgetEvent(senderID, map[string]any{"type": "strike", "key": key})
}
