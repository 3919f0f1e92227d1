package projection

import (
	"fmt"
	"widget-lab/domain/widget"

	"github.com/samber/lo"
)

// PollOption is one answer of a poll and the senders who picked it,
// in first-vote order.
type PollOption struct {
	Option string  `json:"option"`
	Votes  []int64 `json:"votes"`
}

type PollWidget struct {
	Question string                 `json:"question"`
	Options  map[string]*PollOption `json:"options"`
}

// ReducePoll replays submessages into a poll snapshot.
// Canned options are keyed "canned,<index>", options added later
// "<sender_id>,<idx>". Votes on unknown options are dropped.
func ReducePoll(submessages []widget.Submessage) (PollWidget, []Skipped) {
	poll := PollWidget{Options: make(map[string]*PollOption)}
	var skipped []Skipped

	for i, submessage := range submessages {
		envelope, skip := decodeAt(i, submessage, widget.TypePoll)
		if skip != nil {
			skipped = append(skipped, *skip)
			continue
		}

		switch evt := envelope.(type) {
		case widget.PollCreated:
			poll.Question = evt.Question
			for index, option := range evt.Options {
				poll.Options[fmt.Sprintf("canned,%d", index)] = newPollOption(option)
			}
		case widget.QuestionChanged:
			poll.Question = evt.Question
		case widget.VoteCast:
			poll.vote(evt, submessage.SenderID)
		case widget.OptionAdded:
			poll.Options[fmt.Sprintf("%d,%s", submessage.SenderID, evt.Idx)] = newPollOption(evt.Option)
		}
	}
	return poll, skipped
}

func (p PollWidget) vote(evt widget.VoteCast, senderID int64) {
	option, ok := p.Options[evt.Key]
	if !ok {
		return
	}
	switch evt.Vote {
	case 1:
		if !lo.Contains(option.Votes, senderID) {
			option.Votes = append(option.Votes, senderID)
		}
	case -1:
		option.Votes = lo.Without(option.Votes, senderID)
	}
}

func newPollOption(option string) *PollOption {
	return &PollOption{Option: option, Votes: []int64{}}
}
