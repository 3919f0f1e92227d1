package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"widget-lab/repositories"
	"widget-lab/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	messageID := flag.Int64("message", 0, "Message to inspect, all messages when 0")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	repository := repositories.NewSubmessageRepository(db, logs.GetLoggerFromLevel(slog.LevelWarn))
	service := services.NewWidgetService(logs.GetLoggerFromLevel(slog.LevelWarn), repository)

	messageIDs := []int64{*messageID}
	if *messageID == 0 {
		if messageIDs, err = repository.ListMessageIDs(); err != nil {
			log.Fatal(err)
		}
	}

	for _, id := range messageIDs {
		if err := inspect(repository, service, id); err != nil {
			log.Fatal(err)
		}
	}
}

func inspect(repository repositories.ISubmessageRepository, service services.IWidgetService, messageID int64) error {
	submessages, err := repository.GetSubmessages(messageID)
	if err != nil {
		return err
	}
	result, err := service.GetWidget(messageID)
	if err != nil {
		return err
	}

	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render(
		fmt.Sprintf("  ====== message %d: %s ======", messageID, result.Type)))

	table := newTable([]string{"ID", "Sender", "Type", "Time", "Content"})
	table.AppendBulk(lo.Map(submessages, func(item repositories.DiskSubmessage, _ int) []string {
		return []string{
			strconv.FormatInt(item.ID, 10),
			strconv.FormatInt(item.SenderID, 10),
			item.MsgType,
			item.At.Format("15:04:05"),
			fmt.Sprint(item.Content),
		}
	}))
	table.Render()
	fmt.Println()

	switch {
	case result.Poll != nil:
		fmt.Printf("Question: %s\n", result.Poll.Question)
		table = newTable([]string{"Option ID", "Option", "Votes"})
		for _, key := range sortedKeys(result.Poll.Options) {
			option := result.Poll.Options[key]
			votes := lo.Map(option.Votes, func(v int64, _ int) string { return strconv.FormatInt(v, 10) })
			table.Append([]string{key, option.Option, strings.Join(votes, ",")})
		}
		table.Render()
	case result.Todo != nil:
		fmt.Printf("Title: %s\n", result.Todo.Title)
		table = newTable([]string{"Task ID", "Task", "Description", "Done"})
		for _, key := range sortedKeys(result.Todo.Tasks) {
			task := result.Todo.Tasks[key]
			table.Append([]string{key, task.Task, task.Desc, strconv.FormatBool(task.Completed)})
		}
		table.Render()
	}

	for _, skip := range result.Skipped {
		fmt.Printf("skipped #%d: %v\n", submessages[skip.Index].ID, skip.Err)
	}
	fmt.Println()
	return nil
}

func newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
