package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmarsh/tally/internal/editor"
	"github.com/tmarsh/tally/internal/tui"
	"github.com/tmarsh/tally/task"
)

// tally add
var addCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Add a new task",
	Long: `Add a new task.

All arguments are joined into a single task text, so quoting is optional:
'tally add Buy milk' and 'tally add "Buy milk"' are equivalent.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

// tally list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var (
	listArchived bool
	listAll      bool
	listJSON     bool
)

// tally toggle
var toggleCmd = &cobra.Command{
	Use:   "toggle <id>...",
	Short: "Toggle completion of one or more tasks",
	Long: `Toggle completion of one or more tasks.

Toggling an active task flips its checkmark in place. Toggling an
archived task restores it to the active list unchecked.`,
	Aliases: []string{
		"check",
	},
	Args: cobra.MinimumNArgs(1),
	RunE: runToggle,
}

// tally edit
var editCmd = &cobra.Command{
	Use:   "edit <id> [text]...",
	Short: "Replace the text of an active task",
	Long: `Replace the text of an active task.

With no replacement text, the current text opens in $EDITOR.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEdit,
}

// tally archive
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Move all checked-off tasks into the history",
	Args:  cobra.NoArgs,
	RunE:  runArchive,
}

// tally restore
var restoreCmd = &cobra.Command{
	Use:   "restore <id>...",
	Short: "Move archived tasks back to the active list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRestore,
}

// tally delete
var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

// tally clear
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all tasks, or only the archived history",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

var (
	clearArchivedOnly bool
	clearForce        bool
)

// tally counts
var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Show task counts",
	Args:  cobra.NoArgs,
	RunE:  runCounts,
}

var countsJSON bool

// tally ui
var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive task view",
	Args:  cobra.NoArgs,
	RunE:  runUI,
}

func init() {
	rootCmd.AddCommand(addCmd, listCmd, toggleCmd, editCmd, archiveCmd,
		restoreCmd, deleteCmd, clearCmd, countsCmd, uiCmd)
	addArchivedFlagAliases(listCmd, clearCmd)

	// list flags
	listCmd.Flags().BoolVar(&listArchived, "archived", false, "Show the archived history instead")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Show active tasks and archived history")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	// clear flags
	clearCmd.Flags().BoolVar(&clearArchivedOnly, "archived", false, "Clear only the archived history")
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "Skip the confirmation prompt")

	// counts flags
	countsCmd.Flags().BoolVar(&countsJSON, "json", false, "Output as JSON")
}

func runAdd(cmd *cobra.Command, args []string) error {
	manager, _, err := openManager()
	if err != nil {
		return err
	}

	created := manager.Add(strings.Join(args, " "))
	if created == nil {
		return fmt.Errorf("task text is required")
	}

	fmt.Printf("Added task %d: %s\n", created.ID, created.Text)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	manager, cfg, err := openManager()
	if err != nil {
		return err
	}

	showArchived := listArchived
	showAll := listAll
	if cfg.List.ShowArchived && !cmd.Flags().Changed("archived") {
		showAll = true
	}

	if listJSON {
		return printListJSON(manager, showArchived, showAll)
	}

	now := time.Now()
	switch {
	case showAll:
		printActiveTable(manager.Active(), now)
		fmt.Println()
		printArchivedTable(manager.Archived(), now)
	case showArchived:
		printArchivedTable(manager.Archived(), now)
	default:
		printActiveTable(manager.Active(), now)
	}
	return nil
}

func printListJSON(manager *task.Manager, showArchived, showAll bool) error {
	var value any
	switch {
	case showAll:
		value = struct {
			Active   []task.Task `json:"active"`
			Archived []task.Task `json:"archived"`
		}{manager.Active(), manager.Archived()}
	case showArchived:
		value = manager.Archived()
	default:
		value = manager.Active()
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	manager, _, err := openManager()
	if err != nil {
		return err
	}

	ids, err := parseTaskIDs(args)
	if err != nil {
		return err
	}

	for _, id := range ids {
		wasArchived := false
		for _, item := range manager.Archived() {
			if item.ID == id {
				wasArchived = true
				break
			}
		}

		if !manager.Toggle(id) {
			return fmt.Errorf("task %d not found", id)
		}

		found, _ := manager.Find(id)
		switch {
		case wasArchived:
			fmt.Printf("Restored task %d: %s\n", id, found.Text)
		case found.Completed:
			fmt.Printf("Checked task %d: %s\n", id, found.Text)
		default:
			fmt.Printf("Unchecked task %d: %s\n", id, found.Text)
		}
	}
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	manager, _, err := openManager()
	if err != nil {
		return err
	}

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		text, err = editTaskText(manager, id)
		if err != nil {
			return err
		}
	}
	if text == "" {
		return fmt.Errorf("replacement text is required")
	}

	if !manager.UpdateText(id, text) {
		if _, ok := manager.Find(id); ok {
			return fmt.Errorf("task %d is archived; restore it before editing", id)
		}
		return fmt.Errorf("task %d not found", id)
	}

	fmt.Printf("Updated task %d: %s\n", id, text)
	return nil
}

// editTaskText opens the task's current text in $EDITOR and returns the
// edited replacement.
func editTaskText(manager *task.Manager, id int) (string, error) {
	if !editor.IsInteractive() {
		return "", fmt.Errorf("replacement text is required")
	}

	current, ok := manager.Find(id)
	if !ok {
		return "", fmt.Errorf("task %d not found", id)
	}

	edited, err := editor.EditText(current.Text)
	if err != nil {
		return "", err
	}
	return edited, nil
}

func runArchive(cmd *cobra.Command, args []string) error {
	manager, _, err := openManager()
	if err != nil {
		return err
	}

	moved := manager.ArchiveCompleted()
	fmt.Printf("Archived %d %s\n", moved, pluralizeTask(moved))
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	manager, _, err := openManager()
	if err != nil {
		return err
	}

	ids, err := parseTaskIDs(args)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if !manager.Revert(id) {
			if _, ok := manager.Find(id); ok {
				return fmt.Errorf("task %d is not archived", id)
			}
			return fmt.Errorf("task %d not found", id)
		}
		fmt.Printf("Restored task %d\n", id)
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	manager, _, err := openManager()
	if err != nil {
		return err
	}

	ids, err := parseTaskIDs(args)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if !manager.Delete(id) {
			return fmt.Errorf("task %d not found", id)
		}
		fmt.Printf("Deleted task %d\n", id)
	}
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	manager, cfg, err := openManager()
	if err != nil {
		return err
	}

	message := "Delete all tasks and the archived history?"
	if clearArchivedOnly {
		message = "Delete the archived history?"
	}

	if cfg.Clear.RequireConfirm && !clearForce {
		confirmed, err := confirmInteractive(message)
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if clearArchivedOnly {
		manager.ClearArchived()
		fmt.Println("Cleared archived history.")
		return nil
	}

	manager.ClearAll()
	fmt.Println("Cleared all tasks.")
	return nil
}

func runCounts(cmd *cobra.Command, args []string) error {
	manager, _, err := openManager()
	if err != nil {
		return err
	}

	counts := manager.Counts()
	if countsJSON {
		data, err := json.MarshalIndent(struct {
			Pending   int `json:"pending"`
			Completed int `json:"completed"`
			Archived  int `json:"archived"`
		}{counts.Pending, counts.Completed, counts.Archived}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal counts: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%d open, %d done, %d archived\n",
		counts.Pending, counts.Completed, counts.Archived)
	return nil
}

func runUI(cmd *cobra.Command, args []string) error {
	manager, _, err := openManager()
	if err != nil {
		return err
	}
	return tui.Run(manager)
}

func parseTaskID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func parseTaskIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseTaskID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func pluralizeTask(count int) string {
	if count == 1 {
		return "task"
	}
	return "tasks"
}
