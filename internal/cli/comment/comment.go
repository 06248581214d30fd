// Package comment holds all cli commands related to task comments
//
// e.g., tally comment ...
package comment

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	commentservice "github.com/thenoetrevino/tally/internal/services/comment"
)

// CommentCmd returns the comment parent command
func CommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Discuss tasks",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

func requireTaskFlag(cmd *cobra.Command) {
	cmd.Flags().Int("task", 0, "Task ID (required)")
	if err := cmd.MarkFlagRequired("task"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
}

// AddCmd returns the comment add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Comment on a task",
		Long: fmt.Sprintf(`Comment on a task. Bodies are trimmed and may hold up to %d characters.

Examples:
  tally comment add --task=7 --body="Second coat needed"
`, commentservice.MaxBodyLength),
		RunE: runAdd,
	}

	requireTaskFlag(cmd)
	cmd.Flags().String("body", "", "Comment text (required)")
	if err := cmd.MarkFlagRequired("body"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.Release()

	taskID, _ := cmd.Flags().GetInt("task")
	body, _ := cmd.Flags().GetString("body")

	c, err := cliInstance.App.CommentService.AddComment(cmd.Context(), commentservice.AddCommentRequest{
		TaskID:  taskID,
		Body:    body,
		ActorID: cliInstance.App.ActorID(),
	})
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Emit(c.ID, map[string]interface{}{
		"comment": c,
	}, func() {
		fmt.Printf("✓ Comment added to task %d (ID: %d)\n", c.TaskID, c.ID)
	})
}

// ListCmd returns the comment list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a task's comments, oldest first",
		RunE:  runList,
	}

	requireTaskFlag(cmd)
	cli.AddOutputFlags(cmd, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.Release()

	taskID, _ := cmd.Flags().GetInt("task")

	comments, err := cliInstance.App.CommentService.ListComments(cmd.Context(), taskID)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, c := range comments {
			fmt.Printf("%d\n", c.ID)
		}
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":  true,
			"comments": comments,
		})
	}

	if len(comments) == 0 {
		fmt.Println("No comments")
		return nil
	}

	for _, c := range comments {
		fmt.Printf("[%d] user %d, %s\n", c.ID, c.UserID, c.CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Printf("    %s\n\n", c.Body)
	}

	return nil
}

// DeleteCmd returns the comment delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <comment_id>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	requireTaskFlag(cmd)
	cli.AddOutputFlags(cmd, "Minimal output")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.Release()

	id, err := cli.ParseID(args[0], "comment")
	if err != nil {
		return formatter.Usage(err.Error(), "Usage: tally comment delete <comment_id> --task=<id>")
	}
	taskID, _ := cmd.Flags().GetInt("task")

	if err := cliInstance.App.CommentService.DeleteComment(cmd.Context(), taskID, id); err != nil {
		return formatter.Fail(err)
	}

	return formatter.Emit(0, map[string]interface{}{
		"comment_id": id,
	}, func() {
		fmt.Printf("✓ Comment %d deleted\n", id)
	})
}
