package main

import (
	"fmt"
	"strconv"

	"recmgr/internal/recorded"

	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04"

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

// recorded command
var recordedCmd = &cobra.Command{
	Use:   "recorded",
	Short: "Manage recordings",
}

var recordedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recordings, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListRecorded", args)
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := a.ListRecorded()
		if err != nil {
			return err
		}

		if len(items) == 0 {
			fmt.Println("No recordings.")
			return nil
		}

		rows := make([][]string, 0, len(items))
		for _, r := range items {
			rows = append(rows, []string{
				r.ID,
				r.Name,
				r.ChannelID,
				r.StartAt.Local().Format(timeLayout),
				r.EndAt.Sub(r.StartAt).String(),
				yesNo(r.IsProtected),
				yesNo(r.IsRecording),
			})
		}
		fmt.Println(renderTable(
			[]string{"ID", "Name", "Channel", "Start", "Length", "Protected", "Recording"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
		))
		return nil
	},
}

var recordedShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a recording and the files it owns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GetRecorded", args)
		if err != nil {
			return err
		}
		defer a.Close()

		r, err := a.GetRecorded(args[0])
		if err != nil {
			return err
		}
		if r == nil {
			return fmt.Errorf("%w: %s", recorded.ErrRecordedNotFound, args[0])
		}

		fmt.Printf("ID:        %s\n", r.ID)
		fmt.Printf("Name:      %s\n", r.Name)
		fmt.Printf("Channel:   %s\n", r.ChannelID)
		fmt.Printf("Start:     %s\n", r.StartAt.Local().Format(timeLayout))
		fmt.Printf("End:       %s\n", r.EndAt.Local().Format(timeLayout))
		fmt.Printf("Protected: %t\n", r.IsProtected)
		if reserveID, ok := r.ActiveReserveID(); ok {
			fmt.Printf("Recording: %s\n", reserveID)
		}
		if r.DropLogFile != nil {
			fmt.Printf("Drop log:  %s (error %d, drop %d, scrambling %d)\n",
				r.DropLogFile.FilePath, r.DropLogFile.ErrorCnt, r.DropLogFile.DropCnt, r.DropLogFile.ScramblingCnt)
		}
		for _, t := range r.Thumbnails {
			fmt.Printf("Thumbnail: %s\n", t.FilePath)
		}
		fmt.Println()

		if !r.HasVideoFiles() {
			fmt.Println("No video files.")
			return nil
		}

		rows := make([][]string, 0, len(r.VideoFiles))
		for _, v := range r.VideoFiles {
			rows = append(rows, []string{v.ID, v.Name, v.Type, v.ParentDirectoryName, v.FilePath, formatSize(v.Size)})
		}
		rows = append(rows, []string{"", "", "", "", "total", formatSize(r.TotalSize())})
		fmt.Println(renderTable(
			[]string{"ID", "Name", "Type", "Alias", "Path", "Size"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
		))
		return nil
	},
}

var recordedDeleteCmd = &cobra.Command{
	Use:   "delete ID...",
	Short: "Delete recordings with all of their files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirm(cmd, fmt.Sprintf("Delete %d recording(s) and their files?", len(args)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}

		a, err := newApp("DeleteRecorded", args)
		if err != nil {
			return err
		}
		defer a.Close()

		for _, id := range args {
			if err := a.DeleteRecorded(id); err != nil {
				return fmt.Errorf("deleting recording %s: %w", id, err)
			}
			fmt.Printf("Deleted %s\n", id)
		}
		return nil
	},
}

func newProtectCmd(use, short string, isProtected bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp("ChangeProtect", []string{args[0], strconv.FormatBool(isProtected)})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.ChangeProtect(args[0], isProtected); err != nil {
				return err
			}
			fmt.Printf("%s protected: %t\n", args[0], isProtected)
			return nil
		},
	}
}

// video command
var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Manage video files",
}

var videoAddCmd = &cobra.Command{
	Use:   "add RECORDED_ID ALIAS PATH",
	Short: "Track an existing file as a video file of a recording",
	Long:  "PATH is relative to the recorded directory named by ALIAS.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileType, _ := cmd.Flags().GetString("type")
		name, _ := cmd.Flags().GetString("name")

		a, err := newApp("AddVideoFile", args)
		if err != nil {
			return err
		}
		defer a.Close()

		id, err := a.AddVideoFile(recorded.AddVideoFileOption{
			RecordedID:          args[0],
			ParentDirectoryName: args[1],
			FilePath:            args[2],
			Type:                fileType,
			Name:                name,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added video file %s\n", id)
		return nil
	},
}

var videoDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a video file, and its recording if it was the last one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirm(cmd, fmt.Sprintf("Delete video file %s?", args[0]))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}

		a, err := newApp("DeleteVideoFile", args)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.DeleteVideoFile(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

var videoRefreshSizeCmd = &cobra.Command{
	Use:   "refresh-size ID",
	Short: "Store the current on-disk size of a video file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UpdateVideoFileSize", args)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.UpdateVideoFileSize(args[0]); err != nil {
			return err
		}
		fmt.Printf("Updated %s\n", args[0])
		return nil
	},
}

func init() {
	recordedCmd.AddCommand(recordedListCmd)
	recordedCmd.AddCommand(recordedShowCmd)
	recordedCmd.AddCommand(recordedDeleteCmd)
	recordedDeleteCmd.Flags().BoolP("yes", "y", false, "Delete without asking")
	recordedCmd.AddCommand(newProtectCmd("protect", "Protect a recording from automatic deletion", true))
	recordedCmd.AddCommand(newProtectCmd("unprotect", "Clear the protect flag of a recording", false))

	videoCmd.AddCommand(videoAddCmd)
	videoAddCmd.Flags().String("type", "ts", "Video file type")
	videoAddCmd.Flags().String("name", "TS", "Display name of the video file")
	videoCmd.AddCommand(videoDeleteCmd)
	videoDeleteCmd.Flags().BoolP("yes", "y", false, "Delete without asking")
	videoCmd.AddCommand(videoRefreshSizeCmd)
}
