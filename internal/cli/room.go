package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/chessroom-go/internal/api/response"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room management commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomShowCmd())
	cmd.AddCommand(newRoomJoinCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var vsEngine bool

	cmd := &cobra.Command{
		Use:   "create <code>",
		Short: "Create a new room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"code": args[0]}
			if vsEngine {
				req["vs_engine"] = true
			}

			var result response.Room

			if err := client.Post("/api/v1/rooms", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(&result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&vsEngine, "vs-engine", false, "Play against the engine opponent")

	return cmd
}

func newRoomShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <code>",
		Short: "Show room state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Room

			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(&result)
			return nil
		},
	}
}

func newRoomJoinCmd() *cobra.Command {
	var seat string

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join a room, optionally preferring a seat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{}
			if seat != "" {
				req["seat"] = seat
			}

			var result response.JoinResult

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/join", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(&result)
			return nil
		},
	}

	cmd.Flags().StringVar(&seat, "seat", "", "Seat preference: white or black")

	return cmd
}

func newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <code> <input>",
		Short: "Submit a move (notation or free text)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"input": args[1]}

			var result response.MoveResult

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/moves", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(&result)
			return nil
		},
	}
}

func newResignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resign <code>",
		Short: "Resign the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Room

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/resign", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(&result)
			return nil
		},
	}
}

func newEngineMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "engine-move <code>",
		Short: "Ask the engine opponent to play its reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.MoveResult

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/engine-move", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(&result)
			return nil
		},
	}
}
