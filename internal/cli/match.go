package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match commands",
	}

	cmd.AddCommand(newMatchCreateCmd())
	cmd.AddCommand(newMatchJoinCmd())
	cmd.AddCommand(newMatchStartCmd())
	cmd.AddCommand(newMatchGuessCmd())
	cmd.AddCommand(newMatchMeCmd())

	return cmd
}

func newMatchCreateCmd() *cobra.Command {
	var name string
	var rounds int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a match and take the host seat",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"player_name": name, "total_rounds": rounds}

			var seat Seat
			if err := client.Post(cmd.Context(), "/api/v1/matches", req, &seat); err != nil {
				return err
			}
			if err := cfg.SaveSeat(seat); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(seat)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Your display name")
	cmd.Flags().IntVar(&rounds, "rounds", 1, "Number of rounds")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newMatchJoinCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join a match by its code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"code": strings.ToUpper(args[0]), "player_name": name}

			var seat Seat
			if err := client.Post(cmd.Context(), "/api/v1/matches/join", req, &seat); err != nil {
				return err
			}
			if err := cfg.SaveSeat(seat); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(seat)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Your display name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newMatchStartCmd() *cobra.Command {
	var matchFlag string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the match (host only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			matchID, err := cfg.ResolveMatch(matchFlag)
			if err != nil {
				return err
			}
			if err := client.Post(cmd.Context(), "/api/v1/matches/"+matchID+"/start", nil, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Match started")
			return nil
		},
	}

	cmd.Flags().StringVar(&matchFlag, "match", "", "Match ID (default: saved seat)")
	return cmd
}

func newMatchGuessCmd() *cobra.Command {
	var matchFlag string

	cmd := &cobra.Command{
		Use:   "guess <player-id>",
		Short: "Name the player you think holds the target chit (seeker only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matchID, err := cfg.ResolveMatch(matchFlag)
			if err != nil {
				return err
			}
			req := map[string]string{"guessed_player_id": args[0]}
			if err := client.Post(cmd.Context(), "/api/v1/matches/"+matchID+"/rounds/current/guess", req, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Guess recorded")
			return nil
		},
	}

	cmd.Flags().StringVar(&matchFlag, "match", "", "Match ID (default: saved seat)")
	return cmd
}

func newMatchMeCmd() *cobra.Command {
	var matchFlag string

	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the match from your seat, including your chit",
		RunE: func(cmd *cobra.Command, args []string) error {
			matchID, err := cfg.ResolveMatch(matchFlag)
			if err != nil {
				return err
			}

			var view PlayerView
			if err := client.Get(cmd.Context(), "/api/v1/matches/"+matchID+"/me", &view); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(view)
			return nil
		},
	}

	cmd.Flags().StringVar(&matchFlag, "match", "", "Match ID (default: saved seat)")
	return cmd
}
