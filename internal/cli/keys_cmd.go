package cli

import (
	"fmt"
	"strconv"

	"github.com/soyeahso/chatbasket/internal/keys"
	"github.com/spf13/cobra"
)

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print the store key of a chat entity",
	}

	cmd.AddCommand(
		newKeyCmd("room <room-id>", "Key holding a room", 1, func(a []string) (string, error) {
			return keys.Room(a[0])
		}),
		newKeyCmd("users-in-room <room-id>", "Key of the set of users in a room", 1, func(a []string) (string, error) {
			return keys.UsersInRoom(a[0])
		}),
		newKeyCmd("user-in-room <username> <room-id>", "In-process presence index key", 2, func(a []string) (string, error) {
			return keys.UserInRoom(a[0], a[1])
		}),
		newKeyCmd("allowed <room-id>", "Key of a private room's allow-list", 1, func(a []string) (string, error) {
			return keys.UsersAllowedInPrivateRoom(a[0])
		}),
		newKeyCmd("session <session-key>", "Key holding session data", 1, func(a []string) (string, error) {
			return keys.SessionData(a[0])
		}),
		newKeyCmd("chatentries <room-id>", "Key of a room's backlog", 1, func(a []string) (string, error) {
			return keys.ChatEntries(a[0])
		}),
		newKeyCmd("next-room-id", "Key of the room id counter", 0, func(a []string) (string, error) {
			return keys.NextRoomID(), nil
		}),
		newKeyCmd("user-count <instance>", "Key of an instance's user counter", 1, func(a []string) (string, error) {
			n, err := parseInstance(a[0])
			if err != nil {
				return "", err
			}
			return keys.UserCount(n)
		}),
		newKeyCmd("runtime-stats <instance>", "Key of an instance's runtime stats", 1, func(a []string) (string, error) {
			n, err := parseInstance(a[0])
			if err != nil {
				return "", err
			}
			return keys.RuntimeStats(n)
		}),
		newRoomListKeyCmd(),
	)

	return cmd
}

func newKeyCmd(use, short string, nargs int, build func(args []string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := build(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}

func newRoomListKeyCmd() *cobra.Command {
	var (
		roomType string
		users    []string
	)

	cmd := &cobra.Command{
		Use:   "room-list <community-id>",
		Short: "Key listing a community's rooms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := keys.RoomList(args[0], roomType, users)
			if err != nil {
				return err
			}
			log.Debug().
				Str("type", roomType).
				Strs("users", users).
				Str("digest", keys.DigestVersion).
				Msg("built room list key")
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}

	cmd.Flags().StringVar(&roomType, "type", keys.RoomTypeOpen, "room type; any type but open is keyed by its users")
	cmd.Flags().StringArrayVar(&users, "user", nil, "participant username (repeatable)")

	return cmd
}

func parseInstance(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("instance %q is not a number", s)
	}
	return n, nil
}
