// Package keys builds the canonical names of shared chat state in the store.
//
// Every builder is a pure function of its arguments, so any process (or any
// other participant using the same rules) derives the same key for the same
// entity without coordination.
package keys

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Separator joins an entity prefix to its suffix.
const Separator = ":"

// Entity prefixes. Callers scanning the store by kind match on these.
const (
	PrefixRoomsOnWiki        = "rooms_on_wiki"
	PrefixRoom               = "room"
	PrefixUsersInRoom        = "users_in_room"
	PrefixUsersAllowedInRoom = "users_allowed_in_priv_room"
	PrefixSessionData        = "session_data"
	PrefixChatEntries        = "chatentries"
	PrefixUserCounts         = "UserCounts_"
	PrefixRuntimeStats       = "runtimeStats_"
)

// NextRoomIDKey holds the room id counter.
const NextRoomIDKey = "next.room.id"

// RoomTypeOpen is the room type whose listing lives under a single key.
const RoomTypeOpen = "open"

// DigestVersion names the digest contract used for restricted room lists.
// Every process reading or writing those keys must agree on it.
const DigestVersion = "v1"

// userSeparator joins sorted usernames before digesting.
const userSeparator = ","

// DigestV1 returns the lowercase hex MD5 of s.
func DigestV1(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// InvalidIdentifierError reports an identifier that would produce an empty
// or ambiguous key.
type InvalidIdentifierError struct {
	Kind   string
	Value  string
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("keys: invalid %s %q: %s", e.Kind, e.Value, e.Reason)
}

func checkID(kind, id string) error {
	if id == "" {
		return &InvalidIdentifierError{Kind: kind, Value: id, Reason: "must not be empty"}
	}
	if strings.Contains(id, Separator) {
		return &InvalidIdentifierError{Kind: kind, Value: id, Reason: "must not contain " + strconv.Quote(Separator)}
	}
	return nil
}

func checkInstance(instance int) error {
	if instance < 1 {
		return &InvalidIdentifierError{Kind: "instance", Value: strconv.Itoa(instance), Reason: "must be 1 or greater"}
	}
	return nil
}

func join(prefix, suffix string) string {
	return prefix + Separator + suffix
}

// OpenRoomList returns the key listing a community's open rooms.
func OpenRoomList(communityID string) (string, error) {
	if err := checkID("community id", communityID); err != nil {
		return "", err
	}
	return join(PrefixRoomsOnWiki, communityID), nil
}

// RoomList returns the key listing a community's rooms of roomType. Open
// rooms share one key; other types are keyed by a digest of the type and
// the participant set, so the order of users does not matter. users is not
// modified.
func RoomList(communityID, roomType string, users []string) (string, error) {
	if roomType == RoomTypeOpen {
		return OpenRoomList(communityID)
	}
	if err := checkID("community id", communityID); err != nil {
		return "", err
	}
	if roomType == "" {
		return "", &InvalidIdentifierError{Kind: "room type", Value: roomType, Reason: "must not be empty"}
	}

	sorted := make([]string, len(users))
	copy(sorted, users)
	for _, u := range sorted {
		if u == "" {
			return "", &InvalidIdentifierError{Kind: "username", Value: u, Reason: "must not be empty"}
		}
		if strings.Contains(u, userSeparator) {
			return "", &InvalidIdentifierError{Kind: "username", Value: u, Reason: "must not contain " + strconv.Quote(userSeparator)}
		}
	}
	sort.Strings(sorted)

	digest := DigestV1(roomType + strings.Join(sorted, userSeparator))
	return join(PrefixRoomsOnWiki, communityID) + Separator + digest, nil
}

// NextRoomID returns the key of the room id counter.
func NextRoomID() string { return NextRoomIDKey }

// Room returns the key holding a room's data.
func Room(roomID string) (string, error) {
	if err := checkID("room id", roomID); err != nil {
		return "", err
	}
	return join(PrefixRoom, roomID), nil
}

// UserInRoom returns the in-process index key for one user's presence in one
// room. It is never written to the shared store, so it carries no prefix.
// The username may contain the separator; the room id may not.
func UserInRoom(username, roomID string) (string, error) {
	if err := checkID("room id", roomID); err != nil {
		return "", err
	}
	if username == "" {
		return "", &InvalidIdentifierError{Kind: "username", Value: username, Reason: "must not be empty"}
	}
	return roomID + Separator + username, nil
}

// UsersInRoom returns the key of the set of usernames present in a room.
func UsersInRoom(roomID string) (string, error) {
	if err := checkID("room id", roomID); err != nil {
		return "", err
	}
	return join(PrefixUsersInRoom, roomID), nil
}

// UsersAllowedInPrivateRoom returns the key of a private room's allow-list.
func UsersAllowedInPrivateRoom(roomID string) (string, error) {
	if err := checkID("room id", roomID); err != nil {
		return "", err
	}
	return join(PrefixUsersAllowedInRoom, roomID), nil
}

// SessionData returns the key holding a client session.
func SessionData(sessionKey string) (string, error) {
	if err := checkID("session key", sessionKey); err != nil {
		return "", err
	}
	return join(PrefixSessionData, sessionKey), nil
}

// ChatEntries returns the key of a room's message backlog.
func ChatEntries(roomID string) (string, error) {
	if err := checkID("room id", roomID); err != nil {
		return "", err
	}
	return join(PrefixChatEntries, roomID), nil
}

// UserCount returns the key of a server instance's connected-user counter.
func UserCount(instance int) (string, error) {
	if err := checkInstance(instance); err != nil {
		return "", err
	}
	return PrefixUserCounts + strconv.Itoa(instance), nil
}

// RuntimeStats returns the key of a server instance's runtime statistics.
func RuntimeStats(instance int) (string, error) {
	if err := checkInstance(instance); err != nil {
		return "", err
	}
	return PrefixRuntimeStats + strconv.Itoa(instance), nil
}
