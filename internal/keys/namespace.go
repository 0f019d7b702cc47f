package keys

// Namespace binds the key builders to one server instance, so per-instance
// keys need no argument. Its other methods forward to the package-level
// builders of the same name. The zero value is not usable; use NewNamespace.
type Namespace struct {
	instance int
}

// NewNamespace returns a Namespace for the 1-based instance number.
func NewNamespace(instance int) (*Namespace, error) {
	if err := checkInstance(instance); err != nil {
		return nil, err
	}
	return &Namespace{instance: instance}, nil
}

// Instance returns the bound 1-based instance number.
func (n *Namespace) Instance() int { return n.instance }

// UserCount returns this instance's connected-user counter key.
func (n *Namespace) UserCount() string {
	key, _ := UserCount(n.instance)
	return key
}

// RuntimeStats returns this instance's runtime statistics key.
func (n *Namespace) RuntimeStats() string {
	key, _ := RuntimeStats(n.instance)
	return key
}

// OpenRoomList returns the open room list key of a community.
func (n *Namespace) OpenRoomList(communityID string) (string, error) {
	return OpenRoomList(communityID)
}

// RoomList returns the room list key for a room type and its users.
func (n *Namespace) RoomList(communityID, roomType string, users []string) (string, error) {
	return RoomList(communityID, roomType, users)
}

// NextRoomID returns the room id counter key.
func (n *Namespace) NextRoomID() string { return NextRoomID() }

// Room returns the key of a room.
func (n *Namespace) Room(roomID string) (string, error) { return Room(roomID) }

// UserInRoom returns the local index key of a user in a room.
func (n *Namespace) UserInRoom(username, roomID string) (string, error) {
	return UserInRoom(username, roomID)
}

// UsersInRoom returns the key of a room's member set.
func (n *Namespace) UsersInRoom(roomID string) (string, error) { return UsersInRoom(roomID) }

// UsersAllowedInPrivateRoom returns the allow-list key of a private room.
func (n *Namespace) UsersAllowedInPrivateRoom(roomID string) (string, error) {
	return UsersAllowedInPrivateRoom(roomID)
}

// SessionData returns the key of a user session.
func (n *Namespace) SessionData(sessionKey string) (string, error) {
	return SessionData(sessionKey)
}

// ChatEntries returns the key of a room's message backlog.
func (n *Namespace) ChatEntries(roomID string) (string, error) { return ChatEntries(roomID) }
