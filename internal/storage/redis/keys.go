package redis

import (
	"fmt"

	"github.com/openfest/gatekeeper/internal/model"
)

// Key prefix for all gatekeeper data
const keyPrefix = "gatekeeper"

// participantKey returns the Redis key for a Participant document
func participantKey(id model.ParticipantID) string {
	return fmt.Sprintf("%s:participant:%s", keyPrefix, id)
}

// participantIndexKey returns the Redis key for the SET of all participant IDs
func participantIndexKey() string {
	return fmt.Sprintf("%s:idx:participants", keyPrefix)
}

// identifierRegistryKey returns the Redis key for the SET of allocated identifiers
func identifierRegistryKey() string {
	return fmt.Sprintf("%s:identifiers", keyPrefix)
}

// actionLogKey returns the Redis key for a participant's action log LIST
func actionLogKey(id model.ParticipantID) string {
	return fmt.Sprintf("%s:log:%s", keyPrefix, id)
}

// recentActionsKey returns the Redis key for the global recent-actions LIST
func recentActionsKey() string {
	return fmt.Sprintf("%s:log:recent", keyPrefix)
}

// staffKey returns the Redis key for a Staff document
func staffKey(username string) string {
	return fmt.Sprintf("%s:staff:%s", keyPrefix, username)
}

// staffIndexKey returns the Redis key for the SET of staff usernames
func staffIndexKey() string {
	return fmt.Sprintf("%s:idx:staff", keyPrefix)
}
