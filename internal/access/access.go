package access

import (
	"slices"

	"github.com/disgoorg/snowflake/v2"
)

// IDSet is a set of snowflake IDs.
type IDSet map[snowflake.ID]struct{}

// NewIDSet builds a set from ids. Duplicates collapse.
func NewIDSet(ids ...snowflake.ID) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is in the set.
func (s IDSet) Has(id snowflake.ID) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order, mostly for logging.
func (s IDSet) Sorted() []snowflake.ID {
	ids := make([]snowflake.ID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Policy decides which messages and which users the bot listens to.
// A Policy is never mutated after construction.
type Policy struct {
	channels IDSet
	roles    IDSet
	admins   IDSet
}

// NewPolicy creates a policy from the monitored channels, required roles and
// administrator IDs.
func NewPolicy(channels, roles, admins []snowflake.ID) Policy {
	return Policy{
		channels: NewIDSet(channels...),
		roles:    NewIDSet(roles...),
		admins:   NewIDSet(admins...),
	}
}

// ChannelMonitored reports whether messages in channelID are inspected. An
// empty channel set monitors nothing.
func (p Policy) ChannelMonitored(channelID snowflake.ID) bool {
	return p.channels.Has(channelID)
}

// MemberAllowed reports whether a member holding roles passes the role filter.
// With no required roles configured every member passes.
func (p Policy) MemberAllowed(roles []snowflake.ID) bool {
	if len(p.roles) == 0 {
		return true
	}
	for _, role := range roles {
		if p.roles.Has(role) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether userID may run administrative commands.
func (p Policy) IsAdmin(userID snowflake.ID) bool {
	return p.admins.Has(userID)
}

func (p Policy) Channels() []snowflake.ID { return p.channels.Sorted() }
func (p Policy) Roles() []snowflake.ID    { return p.roles.Sorted() }
func (p Policy) Admins() []snowflake.ID   { return p.admins.Sorted() }
