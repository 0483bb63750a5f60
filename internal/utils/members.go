package utils

import (
	"github.com/bwmarrin/discordgo"
)

// MemberLookup resolves a guild member from the session state cache, falling
// back to the REST API on a cache miss.
func MemberLookup(s *discordgo.Session) func(guildID, userID string) (*discordgo.Member, error) {
	return func(guildID, userID string) (*discordgo.Member, error) {
		if s.State != nil {
			if member, err := s.State.Member(guildID, userID); err == nil {
				return member, nil
			}
		}
		return s.GuildMember(guildID, userID)
	}
}
