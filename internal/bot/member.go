package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// resolveTarget picks the robbery target: an explicit mention wins,
// otherwise the first argument is matched against the guild roster.
func (b *Bot) resolveTarget(m *discordgo.MessageCreate, args []string) *discordgo.User {
	for _, u := range m.Mentions {
		return u
	}
	if len(args) == 0 {
		return nil
	}
	if member := b.findMember(m.GuildID, args[0]); member != nil {
		return member.User
	}
	return nil
}

// findMember fuzzy-matches a guild member by id, name, or nickname.
// Matching tightens in passes: exact id, exact name, prefix, substring.
func (b *Bot) findMember(guildID, query string) *discordgo.Member {
	members := b.guildMembers(guildID)
	if len(members) == 0 {
		return nil
	}

	query = strings.ToLower(strings.Trim(query, "<@!>"))

	for _, member := range members {
		if member.User.ID == query {
			return member
		}
	}
	for _, member := range members {
		if strings.ToLower(member.User.Username) == query || strings.ToLower(member.Nick) == query {
			return member
		}
	}
	for _, member := range members {
		if strings.HasPrefix(strings.ToLower(member.User.Username), query) ||
			(member.Nick != "" && strings.HasPrefix(strings.ToLower(member.Nick), query)) {
			return member
		}
	}
	for _, member := range members {
		if strings.Contains(strings.ToLower(member.User.Username), query) ||
			(member.Nick != "" && strings.Contains(strings.ToLower(member.Nick), query)) {
			return member
		}
	}
	return nil
}

// guildMembers reads the roster from gateway state, falling back to the
// REST chunk endpoint when the cache is cold.
func (b *Bot) guildMembers(guildID string) []*discordgo.Member {
	if guild, err := b.session.State.Guild(guildID); err == nil && len(guild.Members) > 0 {
		return guild.Members
	}
	members, err := b.session.GuildMembers(guildID, "", 1000)
	if err != nil {
		b.log.Warn("fetch guild members", "guild", guildID, "err", err)
		return nil
	}
	return members
}

func displayName(member *discordgo.Member) string {
	if member.Nick != "" {
		return member.Nick
	}
	return member.User.Username
}
