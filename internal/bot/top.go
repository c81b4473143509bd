package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/cookie-is-yummy/weed/internal/economy"
	"github.com/cookie-is-yummy/weed/internal/leaderboard"
)

func (b *Bot) handleTop(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	name := "balance"
	global := false
	for _, arg := range args {
		arg = strings.ToLower(arg)
		if arg == "global" {
			global = true
			continue
		}
		name = arg
	}

	metric, err := b.resolveMetric(name)
	if err != nil {
		b.replyError(m.ChannelID, "unknown leaderboard, try balance, networth, prestige, streak, lotto, wordle, completion, guilds or an item")
		return nil
	}

	scope := leaderboard.GlobalScope()
	if !global && metric.Name != "guilds" {
		members := b.guildMembers(m.GuildID)
		roster := make([]leaderboard.Member, 0, len(members))
		for _, member := range members {
			if member.User == nil || member.User.Bot {
				continue
			}
			roster = append(roster, leaderboard.Member{ID: member.User.ID, Username: displayName(member)})
		}
		scope = leaderboard.GuildScope(roster)
	}

	ranking, err := b.boards.Rank(ctx, metric, scope, m.Author.ID)
	if err != nil {
		return err
	}
	if len(ranking.Pages) == 0 {
		b.replyError(m.ChannelID, "no data for that leaderboard yet")
		return nil
	}

	title := "top " + name
	if scope.Global {
		title += " [global]"
	}
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: strings.Join(ranking.Pages[0], "\n"),
		Color:       colorDefault,
	}

	var footer []string
	if ranking.Position > 0 {
		footer = append(footer, fmt.Sprintf("you are in position %d", ranking.Position))
	}
	if len(ranking.Pages) > 1 {
		footer = append(footer, fmt.Sprintf("page 1/%d", len(ranking.Pages)))
	}
	if len(footer) > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: strings.Join(footer, " | ")}
	}

	_, err = b.session.ChannelMessageSendEmbed(m.ChannelID, embed)
	return err
}

// resolveMetric maps a command argument to a board, falling back to item
// boards for catalog item ids.
func (b *Bot) resolveMetric(name string) (leaderboard.Metric, error) {
	metric, err := b.boards.ByName(name)
	if err == nil {
		return metric, nil
	}
	if !errors.Is(err, economy.ErrUnknownLeaderboard) {
		return leaderboard.Metric{}, err
	}
	if _, ok := economy.Items()[name]; ok {
		return b.boards.Item(name), nil
	}
	return leaderboard.Metric{}, economy.ErrUnknownLeaderboard
}
