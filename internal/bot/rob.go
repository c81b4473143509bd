package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/cookie-is-yummy/weed/internal/economy"
	"github.com/cookie-is-yummy/weed/internal/notify"
)

// resultEditDelay is the pause between the "robbing .." message and the
// outcome edit, for suspense.
const resultEditDelay = 1500 * time.Millisecond

func (b *Bot) handleRob(ctx context.Context, m *discordgo.MessageCreate, args []string) error {
	if len(args) == 0 {
		embed := &discordgo.MessageEmbed{
			Title: "rob help",
			Color: colorDefault,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "usage", Value: b.prefix + "rob <@user>"},
				{Name: "help", Value: "robbing a user is a useful way for you to make money\n" +
					"you can steal a maximum of **40**% of their balance\n" +
					"but there is also a chance that you get caught by the police or just flat out failing the robbery\n" +
					"you can lose up to **25**% of your balance by failing a robbery"},
			},
		}
		_, err := b.session.ChannelMessageSendEmbed(m.ChannelID, embed)
		return err
	}

	if err := b.eco.EnsureAccount(ctx, m.Author.ID, m.Author.Username); err != nil {
		return err
	}

	// An unresolvable or bot target settles as an empty id; the engine
	// checks the cooldown before target validity, so an actor on cooldown
	// hears that first.
	target := b.resolveTarget(m, args)
	var robTargetID string
	if target != nil && !target.Bot {
		robTargetID = target.ID
	}

	result, err := b.eco.AttemptRobbery(ctx, m.Author.ID, robTargetID)
	if err != nil {
		var cd *economy.CooldownError
		switch {
		case errors.As(err, &cd):
			b.replyError(m.ChannelID, fmt.Sprintf("still on cooldown for `%s`", economy.FormatShortDuration(cd.Remaining)))
		case errors.Is(err, economy.ErrInvalidTarget):
			b.replyError(m.ChannelID, "invalid user")
		case errors.Is(err, economy.ErrSelfTarget):
			b.replyError(m.ChannelID, "you cant rob yourself")
		case errors.Is(err, economy.ErrTargetFunds):
			b.replyError(m.ChannelID, "this user doesnt have sufficient funds")
		case errors.Is(err, economy.ErrActorFunds):
			b.replyError(m.ChannelID, "you need $750 in your wallet to rob someone")
		default:
			return err
		}
		return nil
	}

	guildName := m.GuildID
	if guild, gerr := b.session.State.Guild(m.GuildID); gerr == nil {
		guildName = guild.Name
	}

	outcome := robOutcomeEmbed(m.Author.Username, target.Username, result)
	dm := robTargetPayload(m.Author.Username, guildName, b.prefix, result)

	pending := &discordgo.MessageEmbed{
		Title:       "robbery | " + m.Author.Username,
		Description: "robbing " + target.Mention() + "..",
		Color:       colorDefault,
	}
	sent, err := b.session.ChannelMessageSendEmbed(m.ChannelID, pending)
	if err != nil {
		return err
	}

	targetID := target.ID
	channelID := m.ChannelID
	messageID := sent.ID
	time.AfterFunc(resultEditDelay, func() {
		edit := discordgo.NewMessageEdit(channelID, messageID)
		edit.SetEmbed(outcome)
		if _, err := b.session.ChannelMessageEditComplex(edit); err != nil {
			b.log.Warn("edit robbery result", "channel", channelID, "err", err)
		}

		dmCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		wants, err := b.eco.DMNotifications(dmCtx, targetID)
		if err != nil {
			b.log.Warn("read dm preference", "user", targetID, "err", err)
			return
		}
		if !wants {
			return
		}
		if err := b.SendDM(dmCtx, targetID, dm); err != nil {
			b.log.Warn("robbery dm failed", "user", targetID, "err", err)
		}
	})
	return nil
}

// robOutcomeEmbed renders the channel-facing result for the robber.
func robOutcomeEmbed(actorName, targetName string, r *economy.RobberyResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Title: "robbery | " + actorName}

	switch r.Outcome {
	case economy.RobOutcomeProtected:
		embed.Color = colorFail
		embed.Fields = []*discordgo.MessageEmbedField{{
			Name: "**fail!!**",
			Value: fmt.Sprintf("**%s** has been robbed recently and is protected by a private security team\n"+
				"you were caught and paid $%s (%d%%)", targetName, commafy(r.Amount), r.Percent),
		}}
	case economy.RobOutcomePadlock:
		embed.Color = colorFail
		embed.Fields = []*discordgo.MessageEmbedField{{
			Name:  "fail!!",
			Value: fmt.Sprintf("**%s** had a padlock, which has now been broken", targetName),
		}}
	case economy.RobOutcomeSuccess:
		embed.Color = colorSuccess
		embed.Fields = []*discordgo.MessageEmbedField{{
			Name:  "success!!",
			Value: fmt.Sprintf("you stole $**%s** (%d%%)", commafy(r.Amount), r.Percent),
		}}
		if r.XPBonus {
			embed.Footer = &discordgo.MessageEmbedFooter{Text: "+1xp"}
		}
	case economy.RobOutcomeFailure:
		embed.Color = colorFail
		embed.Fields = []*discordgo.MessageEmbedField{{
			Name:  "fail!!",
			Value: fmt.Sprintf("you lost $**%s** (%d%%)", commafy(r.Amount), r.Percent),
		}}
	}
	return embed
}

// robTargetPayload renders the DM sent to the robbery target.
func robTargetPayload(actorName, guildName, prefix string, r *economy.RobberyResult) notify.Payload {
	p := notify.Payload{
		Footer: fmt.Sprintf("use %sdmsettings to toggle bot dms", prefix),
	}

	switch r.Outcome {
	case economy.RobOutcomeProtected:
		p.Title = "you were nearly robbed"
		p.Color = colorSuccess
		p.Description = fmt.Sprintf("**%s** tried to rob you in **%s**\n"+
			"since you have been robbed recently, you are protected by a private security team.\n"+
			"you have been given $**%s**", actorName, guildName, commafy(r.Amount))
	case economy.RobOutcomePadlock:
		p.Title = "you were nearly robbed"
		p.Color = colorSuccess
		p.Description = fmt.Sprintf("**%s** tried to rob you in **%s**\n"+
			"your padlock has saved you from a robbery, but it has been broken\n"+
			"they would have stolen $**%s**", actorName, guildName, commafy(r.Amount))
	case economy.RobOutcomeSuccess:
		p.Title = "you have been robbed"
		p.Color = colorFail
		p.Description = fmt.Sprintf("**%s** has robbed you in **%s**\n"+
			"they stole a total of $**%s**", actorName, guildName, commafy(r.Amount))
	case economy.RobOutcomeFailure:
		p.Title = "you were nearly robbed"
		p.Color = colorSuccess
		p.Description = fmt.Sprintf("**%s** tried to rob you in **%s**\n"+
			"they were caught by the police and you received $**%s**", actorName, guildName, commafy(r.Amount))
	}
	return p
}
