package bot

import (
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/cookie-is-yummy/weed/internal/notify"
)

const (
	colorDefault = 0x36393F
	colorSuccess = 0x5EFB8F
	colorFail    = 0xE4334F
	colorError   = 0xE4334F
)

func errorEmbed(description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Description: description,
		Color:       colorError,
	}
}

func payloadEmbed(p notify.Payload) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       p.Title,
		Description: p.Description,
		Color:       p.Color,
	}
	if embed.Color == 0 {
		embed.Color = colorDefault
	}
	if p.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: p.Footer}
	}
	return embed
}

func (b *Bot) replyError(channelID, description string) {
	if _, err := b.session.ChannelMessageSendEmbed(channelID, errorEmbed(description)); err != nil {
		b.log.Warn("send error reply failed", "channel", channelID, "err", err)
	}
}

// commafy renders n with thousands separators for money strings.
func commafy(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
