package economy

// Item ids referenced by game logic.
const (
	ItemPadlock  = "padlock"
	ItemCalendar = "calendar"
	ItemWhiteGem = "white_gem"
)

// Item describes an inventory item: display strings and the unit worth used
// by the net-worth calculation.
type Item struct {
	ID     string
	Name   string
	Plural string
	Emoji  string
	Worth  int64
}

var items = map[string]Item{
	ItemPadlock:   {ID: ItemPadlock, Name: "padlock", Plural: "padlocks", Emoji: "🔒", Worth: 25_000},
	ItemCalendar:  {ID: ItemCalendar, Name: "calendar", Plural: "calendars", Emoji: "📅", Worth: 150_000},
	ItemWhiteGem:  {ID: ItemWhiteGem, Name: "white gem", Plural: "white gems", Emoji: "💎", Worth: 2_500_000},
	"lottery_ticket": {ID: "lottery_ticket", Name: "lottery ticket", Plural: "lottery tickets", Emoji: "🎟️", Worth: 15_000},
	"gold_watch":     {ID: "gold_watch", Name: "gold watch", Plural: "gold watches", Emoji: "⌚", Worth: 500_000},
	"streak_token":   {ID: "streak_token", Name: "streak token", Plural: "streak tokens", Emoji: "🪙", Worth: 50_000},
}

// Items returns the item catalog keyed by item id.
func Items() map[string]Item {
	return items
}

// ItemName returns the singular or plural display name for an amount.
func ItemName(id string, amount int64) string {
	item, ok := items[id]
	if !ok {
		return id
	}
	if amount > 1 && item.Plural != "" {
		return item.Plural
	}
	return item.Name
}

// Tag is a cosmetic profile tag; the emoji prefixes the owner's name on
// leaderboards.
type Tag struct {
	ID    string
	Emoji string
}

var tags = map[string]Tag{
	"og":        {ID: "og", Emoji: "🌿"},
	"gambler":   {ID: "gambler", Emoji: "🎰"},
	"kingpin":   {ID: "kingpin", Emoji: "👑"},
	"collector": {ID: "collector", Emoji: "🗃️"},
}

// Tags returns the tag catalog keyed by tag id.
func Tags() map[string]Tag {
	return tags
}
