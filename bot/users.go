package bot

import (
	"time"

	"github.com/ReneKroon/ttlcache/v2"
	"github.com/diamondburned/arikawa/v3/discord"
)

const userCacheTTL = time.Hour

// User returns a user. If guildID is valid and the user is a member of that guild, the user is taken from the member cache.
// Otherwise, it is fetched from Discord and cached for an hour.
func (bot *Bot) User(guildID discord.GuildID, userID discord.UserID) (*discord.User, error) {
	if guildID.IsValid() {
		m, err := bot.State.Cabinet.Member(guildID, userID)
		if err == nil {
			return &m.User, nil
		}
	}

	if v, err := bot.users.Get(userID.String()); err == nil {
		u := v.(discord.User)
		return &u, nil
	}

	u, err := bot.State.User(userID)
	if err != nil {
		return nil, err
	}

	_ = bot.users.Set(userID.String(), *u)
	return u, nil
}

func newUserCache() *ttlcache.Cache {
	c := ttlcache.NewCache()
	_ = c.SetTTL(userCacheTTL)
	c.SkipTTLExtensionOnHit(true)
	return c
}
