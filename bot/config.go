package bot

import (
	"os"
	"time"

	"emperror.dev/errors"
	"github.com/BurntSushi/toml"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/joho/godotenv"
)

type Config struct {
	Auth   AuthConfig   `toml:"auth"`
	Bot    BotConfig    `toml:"bot"`
	Twitch TwitchConfig `toml:"twitch"`
	Web    WebConfig    `toml:"web"`
	Info   InfoConfig   `toml:"info"`
}

type AuthConfig struct {
	Discord  string `toml:"discord"`
	Postgres string `toml:"postgres"`
	Redis    string `toml:"redis"`
	Sentry   string `toml:"sentry"`

	// Mongo is used for guild settings instead of Postgres if set.
	Mongo         string `toml:"mongo"`
	MongoDatabase string `toml:"mongo_database"`

	ErrorWebhook string `toml:"error_webhook"`

	PexelsKey string `toml:"pexels_key"`
	BingKey   string `toml:"bing_key"`

	Influx AuthInfluxConfig `toml:"influx"`
}

type AuthInfluxConfig struct {
	URL          string `toml:"url"`
	Token        string `toml:"token"`
	Organization string `toml:"organization"`
	Database     string `toml:"database"`
}

type BotConfig struct {
	Owners          []discord.UserID `toml:"owners"`
	Prefix          string           `toml:"prefix"`
	CommandsGuildID discord.GuildID  `toml:"commands_guild_id"`
	NoSyncCommands  bool             `toml:"no_sync_commands"`
	Debug           bool             `toml:"debug"`

	// GuildLog receives guild join/leave embeds.
	GuildLog discord.ChannelID `toml:"guild_log"`

	Cooldown        time.Duration `toml:"cooldown"`
	SnipeLifetime   time.Duration `toml:"snipe_lifetime"`
	SettingsTTL     time.Duration `toml:"settings_ttl"`
	SettingsTimeout time.Duration `toml:"settings_timeout"`

	// TestMode disables all messages not sent in response to a command.
	TestMode bool `toml:"test_mode"`

	// NoAutoMigrate specifies if migrations should be done automatically when the bot starts.
	// If this is set to true, migrations must be done manually by running the `jambot migrate` command.
	NoAutoMigrate bool `toml:"no_auto_migrate"`
}

type TwitchConfig struct {
	ClientID     string            `toml:"client_id"`
	ClientSecret string            `toml:"client_secret"`
	UserID       string            `toml:"user_id"`
	// ChannelID is the notification channel. Notification state is stored in its guild's settings.
	ChannelID    discord.ChannelID `toml:"channel_id"`
	MentionRole  discord.RoleID    `toml:"mention_role"`
	Interval     time.Duration     `toml:"interval"`
}

// Enabled returns true if the Twitch notifier is fully configured.
func (c TwitchConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.UserID != "" && c.ChannelID.IsValid()
}

type WebConfig struct {
	// Listen is the address of the status server. Empty disables it.
	Listen string `toml:"listen"`
}

type InfoConfig struct {
	SupportServer string `toml:"support_server"`
}

const (
	DefaultPrefix   = "!"
	DefaultInterval = 5 * time.Second
)

// ShouldLog returns true if test mode is not enabled.
func (bot *Bot) ShouldLog() bool {
	return !bot.Config.Bot.TestMode
}

// ReadConfig reads a TOML config file. A .env file next to the working directory is loaded first,
// and ${VAR} references in the file are expanded from the environment.
func ReadConfig(path string) (c Config, err error) {
	err = godotenv.Load()
	if err != nil && !os.IsNotExist(errors.Cause(err)) {
		return c, errors.Wrap(err, "load .env")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return c, errors.Wrap(err, "read config file")
	}

	c, err = ParseConfig(os.ExpandEnv(string(b)))
	if err != nil {
		return c, err
	}
	return c, nil
}

// ParseConfig parses a config from TOML and applies defaults.
func ParseConfig(s string) (c Config, err error) {
	err = toml.Unmarshal([]byte(s), &c)
	if err != nil {
		return c, errors.Wrap(err, "unmarshal config")
	}

	c.setDefaults()
	return c, nil
}

func (c *Config) setDefaults() {
	if c.Bot.Prefix == "" {
		c.Bot.Prefix = DefaultPrefix
	}
	if c.Bot.Cooldown <= 0 {
		c.Bot.Cooldown = 3 * time.Second
	}
	if c.Bot.SnipeLifetime <= 0 {
		c.Bot.SnipeLifetime = 120 * time.Second
	}
	if c.Bot.SettingsTTL <= 0 {
		c.Bot.SettingsTTL = 5 * time.Minute
	}
	if c.Bot.SettingsTimeout <= 0 {
		c.Bot.SettingsTimeout = 5 * time.Second
	}
	if c.Twitch.Interval <= 0 {
		c.Twitch.Interval = DefaultInterval
	}
	if c.Auth.MongoDatabase == "" {
		c.Auth.MongoDatabase = "jambot"
	}
}
