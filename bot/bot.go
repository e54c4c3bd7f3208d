// Package bot is the core of Jam-Bot: the gateway connection, its dependencies, and command dispatch.
package bot

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/ReneKroon/ttlcache/v2"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"github.com/diamondburned/arikawa/v3/utils/handler"
	"github.com/diamondburned/arikawa/v3/utils/ws"
	"github.com/jamesatjaminit/Jam-Bot/apis"
	"github.com/jamesatjaminit/Jam-Bot/common"
	"github.com/jamesatjaminit/Jam-Bot/db"
	"github.com/jamesatjaminit/Jam-Bot/db/mongo"
	"github.com/jamesatjaminit/Jam-Bot/ratelimit"
	"github.com/jamesatjaminit/Jam-Bot/ratelimit/redis"
	"github.com/jamesatjaminit/Jam-Bot/settings"
	"github.com/jamesatjaminit/Jam-Bot/snipe"
	"github.com/jamesatjaminit/Jam-Bot/stats"
	"go.uber.org/zap"
)

const Intents = gateway.IntentGuilds |
	gateway.IntentGuildMembers |
	gateway.IntentGuildMessages |
	gateway.IntentDirectMessages |
	gateway.IntentMessageContent

// PermissionChecker returns a user's permissions in a channel.
type PermissionChecker interface {
	Permissions(channelID discord.ChannelID, userID discord.UserID) (discord.Permissions, error)
}

type Bot struct {
	State  *state.State
	Config Config
	Log    *zap.SugaredLogger

	DB       *db.DB
	Settings *settings.Store
	Snipes   *snipe.Buffer
	Limiter  ratelimit.Limiter
	Stats    *stats.Client
	APIs     *apis.Client
	Commands *Registry

	Owners *common.Set[discord.UserID]
	Perms  PermissionChecker

	StartTime time.Time

	users  *ttlcache.Cache
	mongo  *mongo.Backend
	closer []func() error
}

// New creates a new Bot and connects to its databases.
func New(ctx context.Context, c Config, log *zap.SugaredLogger) (*Bot, error) {
	ws.WSDebug = log.Named("ws").Debug
	ws.WSError = func(err error) {
		log.Named("ws").Error(err)
	}

	s := newState(c.Auth.Discord)

	bot := &Bot{
		State:     s,
		Config:    c,
		Log:       log,
		Commands:  NewRegistry(),
		Owners:    common.NewSet(c.Bot.Owners...),
		Perms:     s,
		StartTime: time.Now(),
		users:     newUserCache(),
		APIs: apis.New(
			apis.WithKeys(c.Auth.PexelsKey, c.Auth.BingKey),
		),
	}

	var err error
	bot.DB, err = db.New(ctx, c.Auth.Postgres, log.Named("db"), c.Bot.NoAutoMigrate)
	if err != nil {
		return nil, errors.Wrap(err, "creating database")
	}
	bot.closer = append(bot.closer, func() error {
		bot.DB.Close()
		return nil
	})

	// settings are stored in mongo if it's configured, otherwise in postgres
	var backend settings.Backend = bot.DB
	if c.Auth.Mongo != "" {
		bot.mongo, err = mongo.New(ctx, c.Auth.Mongo, c.Auth.MongoDatabase)
		if err != nil {
			return nil, errors.Wrap(err, "connecting to mongo")
		}
		backend = bot.mongo
		bot.closer = append(bot.closer, func() error {
			return bot.mongo.Close(context.Background())
		})
	}

	bot.Settings = settings.New(backend,
		settings.WithTTL(c.Bot.SettingsTTL),
		settings.WithTimeout(c.Bot.SettingsTimeout),
		settings.WithLogger(log.Named("settings")),
	)
	bot.closer = append(bot.closer, bot.Settings.Close, bot.users.Close)

	ownerIDs := make([]string, 0, len(c.Bot.Owners))
	for _, id := range c.Bot.Owners {
		ownerIDs = append(ownerIDs, id.String())
	}
	bot.Snipes = snipe.New(c.Bot.SnipeLifetime, snipe.WithOwners(ownerIDs...))

	if c.Auth.Redis != "" {
		l, err := redis.New(c.Auth.Redis, log.Named("ratelimit"))
		if err != nil {
			return nil, errors.Wrap(err, "creating redis rate limiter")
		}
		bot.Limiter = l
		bot.closer = append(bot.closer, l.Close)
	} else {
		bot.Limiter = ratelimit.NewMemory(nil)
	}

	bot.Stats = stats.New(
		c.Auth.Influx.URL, c.Auth.Influx.Token,
		c.Auth.Influx.Organization, c.Auth.Influx.Database,
		log.Named("stats"),
	)
	bot.DB.OnQuery(bot.Stats.IncQuery)

	s.Client.Client.OnResponse = append(s.Client.Client.OnResponse, bot.onResponse)

	s.AddHandler(bot.Stats.EventHandler)
	s.AddHandler(bot.ready)
	s.AddHandler(bot.interactionCreate)
	s.AddHandler(bot.messageCreate)

	return bot, nil
}

func newState(token string) *state.State {
	s := state.New("Bot " + token)
	s.AddIntents(Intents)

	// message delete and update handlers need the message before it's removed from the cache
	s.PreHandler = handler.New()
	return s
}

// Open connects to the gateway.
func (bot *Bot) Open(ctx context.Context) error {
	bot.Log.Debug("opening gateway connection")

	return bot.State.Open(ctx)
}

// Close disconnects from the gateway and closes all connections.
func (bot *Bot) Close() error {
	err := bot.State.Close()

	for i := len(bot.closer) - 1; i >= 0; i-- {
		err = errors.Append(err, bot.closer[i]())
	}
	bot.Stats.Close()
	return err
}

// AddHandler adds event handlers.
func (bot *Bot) AddHandler(i ...any) {
	for _, hn := range i {
		bot.State.AddHandler(hn)
	}
}

// AddPreHandler adds handlers that run before the state cache is updated.
// They run synchronously, so the cache isn't updated until they return.
func (bot *Bot) AddPreHandler(i ...any) {
	for _, hn := range i {
		bot.State.PreHandler.AddSyncHandler(hn)
	}
}

// IsOwner returns true if the user is a bot owner.
func (bot *Bot) IsOwner(id discord.UserID) bool {
	return bot.Owners.Exists(id)
}

// Prefix returns the command prefix for a guild.
func (bot *Bot) Prefix(ctx context.Context, guildID discord.GuildID) string {
	if guildID.IsValid() && bot.Settings != nil {
		p, ok := bot.Settings.String(ctx, guildID.String(), settings.KeyPrefix)
		if ok && p != "" {
			return p
		}
	}
	return bot.Config.Bot.Prefix
}

// Uptime returns how long the bot has been running.
func (bot *Bot) Uptime() time.Duration {
	return time.Since(bot.StartTime)
}

// SyncCommands overwrites the bot's slash commands with the registered commands.
func (bot *Bot) SyncCommands() error {
	if bot.Config.Bot.NoSyncCommands {
		bot.Log.Info("Not syncing slash commands")
		return nil
	}

	app, err := bot.State.CurrentApplication()
	if err != nil {
		return errors.Wrap(err, "getting current application")
	}

	data := bot.Commands.CommandData()
	if guildID := bot.Config.Bot.CommandsGuildID; guildID.IsValid() {
		_, err = bot.State.BulkOverwriteGuildCommands(app.ID, guildID, data)
		if err != nil {
			return errors.Wrap(err, "syncing guild commands")
		}
		bot.Log.Infof("Synced %v commands in %v", len(data), guildID)
		return nil
	}

	_, err = bot.State.BulkOverwriteCommands(app.ID, data)
	if err != nil {
		return errors.Wrap(err, "syncing commands")
	}
	bot.Log.Infof("Synced %v commands", len(data))
	return nil
}

func (bot *Bot) ready(ev *gateway.ReadyEvent) {
	bot.Log.Infof("Logged in as %v (%v) in %v guilds", ev.User.Tag(), ev.User.ID, len(ev.Guilds))
}
