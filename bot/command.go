package bot

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
)

// OptionType is the type of a command option.
type OptionType int

const (
	StringOption OptionType = iota
	IntegerOption
	BooleanOption
	UserOption
	ChannelOption
	// DurationOption is a string option parsed with the duration package.
	DurationOption
	// AttachmentOption is a file. Prefix invocations use the message's attachments instead of arguments.
	AttachmentOption
)

// Option is a command argument. Prefix invocations fill options in declaration order.
type Option struct {
	Name        string
	Description string
	Type        OptionType
	Required    bool
	Choices     []string
}

// Command is a command usable both as a slash command and with the guild's prefix.
type Command struct {
	Name        string
	Description string
	Usage       string
	Options     []Option

	// Permissions are the permissions the invoking member needs.
	Permissions discord.Permissions
	OwnerOnly   bool
	AllowInDM   bool
	// Cooldown overrides the default cooldown if non-zero.
	Cooldown time.Duration

	Execute func(ctx *Context) error
}

// Registry holds all registered commands.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*Command
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Add registers commands, replacing any with the same name.
func (r *Registry) Add(cmds ...*Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cmd := range cmds {
		r.commands[strings.ToLower(cmd.Name)] = cmd
	}
}

// Get returns the command with the given name, case-insensitively.
func (r *Registry) Get(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.commands[strings.ToLower(name)]
	return cmd, ok
}

// List returns all commands sorted by name.
func (r *Registry) List() []*Command {
	r.mu.RLock()
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	r.mu.RUnlock()

	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name < cmds[j].Name
	})
	return cmds
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// CommandData returns all commands as slash command data.
// Owner-only commands are still synced, but are checked on every invocation.
func (r *Registry) CommandData() []api.CreateCommandData {
	cmds := r.List()

	data := make([]api.CreateCommandData, 0, len(cmds))
	for _, cmd := range cmds {
		data = append(data, cmd.Data())
	}
	return data
}

// Data returns the command as slash command data.
func (cmd *Command) Data() api.CreateCommandData {
	data := api.CreateCommandData{
		Name:           strings.ToLower(cmd.Name),
		Description:    cmd.Description,
		NoDMPermission: !cmd.AllowInDM,
	}

	if cmd.Permissions != 0 {
		data.DefaultMemberPermissions = discord.NewPermissions(cmd.Permissions)
	}

	for _, o := range cmd.Options {
		data.Options = append(data.Options, o.discord())
	}
	return data
}

func (o Option) discord() discord.CommandOption {
	switch o.Type {
	case IntegerOption:
		return &discord.IntegerOption{
			OptionName:  o.Name,
			Description: o.Description,
			Required:    o.Required,
		}
	case BooleanOption:
		return &discord.BooleanOption{
			OptionName:  o.Name,
			Description: o.Description,
			Required:    o.Required,
		}
	case UserOption:
		return &discord.UserOption{
			OptionName:  o.Name,
			Description: o.Description,
			Required:    o.Required,
		}
	case AttachmentOption:
		return &discord.AttachmentOption{
			OptionName:  o.Name,
			Description: o.Description,
			Required:    o.Required,
		}
	case ChannelOption:
		return &discord.ChannelOption{
			OptionName:   o.Name,
			Description:  o.Description,
			Required:     o.Required,
			ChannelTypes: []discord.ChannelType{discord.GuildText, discord.GuildAnnouncement},
		}
	default:
		opt := &discord.StringOption{
			OptionName:  o.Name,
			Description: o.Description,
			Required:    o.Required,
		}
		for _, c := range o.Choices {
			opt.Choices = append(opt.Choices, discord.StringChoice{Name: c, Value: c})
		}
		return opt
	}
}

// UsageString returns the command's usage, generated from its options if Usage is empty.
func (cmd *Command) UsageString() string {
	if cmd.Usage != "" {
		return cmd.Name + " " + cmd.Usage
	}

	var b strings.Builder
	b.WriteString(cmd.Name)
	for _, o := range cmd.Options {
		if o.Required {
			b.WriteString(" <" + o.Name + ">")
		} else {
			b.WriteString(" [" + o.Name + "]")
		}
	}
	return b.String()
}
