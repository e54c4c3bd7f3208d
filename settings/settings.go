// Package settings stores per-guild settings documents.
// Documents live in a remote Backend and are cached in memory for a short time.
package settings

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/ReneKroon/ttlcache/v2"
	"go.uber.org/zap"
)

// ErrNotFound is returned by a Backend if a guild has no settings document.
const ErrNotFound = errors.Sentinel("settings document not found")

// Defaults
const (
	DefaultTTL     = 5 * time.Minute
	DefaultTimeout = 5 * time.Second
)

// Setting keys
const (
	KeyPrefix             = "prefix"
	KeyModLogChannel      = "modLogChannel"
	KeyLogDeletedMessages = "logDeletedMessages"
	KeyLogJoinLeaves      = "logJoinLeaves"
	KeySuggestionChannel  = "suggestionChannel"

	NamespaceTwitch   = "twitchNotifications"
	KeyLiveTime       = "liveTime"
	KeyLiveMessageID  = "liveMessageId"
	KeyLiveIdentifier = "liveIdentifier"
)

// Document is a guild's settings. Values are strings, numbers, booleans or nested maps.
type Document map[string]any

// Backend is a remote document store.
type Backend interface {
	// FindOne returns the document for the guild, or ErrNotFound.
	FindOne(ctx context.Context, guildID string) (Document, error)
	// ReplaceOne replaces (or inserts) the document for the guild.
	ReplaceOne(ctx context.Context, guildID string, doc Document) error
}

// Store is a cached view over a Backend.
type Store struct {
	backend Backend
	cache   *ttlcache.Cache
	timeout time.Duration
	log     *zap.SugaredLogger
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets how long a document stays cached after it is written or fetched.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		_ = s.cache.SetTTL(ttl)
	}
}

// WithTimeout sets the timeout for every backend call.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Store) {
		s.timeout = timeout
	}
}

// WithLogger sets the logger used for backend failures on reads.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// New returns a new Store.
func New(backend Backend, opts ...Option) *Store {
	cache := ttlcache.NewCache()
	_ = cache.SetTTL(DefaultTTL)
	cache.SkipTTLExtensionOnHit(true)

	s := &Store{
		backend: backend,
		cache:   cache,
		timeout: DefaultTimeout,
		log:     zap.NewNop().Sugar(),
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close stops the cache's expiration loop.
func (s *Store) Close() error {
	return s.cache.Close()
}

// Len returns the number of cached documents.
func (s *Store) Len() int {
	return s.cache.Count()
}

// Get returns the value of key for the guild.
// The cache is used if it has the key; otherwise the document is fetched again.
// Missing guilds, missing keys and backend errors all return false.
func (s *Store) Get(ctx context.Context, guildID, key string) (any, bool) {
	if doc, ok := s.cached(guildID); ok {
		if v, ok := doc[key]; ok && v != nil {
			return v, true
		}
	}

	doc, err := s.fetch(ctx, guildID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Errorf("getting settings for guild %v: %v", guildID, err)
		}
		return nil, false
	}

	v, ok := doc[key]
	return v, ok && v != nil
}

// GetNested returns document[namespace][key]. A namespace that isn't a map is treated as absent.
func (s *Store) GetNested(ctx context.Context, guildID, namespace, key string) (any, bool) {
	if doc, ok := s.cached(guildID); ok {
		if v, ok := nested(doc, namespace, key); ok {
			return v, true
		}
	}

	doc, err := s.fetch(ctx, guildID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Errorf("getting settings for guild %v: %v", guildID, err)
		}
		return nil, false
	}

	return nested(doc, namespace, key)
}

// Set sets key to value for the guild and writes the whole document to the backend.
// The cache is only updated if the write succeeds.
func (s *Store) Set(ctx context.Context, guildID, key string, value any) error {
	doc, err := s.current(ctx, guildID)
	if err != nil {
		return err
	}

	doc[key] = value
	return s.write(ctx, guildID, doc)
}

// SetNested sets document[namespace][key] to value. A namespace that isn't a map is replaced.
func (s *Store) SetNested(ctx context.Context, guildID, namespace, key string, value any) error {
	doc, err := s.current(ctx, guildID)
	if err != nil {
		return err
	}

	ns, ok := asMap(doc[namespace])
	if !ok {
		ns = map[string]any{}
	}
	ns[key] = value
	doc[namespace] = ns

	return s.write(ctx, guildID, doc)
}

// Invalidate drops the cached document for a guild.
func (s *Store) Invalidate(guildID string) {
	_ = s.cache.Remove(guildID)
}

// cached returns a copy of the cached document.
func (s *Store) cached(guildID string) (Document, bool) {
	v, err := s.cache.Get(guildID)
	if err != nil {
		return nil, false
	}

	doc, ok := v.(Document)
	if !ok {
		return nil, false
	}
	return copyDocument(doc), true
}

// fetch gets the document from the backend and caches it.
func (s *Store) fetch(ctx context.Context, guildID string) (Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc, err := s.backend.FindOne(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = Document{}
	}

	_ = s.cache.Set(guildID, copyDocument(doc))
	return doc, nil
}

// current returns a copy of the guild's document for modification.
func (s *Store) current(ctx context.Context, guildID string) (Document, error) {
	if doc, ok := s.cached(guildID); ok {
		return doc, nil
	}

	doc, err := s.fetch(ctx, guildID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Document{}, nil
		}
		return nil, errors.Wrap(err, "getting current settings")
	}
	return copyDocument(doc), nil
}

func (s *Store) write(ctx context.Context, guildID string, doc Document) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.backend.ReplaceOne(ctx, guildID, doc)
	if err != nil {
		return errors.Wrap(err, "writing settings")
	}

	_ = s.cache.Set(guildID, copyDocument(doc))
	return nil
}

func nested(doc Document, namespace, key string) (any, bool) {
	ns, ok := asMap(doc[namespace])
	if !ok {
		return nil, false
	}

	v, ok := ns[key]
	return v, ok && v != nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Document:
		return map[string]any(m), true
	}
	return nil, false
}

func copyDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, inner := range v {
			out[k] = copyValue(inner)
		}
		return out
	case Document:
		return map[string]any(copyDocument(v))
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = copyValue(v[i])
		}
		return out
	}
	return v
}
