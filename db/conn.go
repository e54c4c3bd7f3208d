package db

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/logrusorgru/aurora/v3"
	"go.uber.org/zap"
)

// LongQueryThreshold is how long a query can take before a warning is logged.
const LongQueryThreshold = 250 * time.Millisecond

// idleWarning is how long a connection can go without queries before a warning is logged.
const idleWarning = 10 * time.Second

// Querier is any object that can query the database.
type Querier interface {
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
}

var _ Querier = (*Conn)(nil)
var _ pgxscan.Querier = (*Conn)(nil)

// Conn is a wrapped *pgxpool.Conn that counts queries and warns about slow ones.
type Conn struct {
	conn    *pgxpool.Conn
	Log     *zap.SugaredLogger
	onQuery func()

	StartTime time.Time
	ConnID    uuid.UUID

	queries   int32
	openConns *int32
	released  bool

	timer *time.Timer
	tmu   sync.Mutex
}

// OnQuery sets a function called for every query. It must be set before the database is used.
func (db *DB) OnQuery(fn func()) {
	db.onQuery = fn
}

// OpenConns returns the number of connections obtained and not yet released.
func (db *DB) OpenConns() int32 {
	return atomic.LoadInt32(&db.openConns)
}

// Obtain obtains a *Conn from the database. It must be released with Release.
func (db *DB) Obtain(ctx context.Context) (*Conn, error) {
	pgconn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	atomic.AddInt32(&db.openConns, 1)

	id := uuid.New()

	db.Sugar.Debugf("Opened connection %s. Current open connections: %d", id, atomic.LoadInt32(&db.openConns))

	conn := &Conn{
		conn:      pgconn,
		Log:       db.Sugar,
		onQuery:   db.onQuery,
		ConnID:    id,
		StartTime: time.Now(),
		openConns: &db.openConns,
	}
	conn.resetTimer()

	return conn, nil
}

// Release releases the connection.
func (c *Conn) Release() {
	c.tmu.Lock()
	defer c.tmu.Unlock()

	if c.released {
		return
	}
	c.released = true

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	atomic.AddInt32(c.openConns, -1)

	c.Log.Debugf("Releasing connection %s, open for %s with %d queries. Open connections: %d", aurora.Yellow(c.ConnID), aurora.Green(time.Since(c.StartTime).Round(time.Millisecond)), aurora.Blue(atomic.LoadInt32(&c.queries)), aurora.Blue(atomic.LoadInt32(c.openConns)))

	c.conn.Release()
}

func (c *Conn) resetTimer() {
	c.tmu.Lock()
	defer c.tmu.Unlock()

	if c.released {
		return
	}

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(idleWarning, func() {
		c.Log.Warnf("Connection %s has been idle for more than %s!", c.ConnID, idleWarning)
	})
}

// before is called before every query.
func (c *Conn) before() time.Time {
	c.resetTimer()
	atomic.AddInt32(&c.queries, 1)
	if c.onQuery != nil {
		c.onQuery()
	}
	return time.Now()
}

// after warns if a query took longer than LongQueryThreshold.
func (c *Conn) after(query string, t time.Time) {
	if since := time.Since(t); since > LongQueryThreshold {
		c.Log.Warnf("Query %s on connection %s took %s", aurora.Blue(query), aurora.Yellow(c.ConnID), aurora.Green(since.Round(time.Microsecond)))
	}
}

// Query queries the database and returns a pgx.Rows.
func (c *Conn) Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error) {
	t := c.before()
	rows, err := c.conn.Query(ctx, query, args...)
	c.after(query, t)
	return rows, err
}

// QueryRow queries the database and returns a pgx.Row
func (c *Conn) QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row {
	t := c.before()
	row := c.conn.QueryRow(ctx, query, args...)
	c.after(query, t)
	return row
}

// Exec executes a query on the database.
func (c *Conn) Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error) {
	t := c.before()
	ct, err := c.conn.Exec(ctx, query, args...)
	c.after(query, t)
	return ct, err
}
