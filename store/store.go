// Package store connects to the data store and manages preferences and
// session history
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/ayoisaiah/tomato/internal/session"
	"github.com/ayoisaiah/tomato/internal/timeutil"
)

const (
	prefsBucket    = "prefs"
	sessionsBucket = "sessions"
)

var pathToDB string

var errTomatoRunning = errors.New(
	"is tomato already running? Only one instance can be active at a time",
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

func (c *Client) GetPref(key string) ([]byte, error) {
	var value []byte

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(prefsBucket)).Get([]byte(key))
		if v != nil {
			value = make([]byte, len(v))
			copy(value, v)
		}

		return nil
	})

	return value, err
}

func (c *Client) SetPref(key string, value []byte) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(prefsBucket)).Put([]byte(key), value)
	})
}

func (c *Client) DeletePref(key string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(prefsBucket)).Delete([]byte(key))
	})
}

func (c *Client) UpdateSession(sess *session.Session) error {
	key := timeutil.ToKey(sess.StartTime)

	value, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionsBucket)).Put(key, value)
	})
}

func (c *Client) GetSessions(
	startTime, endTime time.Time,
) ([]session.Session, error) {
	var b [][]byte

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionsBucket)).Cursor()
		min := timeutil.ToKey(startTime)
		max := timeutil.ToKey(endTime)

		for k, v := cur.Seek(min); k != nil && bytes.Compare(k, max) <= 0; k, v = cur.Next() {
			b = append(b, v)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	//nolint:prealloc // nil result expected when no sessions are found
	var s []session.Session

	for _, v := range b {
		sess := session.Session{}

		err = json.Unmarshal(v, &sess)
		if err != nil {
			return nil, err
		}

		s = append(s, sess)
	}

	return s, nil
}

func (c *Client) Open() error {
	db, err := openDB(pathToDB)
	if err != nil {
		return err
	}

	*c = Client{
		db,
	}

	return nil
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		// the file lock is held by a live instance
		if errors.Is(err, berrors.ErrTimeout) {
			return nil, errTomatoRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	pathToDB = dbPath

	db, err := openDB(pathToDB)
	if err != nil {
		return nil, err
	}
	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(sessionsBucket))
		if err != nil {
			return err
		}

		_, err = tx.CreateBucketIfNotExists([]byte(prefsBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
