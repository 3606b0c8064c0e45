// Package testutil provides in-memory test doubles for the data store
package testutil

import (
	"sort"
	"time"

	"github.com/ayoisaiah/tomato/internal/session"
)

// FakeDB is an in-memory implementation of store.DB. The error fields, when
// set, are returned by the corresponding operations so that storage failures
// can be simulated.
type FakeDB struct {
	Prefs    map[string][]byte
	Sessions map[string]session.Session

	GetErr    error
	SetErr    error
	DeleteErr error
}

func NewFakeDB() *FakeDB {
	return &FakeDB{
		Prefs:    make(map[string][]byte),
		Sessions: make(map[string]session.Session),
	}
}

func (f *FakeDB) GetPref(key string) ([]byte, error) {
	if f.GetErr != nil {
		return nil, f.GetErr
	}

	return f.Prefs[key], nil
}

func (f *FakeDB) SetPref(key string, value []byte) error {
	if f.SetErr != nil {
		return f.SetErr
	}

	f.Prefs[key] = value

	return nil
}

func (f *FakeDB) DeletePref(key string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}

	delete(f.Prefs, key)

	return nil
}

func (f *FakeDB) UpdateSession(sess *session.Session) error {
	f.Sessions[sess.StartTime.Format(time.RFC3339Nano)] = *sess

	return nil
}

func (f *FakeDB) GetSessions(
	startTime, endTime time.Time,
) ([]session.Session, error) {
	var result []session.Session

	for _, v := range f.Sessions {
		if v.StartTime.Before(startTime) || v.StartTime.After(endTime) {
			continue
		}

		result = append(result, v)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})

	return result, nil
}

func (f *FakeDB) Open() error {
	return nil
}

func (f *FakeDB) Close() error {
	return nil
}
