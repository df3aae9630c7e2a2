// Package config owns the persisted node configuration: a fixed-layout,
// versioned record of typed slots (booleans, integers, module descriptor
// strings) stored in a storage pool. Every setter writes through.
package config

import (
	"sensornode-go/errcode"
	"sensornode-go/storage"
	"sensornode-go/x/logx"
)

type Store struct {
	rec      Record
	defaults Record
	region   *storage.Region
	log      *logx.Logger
}

// NewStore returns a store holding the compiled-in defaults. It must be
// initialised against a pool before Load or Save.
func NewStore(log *logx.Logger) *Store {
	d := Defaults()
	return &Store{rec: d, defaults: d, log: log.With("cfg")}
}

// Initialize allocates the record's address range from pool.
func (s *Store) Initialize(pool *storage.Pool) error {
	if s.region != nil {
		return errcode.New(errcode.AlreadyInit, "config.init", "")
	}
	if pool == nil {
		return errcode.New(errcode.InvalidParams, "config.init", "nil pool")
	}
	r, err := pool.Alloc(int64(RecordSize))
	if err != nil {
		return err
	}
	s.region = r
	s.log.Debugf("record at %d, %d bytes", r.Addr(), RecordSize)
	return nil
}

// SetDefaults replaces the record restored on version mismatch or Reset and
// resets the in-memory record to it. The version tag is forced.
func (s *Store) SetDefaults(r Record) {
	r.Version = [versionSize]byte{}
	copy(r.Version[:], Version)
	s.defaults = r
	s.rec = r
}

// Defaults returns the record restored on mismatch or Reset.
func (s *Store) Defaults() Record { return s.defaults }

// Load reads the persisted record. A version tag mismatch resets the
// in-memory record to defaults and reports loaded=false without error.
func (s *Store) Load() (loaded bool, err error) {
	if s.region == nil {
		return false, errcode.New(errcode.NotInitialized, "config.load", "")
	}
	var tag [versionSize]byte
	if _, err := s.region.ReadAt(tag[:], 0); err != nil {
		return false, err
	}
	if !VersionMatches(tag[:]) {
		s.rec = s.defaults
		s.log.Debugf("%s: stored %q, using defaults", errcode.VersionMismatch, printable(tag[:]))
		return false, nil
	}
	buf := make([]byte, RecordSize)
	if _, err := s.region.ReadAt(buf, 0); err != nil {
		return false, err
	}
	var r Record
	if err := r.UnmarshalBinary(buf); err != nil {
		return false, err
	}
	s.rec = r
	s.log.Debugf("loaded %s", Version)
	return true, nil
}

// Save persists the whole record, writing only bytes that changed.
func (s *Store) Save() error {
	if s.region == nil {
		return errcode.New(errcode.NotInitialized, "config.save", "")
	}
	buf, _ := s.rec.MarshalBinary()
	n, err := s.region.Update(buf, 0)
	if err != nil {
		return err
	}
	s.log.Debugf("saved, %d bytes changed", n)
	return nil
}

// Reset restores defaults and saves them.
func (s *Store) Reset() error {
	s.rec = s.defaults
	return s.Save()
}

// Record returns a copy of the in-memory record.
func (s *Store) Record() Record { return s.rec }

// Typed getters. Keys outside the getter's region read as the zero value;
// callers validate with Classify.

func (s *Store) Boolean(k Key) bool   { return s.rec.boolean(k) }
func (s *Store) Integer(k Key) uint16 { return s.rec.integer(k) }
func (s *Store) String(k Key) string  { return s.rec.str(k) }

func (s *Store) SetBoolean(k Key, v bool) error {
	if Classify(k) != RegionBoolean {
		return errcode.New(errcode.InvalidKey, "config.set", k.Name())
	}
	s.rec.Booleans[k-BooleanBase] = v
	return s.Save()
}

func (s *Store) SetInteger(k Key, v uint16) error {
	if Classify(k) != RegionInteger {
		return errcode.New(errcode.InvalidKey, "config.set", k.Name())
	}
	s.rec.Integers[k-IntegerBase] = v
	return s.Save()
}

// SetString stores at most MaxStringLen bytes of v. Longer input is
// truncated silently and reported through truncated.
func (s *Store) SetString(k Key, v string) (truncated bool, err error) {
	if Classify(k) != RegionString {
		return false, errcode.New(errcode.InvalidKey, "config.set", k.Name())
	}
	truncated = s.rec.setString(k, v)
	return truncated, s.Save()
}

// Get renders the value of k as text.
func (s *Store) Get(k Key) (string, error) { return s.rec.text(k) }

// Set parses text for the region of k, stores it and saves. On a parse or
// key error nothing is mutated. Truncation is reported, not logged.
func (s *Store) Set(k Key, text string) (truncated bool, err error) {
	truncated, err = s.rec.setText(k, text)
	if err != nil {
		return false, err
	}
	return truncated, s.Save()
}

func printable(b []byte) string {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			break
		}
		out = append(out, c)
	}
	return string(out)
}
