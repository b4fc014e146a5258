package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"git.lost.host/meutraa/noodle/internal/game"
)

type Store interface {
	Init(path string) error
	Deinit()

	// Save a finished session for the beatmap
	Save(b *game.Beatmap, s *Session)

	// Load previous sessions of the beatmap, oldest first
	Load(b *game.Beatmap) []Session
}

// Binding is a player track assignment that fired during a session.
type Binding struct {
	Time  float64
	Track string
}

type Session struct {
	Sum      string
	Played   time.Time
	Animated uint64 // Object updates written by the applicator
	Bindings []Binding
}

type DefaultStore struct {
	db *sql.DB
}

type BindingsCompact struct {
	Track string
	Times []float64
}

// compactBindings groups binding times by track, in order of each track's
// first binding.
func compactBindings(bindings []Binding) []BindingsCompact {
	index := map[string]int{}
	out := []BindingsCompact{}
	for _, b := range bindings {
		i, ok := index[b.Track]
		if !ok {
			i = len(out)
			index[b.Track] = i
			out = append(out, BindingsCompact{Track: b.Track, Times: []float64{}})
		}
		out[i].Times = append(out[i].Times, b.Time)
	}
	return out
}

// uncompactBindings restores the timeline order of compacted bindings.
func uncompactBindings(compact []BindingsCompact) []Binding {
	bindings := []Binding{}
	for _, c := range compact {
		for _, t := range c.Times {
			bindings = append(bindings, Binding{Time: t, Track: c.Track})
		}
	}
	sort.SliceStable(bindings, func(i, j int) bool { return bindings[i].Time < bindings[j].Time })
	return bindings
}

func (s *DefaultStore) Init(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("unable to open history: %w", err)
	}

	initStatement := `
	create table if not exists sessions
	  (
		  id integer not null primary key,
		  sum text,
		  played integer,
		  animated integer,
		  bindings bytearray
	  );
	`
	_, err = db.Exec(initStatement)
	if nil != err {
		db.Close()
		return fmt.Errorf("unable to create history table: %w", err)
	}

	s.db = db
	return nil
}

func (s *DefaultStore) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *DefaultStore) Save(b *game.Beatmap, session *Session) {
	data, err := json.Marshal(compactBindings(session.Bindings))
	if nil != err {
		log.Println("unable to marshal bindings", err)
		return
	}
	_, err = s.db.Exec(
		"insert into sessions(sum, played, animated, bindings) values(?, ?, ?, ?)",
		b.Sum, session.Played.Unix(), int64(session.Animated), data,
	)
	if nil != err {
		log.Println("unable to save session", err)
		return
	}
}

func (s *DefaultStore) Load(b *game.Beatmap) []Session {
	sessions := []Session{}
	rows, err := s.db.Query("select sum, played, animated, bindings from sessions where sum = ? order by id", b.Sum)
	if nil != err {
		log.Println("unable to load sessions", err)
		return sessions
	}
	defer rows.Close()
	for rows.Next() {
		var sum string
		var played, animated int64
		var data []byte
		if err := rows.Scan(&sum, &played, &animated, &data); nil != err {
			log.Println("unable to read session", err)
			continue
		}
		var compact []BindingsCompact
		if err := json.Unmarshal(data, &compact); nil != err {
			log.Println("unable to unmarshal binding history")
			continue
		}
		sessions = append(sessions, Session{
			Sum:      sum,
			Played:   time.Unix(played, 0),
			Animated: uint64(animated),
			Bindings: uncompactBindings(compact),
		})
	}
	return sessions
}
