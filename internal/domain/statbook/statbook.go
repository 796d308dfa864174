// Package statbook turns event streams into statistics. The book stores
// events with their play context and nothing else; every counter is
// recomputed from them on demand, so box scores can never drift from the
// plays that produced them.
package statbook

import (
	"github.com/okian/gridiron/internal/domain/model"
)

// Context is the situation a play was snapped in.
type Context struct {
	GameID    string  `json:"game_id"`
	PlayIndex int     `json:"play_index"`
	Offense   string  `json:"offense"`
	Defense   string  `json:"defense"`
	Down      int     `json:"down"`
	Distance  float64 `json:"distance"`
	Yardline  float64 `json:"yardline"`
}

// Entry is one event with the context of the play it belongs to.
type Entry struct {
	Context
	Event model.Event `json:"event"`
}

// Book is an append-only log of entries. It is not safe for concurrent
// use; give each game its own book and merge them afterwards.
type Book struct {
	entries []Entry
	games   map[string]struct{}
}

// New returns an empty book.
func New() *Book {
	return &Book{games: make(map[string]struct{})}
}

// Note appends one entry.
func (b *Book) Note(e Entry) {
	b.entries = append(b.entries, e)
	b.games[e.GameID] = struct{}{}
}

// NotePlay appends a whole play's events under one context.
func (b *Book) NotePlay(c Context, events []model.Event) {
	for _, ev := range events {
		b.Note(Entry{Context: c, Event: ev})
	}
}

// Merge appends every entry of other. Books are merged in a fixed order
// by the caller so the result is deterministic.
func (b *Book) Merge(other *Book) {
	if other == nil {
		return
	}
	for _, e := range other.entries {
		b.Note(e)
	}
}

// Len returns the number of entries.
func (b *Book) Len() int { return len(b.entries) }

// Games returns how many distinct games the book has entries for.
func (b *Book) Games() int { return len(b.games) }

// Entries returns a copy of the log.
func (b *Book) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// play is one play's events with its context.
type play struct {
	ctx    Context
	events []model.Event
}

// plays groups consecutive entries that share a game and play index.
func (b *Book) plays() []play {
	var out []play
	for _, e := range b.entries {
		n := len(out)
		if n > 0 && out[n-1].ctx.GameID == e.GameID && out[n-1].ctx.PlayIndex == e.PlayIndex {
			out[n-1].events = append(out[n-1].events, e.Event)
			continue
		}
		out = append(out, play{ctx: e.Context, events: []model.Event{e.Event}})
	}
	return out
}
